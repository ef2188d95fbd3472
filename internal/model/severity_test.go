package model

import "testing"

func TestMapSeverity(t *testing.T) {
	tests := []struct {
		raw      string
		expected Severity
	}{
		{"crítica", SeverityCritical},
		{"critica", SeverityCritical},
		{"CRÍTICA", SeverityCritical},
		{"critical", SeverityCritical},
		{"alta", SeverityHigh},
		{"High", SeverityHigh},
		{"media", SeverityMedium},
		{"medium", SeverityMedium},
		{"baja", SeverityLow},
		{"low", SeverityLow},
		{"informativa", SeverityInfo},
		{"info", SeverityInfo},
		{"informational", SeverityInfo},
		{"  alta  ", SeverityHigh},
		{"", SeverityMedium},
		{"sev-unknown", SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := MapSeverity(tt.raw); got != tt.expected {
				t.Errorf("MapSeverity(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestMapSeverityIsTotal(t *testing.T) {
	// Any observed value must land in exactly one canonical bucket.
	inputs := []string{"", "???", "grave", "P0", "10", "crítica", "HIGH"}
	valid := make(map[Severity]bool)
	for _, s := range Severities() {
		valid[s] = true
	}
	for _, in := range inputs {
		if !valid[MapSeverity(in)] {
			t.Errorf("MapSeverity(%q) = %q is not canonical", in, MapSeverity(in))
		}
	}
}

func TestMapPriority(t *testing.T) {
	tests := []struct {
		raw      string
		expected Priority
	}{
		{"P0", PriorityP0},
		{"p1", PriorityP1},
		{" P2 ", PriorityP2},
		{"P3", PriorityP3},
		{"P4", PriorityP4},
		{"", PriorityP2},
		{"urgent", PriorityP2},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := MapPriority(tt.raw); got != tt.expected {
				t.Errorf("MapPriority(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestMapImpact(t *testing.T) {
	tests := []struct {
		raw      string
		expected ImpactLevel
	}{
		{"alto", ImpactHigh},
		{"high", ImpactHigh},
		{"crítico", ImpactHigh},
		{"medio", ImpactMedium},
		{"bajo", ImpactLow},
		{"low", ImpactLow},
		{"", ImpactMedium},
		{"desconocido", ImpactMedium},
	}

	for _, tt := range tests {
		if got := MapImpact(tt.raw); got != tt.expected {
			t.Errorf("MapImpact(%q) = %q, want %q", tt.raw, got, tt.expected)
		}
	}
}

func TestMapExploitProbability(t *testing.T) {
	tests := []struct {
		raw      string
		expected ExploitProbability
	}{
		{"alta", ExploitHigh},
		{"high", ExploitHigh},
		{"media", ExploitMedium},
		{"baja", ExploitLow},
		{"", ExploitMedium},
	}

	for _, tt := range tests {
		if got := MapExploitProbability(tt.raw); got != tt.expected {
			t.Errorf("MapExploitProbability(%q) = %q, want %q", tt.raw, got, tt.expected)
		}
	}
}

func TestPrioritiesOrder(t *testing.T) {
	want := []Priority{PriorityP0, PriorityP1, PriorityP2, PriorityP3, PriorityP4}
	got := Priorities()
	if len(got) != len(want) {
		t.Fatalf("Priorities() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Priorities()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
