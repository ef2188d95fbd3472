// Package triage implements the vulnerability triage business rules: severity
// scoring, priority assignment, confidence aggregation, batch risk and
// remediation planning. Everything here is pure and deterministic.
package triage

import (
	"strings"

	"github.com/b45t3rr/genai-triage/internal/model"
)

// Attributes are the raw evidence attributes severity scoring is based on.
// Impact and ExploitProbability stay free text: reported values come straight
// from LLM output and unknown strings fall back to the default weight instead
// of failing.
type Attributes struct {
	Impact             string
	ExploitProbability string
	EvidenceCount      int
	HasProofOfConcept  bool
}

// Weight tables. The per-factor maxima sum to 10.0 (4 + 3 + 2 + 1), so the
// clamp in SeverityScore only fires on malformed input.
var impactFactor = map[string]float64{
	"crítico":  4.0,
	"critico":  4.0,
	"crítica":  4.0,
	"critica":  4.0,
	"critical": 4.0,
	"alto":     3.0,
	"alta":     3.0,
	"high":     3.0,
	"medio":    2.0,
	"media":    2.0,
	"medium":   2.0,
	"bajo":     1.0,
	"baja":     1.0,
	"low":      1.0,
}

var exploitFactor = map[string]float64{
	"alta":   3.0,
	"alto":   3.0,
	"high":   3.0,
	"media":  2.0,
	"medio":  2.0,
	"medium": 2.0,
	"baja":   1.0,
	"bajo":   1.0,
	"low":    1.0,
}

// SeverityScore computes the weighted severity score in [0,10]: impact factor
// plus exploit-probability factor plus a capped evidence-volume factor plus a
// proof-of-concept bonus.
func SeverityScore(a Attributes) float64 {
	score := lookup(impactFactor, a.Impact, 1.0)
	score += lookup(exploitFactor, a.ExploitProbability, 1.0)
	if a.EvidenceCount > 0 {
		evidence := float64(a.EvidenceCount) * 0.5
		if evidence > 2.0 {
			evidence = 2.0
		}
		score += evidence
	}
	if a.HasProofOfConcept {
		score += 1.0
	}
	if score > 10.0 {
		score = 10.0
	}
	return score
}

// SeverityLevel maps a severity score to the canonical five-level vocabulary.
func SeverityLevel(score float64) model.Severity {
	switch {
	case score >= 9.0:
		return model.SeverityCritical
	case score >= 7.0:
		return model.SeverityHigh
	case score >= 4.0:
		return model.SeverityMedium
	case score >= 2.0:
		return model.SeverityLow
	default:
		return model.SeverityInfo
	}
}

// priorityMatrix is the severity × business-impact lookup. Combinations
// outside the matrix resolve to P3.
var priorityMatrix = map[model.Severity]map[model.ImpactLevel]model.Priority{
	model.SeverityCritical: {
		model.ImpactHigh:   model.PriorityP0,
		model.ImpactMedium: model.PriorityP0,
		model.ImpactLow:    model.PriorityP1,
	},
	model.SeverityHigh: {
		model.ImpactHigh:   model.PriorityP0,
		model.ImpactMedium: model.PriorityP1,
		model.ImpactLow:    model.PriorityP1,
	},
	model.SeverityMedium: {
		model.ImpactHigh:   model.PriorityP1,
		model.ImpactMedium: model.PriorityP2,
		model.ImpactLow:    model.PriorityP2,
	},
	model.SeverityLow: {
		model.ImpactHigh:   model.PriorityP2,
		model.ImpactMedium: model.PriorityP3,
		model.ImpactLow:    model.PriorityP3,
	},
	model.SeverityInfo: {
		model.ImpactHigh:   model.PriorityP3,
		model.ImpactMedium: model.PriorityP4,
		model.ImpactLow:    model.PriorityP4,
	},
}

// PriorityLevel resolves the remediation tier for a severity and business
// impact pair.
func PriorityLevel(severity model.Severity, businessImpact model.ImpactLevel) model.Priority {
	if row, ok := priorityMatrix[severity]; ok {
		if p, ok := row[businessImpact]; ok {
			return p
		}
	}
	return model.PriorityP3
}

func lookup(table map[string]float64, key string, def float64) float64 {
	if w, ok := table[strings.ToLower(strings.TrimSpace(key))]; ok {
		return w
	}
	return def
}
