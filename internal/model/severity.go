package model

import "strings"

// Severity is the canonical five-level triage severity vocabulary.
// Canonical values are Spanish; MapSeverity folds English synonyms in.
type Severity string

const (
	SeverityCritical Severity = "crítica"
	SeverityHigh     Severity = "alta"
	SeverityMedium   Severity = "media"
	SeverityLow      Severity = "baja"
	SeverityInfo     Severity = "informativa"
)

// Priority is the remediation urgency tier, P0 (immediate) through P4 (best-effort).
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
	PriorityP4 Priority = "P4"
)

// RiskLevel is the batch-level overall risk classification.
type RiskLevel string

const (
	RiskCritical RiskLevel = "crítico"
	RiskHigh     RiskLevel = "alto"
	RiskMedium   RiskLevel = "medio"
	RiskLow      RiskLevel = "bajo"
)

// ImpactLevel qualifies business impact and evidence criticality.
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "alto"
	ImpactMedium ImpactLevel = "medio"
	ImpactLow    ImpactLevel = "bajo"
)

// ExploitProbability qualifies how likely exploitation is in practice.
type ExploitProbability string

const (
	ExploitHigh   ExploitProbability = "alta"
	ExploitMedium ExploitProbability = "media"
	ExploitLow    ExploitProbability = "baja"
)

// EvidenceType tags the kind of artifact backing a vulnerability.
type EvidenceType string

const (
	EvidenceCode          EvidenceType = "código"
	EvidenceHTTPResponse  EvidenceType = "respuesta_http"
	EvidenceFile          EvidenceType = "archivo"
	EvidenceConfiguration EvidenceType = "configuración"
	EvidenceDatabase      EvidenceType = "base_datos"
)

// RecommendationType tags the nature of a triage recommendation.
type RecommendationType string

const (
	RecommendationImmediate  RecommendationType = "inmediata"
	RecommendationCorrective RecommendationType = "correctiva"
	RecommendationPreventive RecommendationType = "preventiva"
	RecommendationMitigation RecommendationType = "mitigación"
)

// Severities lists the canonical severities in descending order.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// Priorities lists the remediation tiers in ascending urgency order (P0 first).
func Priorities() []Priority {
	return []Priority{PriorityP0, PriorityP1, PriorityP2, PriorityP3, PriorityP4}
}

// severityAliases folds raw severity strings onto the canonical vocabulary.
// Spanish spellings are listed first: when a value could match either language
// the Spanish table wins. Accent-less Spanish variants are included because
// LLM output frequently drops diacritics.
var severityAliases = map[string]Severity{
	"crítica":       SeverityCritical,
	"critica":       SeverityCritical,
	"crítico":       SeverityCritical,
	"critico":       SeverityCritical,
	"alta":          SeverityHigh,
	"alto":          SeverityHigh,
	"media":         SeverityMedium,
	"medio":         SeverityMedium,
	"baja":          SeverityLow,
	"bajo":          SeverityLow,
	"informativa":   SeverityInfo,
	"informativo":   SeverityInfo,
	"critical":      SeverityCritical,
	"high":          SeverityHigh,
	"medium":        SeverityMedium,
	"moderate":      SeverityMedium,
	"low":           SeverityLow,
	"info":          SeverityInfo,
	"informational": SeverityInfo,
}

// MapSeverity maps an arbitrary severity string to its canonical bucket.
// Unrecognized values land in SeverityMedium; the mapping is total so that
// noisy LLM output never produces an out-of-vocabulary severity downstream.
func MapSeverity(raw string) Severity {
	if sev, ok := severityAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return sev
	}
	return SeverityMedium
}

// MapPriority maps a raw priority string to a canonical tier.
// Unrecognized values land in PriorityP2, the same default the triage
// fallback path assigns.
func MapPriority(raw string) Priority {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "P0":
		return PriorityP0
	case "P1":
		return PriorityP1
	case "P2":
		return PriorityP2
	case "P3":
		return PriorityP3
	case "P4":
		return PriorityP4
	}
	return PriorityP2
}

var impactAliases = map[string]ImpactLevel{
	"alto":     ImpactHigh,
	"alta":     ImpactHigh,
	"crítico":  ImpactHigh,
	"critico":  ImpactHigh,
	"medio":    ImpactMedium,
	"media":    ImpactMedium,
	"bajo":     ImpactLow,
	"baja":     ImpactLow,
	"high":     ImpactHigh,
	"critical": ImpactHigh,
	"medium":   ImpactMedium,
	"low":      ImpactLow,
}

// MapImpact maps a raw business-impact string to a canonical level,
// defaulting to ImpactMedium.
func MapImpact(raw string) ImpactLevel {
	if lvl, ok := impactAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return lvl
	}
	return ImpactMedium
}

var exploitAliases = map[string]ExploitProbability{
	"alta":   ExploitHigh,
	"alto":   ExploitHigh,
	"media":  ExploitMedium,
	"medio":  ExploitMedium,
	"baja":   ExploitLow,
	"bajo":   ExploitLow,
	"high":   ExploitHigh,
	"medium": ExploitMedium,
	"low":    ExploitLow,
}

// MapExploitProbability maps a raw exploit-probability string to a canonical
// value, defaulting to ExploitMedium.
func MapExploitProbability(raw string) ExploitProbability {
	if p, ok := exploitAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return p
	}
	return ExploitMedium
}
