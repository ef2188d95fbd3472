package triage

import "github.com/b45t3rr/genai-triage/internal/model"

// EnhanceInput carries the source-finding context the domain rules need on
// top of the triaged vulnerability itself.
type EnhanceInput struct {
	// OriginalImpact is the free-text impact reported by the source finding.
	OriginalImpact string
	// BusinessImpact qualifies how critical the affected system is.
	BusinessImpact model.ImpactLevel
	// HasProofOfConcept reports whether the source finding carried a PoC.
	HasProofOfConcept bool
}

// Enhance recomputes severity, priority and confidence from the domain rules.
// It always runs after LLM triage and its results take precedence: the
// model's raw severity/priority/confidence are recommendations only.
func Enhance(v model.TriagedVulnerability, in EnhanceInput) model.TriagedVulnerability {
	score := SeverityScore(Attributes{
		Impact:             in.OriginalImpact,
		ExploitProbability: string(v.ExploitProbability),
		EvidenceCount:      len(v.Evidence),
		HasProofOfConcept:  in.HasProofOfConcept,
	})

	severity := SeverityLevel(score)
	v.SeverityScore = score
	v.TriageSeverity = severity
	v.Priority = PriorityLevel(severity, in.BusinessImpact)
	v.Confidence = ConfidenceScore(v.Evidence)
	return v
}
