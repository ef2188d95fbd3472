package triage

import "github.com/b45t3rr/genai-triage/internal/model"

// Per-type base weights for confidence accumulation. Unknown types still
// contribute a token 0.05.
var evidenceWeight = map[model.EvidenceType]float64{
	model.EvidenceCode:          0.3,
	model.EvidenceHTTPResponse:  0.2,
	model.EvidenceFile:          0.15,
	model.EvidenceConfiguration: 0.1,
	model.EvidenceDatabase:      0.25,
}

// ConfidenceScore computes the analysis confidence in [0,1] from the type and
// criticality of the supporting evidence. This is a saturating accumulator,
// not an average: more evidence of high-value types always increases
// confidence until the 1.0 clamp.
func ConfidenceScore(evidence []model.Evidence) float64 {
	if len(evidence) == 0 {
		return 0.3
	}

	confidence := 0.5
	for _, ev := range evidence {
		weight, ok := evidenceWeight[ev.Type]
		if !ok {
			weight = 0.05
		}
		switch ev.Criticality {
		case model.ImpactHigh:
			weight *= 1.5
		case model.ImpactMedium:
			weight *= 1.2
		}
		confidence += weight
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
