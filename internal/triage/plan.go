package triage

import (
	"sort"

	"github.com/b45t3rr/genai-triage/internal/model"
)

var priorityRank = map[model.Priority]int{
	model.PriorityP0: 0,
	model.PriorityP1: 1,
	model.PriorityP2: 2,
	model.PriorityP3: 3,
	model.PriorityP4: 4,
}

// remediationTime is the fixed priority → estimated-duration table.
var remediationTime = map[model.Priority]string{
	model.PriorityP0: "< 24 horas",
	model.PriorityP1: "< 1 semana",
	model.PriorityP2: "< 1 mes",
	model.PriorityP3: "< 3 meses",
	model.PriorityP4: "Cuando sea posible",
}

// EstimatedTime returns the canonical remediation-time string for a tier.
func EstimatedTime(p model.Priority) string {
	if t, ok := remediationTime[p]; ok {
		return t
	}
	return "No definido"
}

// RemediationPlan orders the batch by priority tier (P0 first, ties keep
// input order) and emits one plan item per vulnerability with its estimated
// time, the union of required resources and up to three main actions.
func RemediationPlan(vulns []model.TriagedVulnerability) []model.PlanItem {
	sorted := make([]model.TriagedVulnerability, len(vulns))
	copy(sorted, vulns)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, ok := priorityRank[sorted[i].Priority]
		if !ok {
			ri = len(priorityRank)
		}
		rj, ok := priorityRank[sorted[j].Priority]
		if !ok {
			rj = len(priorityRank)
		}
		return ri < rj
	})

	plan := make([]model.PlanItem, 0, len(sorted))
	for i, v := range sorted {
		plan = append(plan, model.PlanItem{
			Rank:            i + 1,
			VulnerabilityID: v.ID,
			Name:            v.Name,
			Priority:        v.Priority,
			Severity:        v.TriageSeverity,
			EstimatedTime:   EstimatedTime(v.Priority),
			Resources:       resourceUnion(v.Recommendations),
			MainActions:     mainActions(v.Recommendations),
		})
	}
	return plan
}

// resourceUnion collects the distinct required resources across all
// recommendations, preserving first-seen order for determinism.
func resourceUnion(recs []model.TriageRecommendation) []string {
	seen := make(map[string]bool)
	union := []string{}
	for _, rec := range recs {
		for _, res := range rec.Resources {
			if !seen[res] {
				seen[res] = true
				union = append(union, res)
			}
		}
	}
	return union
}

// mainActions returns the first three recommendation descriptions.
func mainActions(recs []model.TriageRecommendation) []string {
	actions := []string{}
	for _, rec := range recs {
		if rec.Description == "" {
			continue
		}
		actions = append(actions, rec.Description)
		if len(actions) == 3 {
			break
		}
	}
	return actions
}
