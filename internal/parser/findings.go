package parser

import (
	"errors"
	"fmt"
)

// ErrNoFindings is returned when none of the supported keys yields a
// non-empty vulnerability list.
var ErrNoFindings = errors.New("no findings in report: supported keys are 'hallazgos_principales', 'vulnerabilidades', 'findings'")

// findingsSource is one accessor of the ordered fallback chain used to pull
// the vulnerability list out of a raw report. Upstream phases name the list
// differently (PDF extraction, dynamic scan, generic findings), so each
// accessor is tried in sequence and the first non-empty result wins.
type findingsSource struct {
	name string
	get  func(map[string]any) []map[string]any
}

var findingsSources = []findingsSource{
	{"hallazgos_principales", func(r map[string]any) []map[string]any {
		return MapSlice(r["hallazgos_principales"])
	}},
	{"analisis_pdf.hallazgos_principales", func(r map[string]any) []map[string]any {
		pdf, _ := r["analisis_pdf"].(map[string]any)
		return MapSlice(pdf["hallazgos_principales"])
	}},
	{"vulnerabilidades", func(r map[string]any) []map[string]any {
		return MapSlice(r["vulnerabilidades"])
	}},
	{"findings", func(r map[string]any) []map[string]any {
		return MapSlice(r["findings"])
	}},
}

// Findings resolves the vulnerability list of a raw report through the
// accessor chain, returning the list and the key it was found under.
func Findings(report map[string]any) ([]map[string]any, string, error) {
	for _, src := range findingsSources {
		if list := src.get(report); len(list) > 0 {
			return list, src.name, nil
		}
	}
	return nil, "", ErrNoFindings
}

// EvidenceText resolves the free-text evidence of a raw finding, trying the
// field names the different upstream phases use.
func EvidenceText(finding map[string]any) string {
	for _, key := range []string{"detailed_proof_of_concept", "evidencia", "detalles"} {
		if s, ok := finding[key].(string); ok && s != "" {
			return s
		}
	}
	return "No se proporcionó evidencia detallada"
}

// StringField returns the first non-empty string among the given keys.
func StringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// StringSlice coerces a JSON array value into []string, skipping non-strings.
func StringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Float returns a numeric field as float64, with a fallback default.
func Float(m map[string]any, key string, def float64) float64 {
	if f, ok := m[key].(float64); ok {
		return f
	}
	return def
}

// Bool returns a boolean field with a fallback default.
func Bool(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

// MapSlice coerces a JSON array value into a slice of objects, skipping
// entries of any other shape.
func MapSlice(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// DescribeSource formats the resolved source key for log lines.
func DescribeSource(key string, count int) string {
	return fmt.Sprintf("%d findings under %q", count, key)
}
