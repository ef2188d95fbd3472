package output

// Severity indicator - Unicode dot with color applied via lipgloss styling.
// This provides consistent rendering across terminals and respects
// --color=never.
const (
	// SeverityDot is the universal severity indicator.
	// Color is applied via GetSeverityText() styling.
	SeverityDot = "●"
)

// Status icons
const (
	IconSuccess = "✓"
	IconFailure = "✗"
	IconPointer = "►"
)

// GetConfidenceIcon returns an icon based on analysis confidence in [0,1].
func GetConfidenceIcon(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return IconSuccess
	case confidence >= 0.5:
		return "~"
	default:
		return "?"
	}
}
