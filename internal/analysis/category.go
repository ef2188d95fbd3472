package analysis

import "strings"

// vulnerabilityPatterns maps a category name to the keyword fragments that
// identify it in a finding's name or description. Checked in order, first
// match wins, so ambiguous text classifies deterministically.
var vulnerabilityPatterns = []struct {
	category string
	keywords []string
}{
	{"Sql Injection", []string{"sql injection", "sqli", "union select", "' or 1=1"}},
	{"Xss", []string{"cross-site scripting", "xss", "<script>", "javascript:"}},
	{"Csrf", []string{"cross-site request forgery", "csrf", "token"}},
	{"Lfi", []string{"local file inclusion", "lfi", "../", "directory traversal"}},
	{"Rfi", []string{"remote file inclusion", "rfi", "include"}},
	{"Command Injection", []string{"command injection", "code execution", "system()"}},
	{"Authentication", []string{"authentication", "login", "password", "session"}},
	{"Authorization", []string{"authorization", "access control", "privilege"}},
	{"Information Disclosure", []string{"information disclosure", "sensitive data", "exposure"}},
}

// ClassifyCategory assigns a vulnerability category from keyword matching
// over the finding's name and description. Unmatched findings land in
// "Otros".
func ClassifyCategory(name, description string) string {
	text := strings.ToLower(name + " " + description)
	for _, entry := range vulnerabilityPatterns {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.category
			}
		}
	}
	return "Otros"
}
