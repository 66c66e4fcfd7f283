package tools

import "strings"

// SuggestedFix maps a Meta rejection reason to an actionable fix by substring
// classification. First match wins. Empty input yields empty output.
//
// The AUTHENTICATION rule is unreachable: any reason containing "variable"
// already matched the variable/parameter rule above it. Kept in this order
// until the intended precedence is decided.
func SuggestedFix(rejectionReason string) string {
	if rejectionReason == "" {
		return ""
	}

	reason := strings.ToLower(rejectionReason)

	if strings.Contains(reason, "url") && strings.Contains(reason, "button") {
		return "Add a URL button component when including URLs in the message body."
	}
	if strings.Contains(reason, "promotional") || strings.Contains(reason, "marketing") {
		return "Change category to MARKETING or remove promotional language."
	}
	if strings.Contains(reason, "variable") || strings.Contains(reason, "parameter") {
		return "Check variable format. Use {{1}}, {{2}}, etc. Ensure example values are provided."
	}
	if strings.Contains(reason, "authentication") && strings.Contains(reason, "variable") {
		return "AUTHENTICATION category allows only 1 variable for the OTP code."
	}

	return "Review Meta template guidelines and adjust content accordingly."
}
