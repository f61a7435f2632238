package provider

import (
	"regexp"
	"strings"
)

// MaxLoggedBody caps how much of a provider payload reaches the log.
const MaxLoggedBody = 4 << 10

const redacted = "[REDACTED]"

// sensitiveKey matches field names whose values never reach the log.
const sensitiveKey = `(?:[a-z_]*secret[a-z_]*|sign|signature|password|passwd|api_?key|[a-z_]*token|card_?number|card|cvv|cvc|pan|authorization)`

var (
	jsonSecret = regexp.MustCompile(`(?i)("` + sensitiveKey + `"\s*:\s*)("(?:[^"\\]|\\.)*"|[^,}\s]+)`)
	formSecret = regexp.MustCompile(`(?i)(^|&)(` + sensitiveKey + `=)[^&]*`)
)

// RedactBody masks credential-bearing JSON or form fields in body and cuts
// the result to MaxLoggedBody bytes.
func RedactBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	s := string(body)
	if trimmed := strings.TrimSpace(s); strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		s = jsonSecret.ReplaceAllString(s, `${1}"`+redacted+`"`)
	} else {
		s = formSecret.ReplaceAllString(s, "${1}${2}"+redacted)
	}
	if len(s) > MaxLoggedBody {
		s = s[:MaxLoggedBody] + "...(truncated)"
	}
	return s
}
