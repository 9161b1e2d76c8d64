package logging

import "strings"

// SecretKeyPatterns contains substrings that indicate a key likely contains sensitive data.
// Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// TokenPrefixes contains known API token prefixes that indicate sensitive values
// regardless of key name.
var TokenPrefixes = []string{
	"ghp_",  // GitHub personal access token
	"gho_",  // GitHub OAuth token
	"ghs_",  // GitHub server-to-server token
	"sk-",   // OpenAI/Anthropic keys
	"AKIA",  // AWS access key prefix
	"xoxb-", // Slack bot token
	"xoxp-", // Slack user token
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsToken reports whether value contains a known token prefix anywhere.
// Buffer lines such as `export GH=ghp_...` carry the token mid-line.
func ContainsToken(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.Contains(value, prefix) {
			return true
		}
	}
	return false
}

// redact returns the value to print for an attribute.
func redact(key string, value any) any {
	switch v := value.(type) {
	case string:
		if ShouldMask(key) || ContainsToken(v) {
			return MaskValue(v)
		}
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			if ShouldMask(key) || ContainsToken(s) {
				s = MaskValue(s)
			}
			out[i] = s
		}
		return out
	}
	return value
}
