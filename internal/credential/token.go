package credential

import "regexp"

// tokenPattern matches Telegram bot tokens: {bot_id}:{35 char secret}.
var tokenPattern = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]{35}$`)

const maskedPrefixLen = 10

// Valid reports whether v is a string holding a well-formed bot token.
// Any other type, including nil, is invalid.
func Valid(v any) bool {
	token, ok := v.(string)
	if !ok || token == "" {
		return false
	}

	return tokenPattern.MatchString(token)
}

// Mask returns a log-safe representation of a token.
func Mask(token string) string {
	if len(token) <= maskedPrefixLen {
		return "..."
	}

	return token[:maskedPrefixLen] + "..."
}
