package auth

import (
	"slices"
	"strings"
)

// AllowedEmailsEnv names the environment variable holding the comma-separated allow-list.
const AllowedEmailsEnv = "ALLOWED_EMAILS"

// ParseAllowList splits a comma-separated list, dropping blanks.
func ParseAllowList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if email := strings.TrimSpace(part); email != "" {
			out = append(out, email)
		}
	}
	return out
}

// IsEmailAllowed reports whether email is on allowed. An empty list allows nobody.
func IsEmailAllowed(allowed []string, email string) bool {
	if len(allowed) == 0 || email == "" {
		return false
	}
	return slices.Contains(allowed, email)
}
