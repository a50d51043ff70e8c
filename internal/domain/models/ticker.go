package models

import "strings"

// NormalizeTicker maps a user-supplied symbol to the provider form: uppercase,
// trimmed, and suffixed with ".JK" unless it is an index symbol (leading "^")
// or already carries the exchange suffix. Idempotent.
func NormalizeTicker(t string) string {
	t = strings.ToUpper(strings.TrimSpace(t))
	if strings.HasPrefix(t, "^") {
		return t
	}
	if strings.HasSuffix(t, ".JK") {
		return t
	}
	return t + ".JK"
}
