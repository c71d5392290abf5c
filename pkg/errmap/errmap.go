// Package errmap maps raw external-call failures to the human-readable
// messages surfaced to clients. Mapping is best-effort substring
// matching of known phrases with a generic fallback; validation and
// missing-precondition errors are produced elsewhere and never pass
// through here.
package errmap

import "strings"

// Generic is the fallback when no known phrase matches.
const Generic = "Something went wrong. Please try again"

var known = []struct {
	phrase  string
	message string
}{
	{"User already registered", "This account is already registered"},
	{"insufficient", "Insufficient balance to complete transaction"},
	{"network", "Network error. Please check your connection and try again"},
	{"Collection not found", "Habit collection not found. Create your first habit to initialize it"},
}

// Friendly returns the human-readable message for err.
func Friendly(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, k := range known {
		if strings.Contains(msg, k.phrase) {
			return k.message
		}
	}
	return Generic
}
