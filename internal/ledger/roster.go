package ledger

import "strings"

// ParseNames splits a comma-separated roster into trimmed, unique, sorted names.
// Blank input yields nil.
func ParseNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			seen[name] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	return sortedKeys(seen)
}

// Roster returns the sorted union of the payer and participant rosters.
func Roster(payers, participants string) []string {
	seen := make(map[string]bool)
	for _, name := range ParseNames(payers) {
		seen[name] = true
	}
	for _, name := range ParseNames(participants) {
		seen[name] = true
	}
	if len(seen) == 0 {
		return nil
	}
	return sortedKeys(seen)
}
