package sdk

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// MatchProbes resolves a user-supplied probe pattern to probe names. An
// exact name wins; otherwise every fuzzy match is returned, best first.
// The order only affects display: a Finder restricted to these names still
// runs them in Probes order.
func MatchProbes(pattern string) []string {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	names := make([]string, len(probes))
	for i, p := range probes {
		if p.Name == pattern {
			return []string{p.Name}
		}
		names[i] = p.Name
	}
	matches := fuzzy.Find(pattern, names)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}
