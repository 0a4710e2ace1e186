package lang

import (
	"sort"
	"strings"
)

// supportedNames maps spoken/typed language names to codes. These are the
// target languages a user may select by name.
var supportedNames = map[string]string{
	"english":   "en",
	"hindi":     "hi",
	"telugu":    "te",
	"tamil":     "ta",
	"german":    "de",
	"french":    "fr",
	"bengali":   "bn",
	"marathi":   "mr",
	"kannada":   "kn",
	"malayalam": "ml",
	"japanese":  "ja",
	"spanish":   "es",
	"gujarati":  "gu",
	"punjabi":   "pa",
}

// matchCutoff is the minimum similarity ratio for a name match.
const matchCutoff = 0.5

// NormalizeName normalizes spoken or typed language input.
func NormalizeName(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "language", "")
	s = strings.ReplaceAll(s, "lang", "")
	return strings.TrimSpace(s)
}

// MatchName matches spoken or typed input against the supported language
// names, tolerating minor misspellings. It returns the code and canonical
// name, or ok=false when nothing clears the similarity cutoff.
func MatchName(input string) (code, name string, ok bool) {
	normalized := NormalizeName(input)
	if normalized == "" {
		return "", "", false
	}

	// Exact code input ("hi", "es") is accepted directly.
	for n, c := range supportedNames {
		if normalized == c {
			return c, n, true
		}
	}

	best, bestRatio := "", 0.0
	for n := range supportedNames {
		if r := similarity(normalized, n); r > bestRatio {
			best, bestRatio = n, r
		}
	}

	if bestRatio < matchCutoff {
		return "", "", false
	}
	return supportedNames[best], best, true
}

// Suggestions returns up to n supported names closest to the input,
// best first. Used for the manual-selection error path.
func Suggestions(input string, n int) []string {
	normalized := NormalizeName(input)

	type scored struct {
		name  string
		ratio float64
	}
	candidates := make([]scored, 0, len(supportedNames))
	for name := range supportedNames {
		candidates = append(candidates, scored{name, similarity(normalized, name)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].ratio != candidates[j].ratio {
			return candidates[i].ratio > candidates[j].ratio
		}
		return candidates[i].name < candidates[j].name
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]string, 0, n)
	for _, c := range candidates[:n] {
		out = append(out, c.name)
	}
	return out
}

// similarity is a Levenshtein-based ratio in [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}

	longest := la
	if lb > longest {
		longest = lb
	}
	return 1 - float64(levenshtein([]rune(a), []rune(b)))/float64(longest)
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
