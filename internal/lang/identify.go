package lang

import (
	"strings"
	"unicode"
)

// Identifier classifies recognized text into a language tag.
// Implementations must be deterministic: identical input yields identical tags.
type Identifier interface {
	Identify(text string) Tag
}

// ScriptIdentifier classifies text by Unicode script membership, falling back
// to function-word counting for Latin-script text. Input too short to carry a
// signal yields the unknown tag rather than an error; callers route around it.
type ScriptIdentifier struct {
	// MinLetters is the minimum number of letters required to attempt
	// classification. Below it the unknown tag is returned.
	MinLetters int
}

// NewScriptIdentifier creates an identifier with the default minimum.
func NewScriptIdentifier() *ScriptIdentifier {
	return &ScriptIdentifier{MinLetters: 4}
}

// scriptTable maps a Unicode script to the dominant language code routed for
// that script. Marathi, Nepali and Sanskrit share Devanagari with Hindi; the
// specialized backend accepts the shared code, so the ambiguity is harmless
// for routing purposes.
var scriptTable = []struct {
	ranges *unicode.RangeTable
	code   string
}{
	{unicode.Devanagari, "hi"},
	{unicode.Bengali, "bn"},
	{unicode.Gurmukhi, "pa"},
	{unicode.Gujarati, "gu"},
	{unicode.Oriya, "or"},
	{unicode.Tamil, "ta"},
	{unicode.Telugu, "te"},
	{unicode.Kannada, "kn"},
	{unicode.Malayalam, "ml"},
	{unicode.Arabic, "ur"},
	{unicode.Cyrillic, "ru"},
	{unicode.Han, "zh"},
	{unicode.Hiragana, "ja"},
	{unicode.Katakana, "ja"},
	{unicode.Hangul, "ko"},
}

// latinStopwords are high-frequency function words per Latin-script language.
// Order is fixed so classification stays deterministic on ties.
var latinStopwords = []struct {
	code  string
	words map[string]bool
}{
	{"en", set("the", "and", "is", "are", "you", "what", "this", "that", "have", "with", "how")},
	{"es", set("el", "la", "los", "las", "es", "que", "como", "estas", "está", "cómo", "y", "hola")},
	{"fr", set("le", "la", "les", "est", "que", "comment", "vous", "je", "et", "bonjour")},
	{"de", set("der", "die", "das", "ist", "und", "wie", "ich", "nicht", "sie", "hallo")},
	{"pt", set("o", "os", "as", "é", "que", "como", "você", "e", "olá", "não")},
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Identify classifies text. The dominant non-Latin script decides directly;
// Latin text is matched against function-word tables.
func (si *ScriptIdentifier) Identify(text string) Tag {
	letters := 0
	latin := 0
	scriptCounts := make(map[string]int)

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++

		if unicode.Is(unicode.Latin, r) {
			latin++
			continue
		}
		for _, s := range scriptTable {
			if unicode.Is(s.ranges, r) {
				scriptCounts[s.code]++
				break
			}
		}
	}

	if letters < si.MinLetters {
		return Unknown()
	}

	// Dominant non-Latin script wins. Iterate the table, not the map, so
	// ties resolve deterministically.
	bestCode, bestCount := "", 0
	for _, s := range scriptTable {
		if c := scriptCounts[s.code]; c > bestCount {
			bestCode, bestCount = s.code, c
		}
	}
	if bestCount > 0 && bestCount >= latin {
		return Tag{Code: bestCode, Confidence: float64(bestCount) / float64(letters)}
	}

	if latin > 0 {
		return identifyLatin(text, latin, letters)
	}

	return Unknown()
}

// identifyLatin matches lowercase word tokens against per-language
// function-word tables.
func identifyLatin(text string, latin, letters int) Tag {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return Unknown()
	}

	bestCode, bestHits := "", 0
	for _, entry := range latinStopwords {
		hits := 0
		for _, w := range words {
			if entry.words[w] {
				hits++
			}
		}
		if hits > bestHits {
			bestCode, bestHits = entry.code, hits
		}
	}

	if bestHits == 0 {
		return Unknown()
	}

	hitRatio := float64(bestHits) / float64(len(words))
	latinShare := float64(latin) / float64(letters)

	confidence := latinShare * (0.5 + hitRatio/2)
	if confidence > 1 {
		confidence = 1
	}
	return Tag{Code: bestCode, Confidence: confidence}
}
