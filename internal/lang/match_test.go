package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "hindi", NormalizeName("Hindi language"))
	assert.Equal(t, "telugu", NormalizeName("  TELUGU  "))
	assert.Equal(t, "french", NormalizeName("french lang"))
	assert.Equal(t, "", NormalizeName("language"))
}

func TestMatchName_Exact(t *testing.T) {
	code, name, ok := MatchName("hindi")
	assert.True(t, ok)
	assert.Equal(t, "hi", code)
	assert.Equal(t, "hindi", name)
}

func TestMatchName_Code(t *testing.T) {
	code, name, ok := MatchName("te")
	assert.True(t, ok)
	assert.Equal(t, "te", code)
	assert.Equal(t, "telugu", name)
}

func TestMatchName_Misspelled(t *testing.T) {
	tests := []struct {
		input    string
		wantCode string
	}{
		{"inglish", "en"},
		{"hindee", "hi"},
		{"telegu", "te"},
		{"spanishh", "es"},
	}

	for _, tt := range tests {
		code, _, ok := MatchName(tt.input)
		assert.True(t, ok, "input %q", tt.input)
		assert.Equal(t, tt.wantCode, code, "input %q", tt.input)
	}
}

func TestMatchName_NoMatch(t *testing.T) {
	for _, input := range []string{"", "zzzzzzzzzzzz", "qqqqqq"} {
		_, _, ok := MatchName(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestSuggestions(t *testing.T) {
	got := Suggestions("hindo", 3)
	assert.Len(t, got, 3)
	assert.Equal(t, "hindi", got[0])

	// n larger than the table is clamped.
	all := Suggestions("x", 100)
	assert.Len(t, all, len(supportedNames))
}

func TestNLLBCode(t *testing.T) {
	assert.Equal(t, "hin_Deva", NLLBCode("hi"))
	assert.Equal(t, "tel_Telu", NLLBCode("te"))
	assert.Equal(t, "spa_Latn", NLLBCode("es"))

	// Unmapped codes fall back to English.
	assert.Equal(t, "eng_Latn", NLLBCode("xx"))
	assert.Equal(t, "eng_Latn", NLLBCode(CodeUnknown))
}

func TestIsIndic(t *testing.T) {
	assert.True(t, IsIndic("hi"))
	assert.True(t, IsIndic("sat"))
	assert.False(t, IsIndic("en"))
	assert.False(t, IsIndic(""))
}
