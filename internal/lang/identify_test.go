package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptIdentifier_NonLatinScripts(t *testing.T) {
	id := NewScriptIdentifier()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"devanagari", "नमस्ते आप कैसे हैं", "hi"},
		{"bengali", "আপনি কেমন আছেন", "bn"},
		{"tamil", "நீங்கள் எப்படி இருக்கிறீர்கள்", "ta"},
		{"telugu", "మీరు ఎలా ఉన్నారు", "te"},
		{"kannada", "ನೀವು ಹೇಗಿದ್ದೀರಿ", "kn"},
		{"malayalam", "സുഖമാണോ നിങ്ങൾക്ക്", "ml"},
		{"gurmukhi", "ਤੁਸੀਂ ਕਿਵੇਂ ਹੋ", "pa"},
		{"arabic script", "آپ کیسے ہیں", "ur"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := id.Identify(tt.text)
			assert.Equal(t, tt.want, tag.Code)
			assert.Greater(t, tag.Confidence, 0.0)
		})
	}
}

func TestScriptIdentifier_LatinStopwords(t *testing.T) {
	id := NewScriptIdentifier()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"english", "what is the weather like and how are you", "en"},
		{"spanish", "hola cómo estas el la que", "es"},
		{"french", "bonjour comment est que vous je", "fr"},
		{"german", "hallo wie ist das und der die", "de"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := id.Identify(tt.text)
			assert.Equal(t, tt.want, tag.Code)
			assert.Greater(t, tag.Confidence, 0.0)
		})
	}
}

func TestScriptIdentifier_TooShort(t *testing.T) {
	id := NewScriptIdentifier()

	for _, text := range []string{"", "   ", "ab", "a b", "... !!"} {
		tag := id.Identify(text)
		assert.True(t, tag.IsUnknown(), "text %q", text)
		assert.Zero(t, tag.Confidence, "text %q", text)
	}
}

func TestScriptIdentifier_NoSignal(t *testing.T) {
	id := NewScriptIdentifier()

	// Latin letters but no function-word hit in any table.
	tag := id.Identify("zzzz qqqq wwww xxxx")
	assert.True(t, tag.IsUnknown())
}

func TestScriptIdentifier_Deterministic(t *testing.T) {
	id := NewScriptIdentifier()
	text := "नमस्ते hello आप कैसे हैं the and"

	first := id.Identify(text)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, id.Identify(text))
	}
}

func TestTag_Unknown(t *testing.T) {
	u := Unknown()
	assert.Equal(t, CodeUnknown, u.Code)
	assert.Zero(t, u.Confidence)
	assert.True(t, u.IsUnknown())
	assert.False(t, Tag{Code: "hi", Confidence: 0.9}.IsUnknown())
}
