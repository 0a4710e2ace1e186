package espeak

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoiceFor(t *testing.T) {
	assert.Equal(t, "en-us", VoiceFor("en"))
	assert.Equal(t, "fr-fr", VoiceFor("fr"))
	assert.Equal(t, "cmn", VoiceFor("zh"))

	// Unmapped codes fall back to English.
	assert.Equal(t, "en-us", VoiceFor("hi"))
	assert.Equal(t, "en-us", VoiceFor(""))
}
