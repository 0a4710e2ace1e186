package audio

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWAV assembles a minimal PCM WAV byte stream.
func buildWAV(sampleRate uint32, channels, bits uint16, dataBytes uint32) []byte {
	var buf []byte
	buf = append(buf, []byte("RIFF")...)
	buf = binary.LittleEndian.AppendUint32(buf, 36+dataBytes)
	buf = append(buf, []byte("WAVE")...)

	buf = append(buf, []byte("fmt ")...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, channels)
	buf = binary.LittleEndian.AppendUint32(buf, sampleRate)
	byteRate := sampleRate * uint32(channels) * uint32(bits) / 8
	buf = binary.LittleEndian.AppendUint32(buf, byteRate)
	buf = binary.LittleEndian.AppendUint16(buf, channels*bits/8)
	buf = binary.LittleEndian.AppendUint16(buf, bits)

	buf = append(buf, []byte("data")...)
	buf = binary.LittleEndian.AppendUint32(buf, dataBytes)
	buf = append(buf, make([]byte, dataBytes)...)
	return buf
}

func TestParseWAVHeader(t *testing.T) {
	data := buildWAV(16000, 1, 16, 32000)

	info, err := ParseWAVHeader(data)
	require.NoError(t, err)

	assert.Equal(t, uint32(16000), info.SampleRate)
	assert.Equal(t, uint16(1), info.Channels)
	assert.Equal(t, uint16(16), info.BitsPerSap)
	assert.Equal(t, uint32(32000), info.DataBytes)

	// 32000 bytes at 16kHz mono 16-bit is exactly one second.
	assert.Equal(t, time.Second, info.Duration())
}

func TestParseWAVHeader_Stereo(t *testing.T) {
	data := buildWAV(44100, 2, 16, 44100*4)

	info, err := ParseWAVHeader(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), info.Channels)
	assert.Equal(t, time.Second, info.Duration())
}

func TestParseWAVHeader_NotWAV(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte("hello"),
		[]byte("RIFFxxxxMP3 "),
	} {
		_, err := ParseWAVHeader(data)
		assert.Error(t, err)
	}
}

func TestInfo_DurationZeroRate(t *testing.T) {
	assert.Zero(t, Info{}.Duration())
}
