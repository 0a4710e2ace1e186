package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

// Info is what a WAV header reveals about a clip. Used for run logging only.
type Info struct {
	SampleRate uint32
	Channels   uint16
	BitsPerSap uint16
	DataBytes  uint32
}

// Duration derives the clip length from the header fields.
func (i Info) Duration() time.Duration {
	bytesPerSecond := i.SampleRate * uint32(i.Channels) * uint32(i.BitsPerSap) / 8
	if bytesPerSecond == 0 {
		return 0
	}
	return time.Duration(float64(i.DataBytes) / float64(bytesPerSecond) * float64(time.Second))
}

// ParseWAVHeader reads the RIFF/fmt/data chunks of a WAV byte stream.
// Anything that is not a linear PCM WAV returns an error; callers treat the
// clip as opaque in that case and skip duration logging.
func ParseWAVHeader(data []byte) (Info, error) {
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return Info{}, fmt.Errorf("not a RIFF/WAVE stream")
	}

	var info Info
	sawFmt := false
	off := 12
	for off+8 <= len(data) {
		id := data[off : off+4]
		size := binary.LittleEndian.Uint32(data[off+4 : off+8])
		body := off + 8

		switch {
		case bytes.Equal(id, []byte("fmt ")):
			if body+16 > len(data) {
				return Info{}, fmt.Errorf("truncated fmt chunk")
			}
			info.Channels = binary.LittleEndian.Uint16(data[body+2 : body+4])
			info.SampleRate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			info.BitsPerSap = binary.LittleEndian.Uint16(data[body+14 : body+16])
			sawFmt = true
		case bytes.Equal(id, []byte("data")):
			info.DataBytes = size
			if sawFmt {
				return info, nil
			}
		}

		// Chunks are word-aligned.
		off = body + int(size)
		if size%2 == 1 {
			off++
		}
	}

	if !sawFmt {
		return Info{}, fmt.Errorf("missing fmt chunk")
	}
	return info, nil
}
