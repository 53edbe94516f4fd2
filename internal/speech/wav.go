package speech

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-audio/wav"
)

// Clip is little-endian 16-bit PCM ready for LINEAR16 recognition
type Clip struct {
	PCM        []byte
	SampleRate int
	Channels   int
}

// Duration returns the playback length of the clip
func (c Clip) Duration() time.Duration {
	frames := len(c.PCM) / 2 / c.Channels
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// DecodeWAV reads a PCM WAV file, converts samples to 16 bits and keeps at most maxDuration of audio
func DecodeWAV(data []byte, maxDuration time.Duration) (Clip, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return Clip{}, fmt.Errorf("%w: not a PCM wav file", ErrInvalidAudio)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("%w: %v", ErrInvalidAudio, err)
	}

	sampleRate := int(dec.SampleRate)
	channels := int(dec.NumChans)
	if sampleRate <= 0 || channels <= 0 {
		return Clip{}, fmt.Errorf("%w: missing format", ErrInvalidAudio)
	}

	samples := buf.Data
	if maxDuration > 0 {
		limit := int(maxDuration.Seconds()*float64(sampleRate)) * channels
		if len(samples) > limit {
			samples = samples[:limit]
		}
	}
	if len(samples) == 0 {
		return Clip{}, fmt.Errorf("%w: no samples", ErrInvalidAudio)
	}

	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(to16Bit(s, int(dec.BitDepth))))
	}

	return Clip{PCM: pcm, SampleRate: sampleRate, Channels: channels}, nil
}

// to16Bit rescales a sample; 8-bit wav samples are unsigned
func to16Bit(sample, bitDepth int) int16 {
	switch {
	case bitDepth == 8:
		return int16((sample - 128) << 8)
	case bitDepth > 16:
		return int16(sample >> (bitDepth - 16))
	default:
		return int16(sample)
	}
}
