package speech

import (
	"context"
	"errors"
)

var (
	// ErrUnintelligible means the audio was processed but no speech was recognized
	ErrUnintelligible = errors.New("speech: could not understand audio")
	// ErrServiceUnavailable means the recognition backend could not be reached
	ErrServiceUnavailable = errors.New("speech: recognition service unavailable")
	// ErrInvalidAudio means the upload is not a decodable PCM WAV file
	ErrInvalidAudio = errors.New("speech: invalid audio")
)

// Recognizer turns an uploaded audio clip into text
type Recognizer interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Available() bool
}
