package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	speechapi "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
	log "github.com/sirupsen/logrus"
)

// recognizeClient is the subset of the Google Speech client used here
type recognizeClient interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
}

// GoogleRecognizer transcribes WAV uploads with Google Cloud Speech-to-Text
type GoogleRecognizer struct {
	client      recognizeClient
	closer      func() error
	language    string
	maxDuration time.Duration
}

// NewGoogleRecognizer creates a recognizer using Application Default Credentials.
// When the client cannot be created the recognizer is still returned, reports
// itself unavailable and fails every call with ErrServiceUnavailable.
func NewGoogleRecognizer(ctx context.Context, language string, maxDuration time.Duration) (*GoogleRecognizer, error) {
	r := &GoogleRecognizer{language: language, maxDuration: maxDuration}

	client, err := speechapi.NewClient(ctx)
	if err != nil {
		return r, fmt.Errorf("speech: failed to create google client: %w", err)
	}

	r.client = client
	r.closer = client.Close
	return r, nil
}

// Available reports whether a client was created
func (r *GoogleRecognizer) Available() bool {
	return r.client != nil
}

// Close cleans up the speech client connection
func (r *GoogleRecognizer) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}

// Transcribe decodes audio and returns the best transcript
func (r *GoogleRecognizer) Transcribe(ctx context.Context, audio []byte) (string, error) {
	clip, err := DecodeWAV(audio, r.maxDuration)
	if err != nil {
		return "", err
	}

	if r.client == nil {
		return "", ErrServiceUnavailable
	}

	resp, err := r.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(clip.SampleRate),
			AudioChannelCount: int32(clip.Channels),
			LanguageCode:      r.language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: clip.PCM},
		},
	})
	if err != nil {
		log.WithError(err).Warn("google speech recognize failed")
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	for _, result := range resp.GetResults() {
		for _, alt := range result.GetAlternatives() {
			if text := strings.TrimSpace(alt.GetTranscript()); text != "" {
				return text, nil
			}
		}
	}

	return "", ErrUnintelligible
}
