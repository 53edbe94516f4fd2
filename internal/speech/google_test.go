package speech

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecognizeClient struct {
	mock.Mock
}

func (m *MockRecognizeClient) Recognize(ctx context.Context, req *speechpb.RecognizeRequest, _ ...gax.CallOption) (*speechpb.RecognizeResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*speechpb.RecognizeResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func transcript(texts ...string) *speechpb.RecognizeResponse {
	alts := make([]*speechpb.SpeechRecognitionAlternative, 0, len(texts))
	for _, text := range texts {
		alts = append(alts, &speechpb.SpeechRecognitionAlternative{Transcript: text})
	}
	return &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{{Alternatives: alts}},
	}
}

func newTestRecognizer(client recognizeClient) *GoogleRecognizer {
	return &GoogleRecognizer{client: client, language: "en-US", maxDuration: time.Minute}
}

func TestGoogleRecognizer_Transcribe(t *testing.T) {
	client := new(MockRecognizeClient)
	client.On("Recognize", mock.Anything, mock.MatchedBy(func(req *speechpb.RecognizeRequest) bool {
		cfg := req.GetConfig()
		return cfg.GetEncoding() == speechpb.RecognitionConfig_LINEAR16 &&
			cfg.GetSampleRateHertz() == 16000 &&
			cfg.GetLanguageCode() == "en-US" &&
			len(req.GetAudio().GetContent()) == 8
	})).Return(transcript(" weather in paris "), nil)

	text, err := newTestRecognizer(client).Transcribe(context.Background(), encodeWAV(t, 16000, 16, 1, []int{1, 2, 3, 4}))

	require.NoError(t, err)
	assert.Equal(t, "weather in paris", text)
	client.AssertExpectations(t)
}

func TestGoogleRecognizer_NoSpeech(t *testing.T) {
	client := new(MockRecognizeClient)
	client.On("Recognize", mock.Anything, mock.Anything).Return(&speechpb.RecognizeResponse{}, nil)

	_, err := newTestRecognizer(client).Transcribe(context.Background(), encodeWAV(t, 16000, 16, 1, []int{1, 2}))
	assert.ErrorIs(t, err, ErrUnintelligible)
}

func TestGoogleRecognizer_RPCFailure(t *testing.T) {
	client := new(MockRecognizeClient)
	client.On("Recognize", mock.Anything, mock.Anything).Return(nil, errors.New("rpc error: code = Unavailable"))

	_, err := newTestRecognizer(client).Transcribe(context.Background(), encodeWAV(t, 16000, 16, 1, []int{1, 2}))
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestGoogleRecognizer_WithoutClient(t *testing.T) {
	r := &GoogleRecognizer{language: "en-US"}

	assert.False(t, r.Available())
	assert.NoError(t, r.Close())

	_, err := r.Transcribe(context.Background(), encodeWAV(t, 16000, 16, 1, []int{1, 2}))
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	_, err = r.Transcribe(context.Background(), []byte("junk"))
	assert.ErrorIs(t, err, ErrInvalidAudio)
}
