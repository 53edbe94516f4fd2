package speech

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEngine struct {
	said chan string
	err  error
}

func (e *recordingEngine) Say(_ context.Context, text string) error {
	e.said <- text
	return e.err
}

type panickingEngine struct{ done chan struct{} }

func (e *panickingEngine) Say(context.Context, string) error {
	defer close(e.done)
	panic("audio device gone")
}

func TestSpeaker_SpeakIsAsync(t *testing.T) {
	engine := &recordingEngine{said: make(chan string), err: errors.New("ignored")}
	speaker := NewSpeaker(engine, nil)
	require.True(t, speaker.Enabled())

	// the unbuffered channel blocks Say until we read, so Speak must not wait for it
	speaker.Speak("hello")

	select {
	case text := <-engine.said:
		assert.Equal(t, "hello", text)
	case <-time.After(time.Second):
		t.Fatal("engine was not invoked")
	}
}

func TestSpeaker_DisabledIsNoop(t *testing.T) {
	engine := &recordingEngine{said: make(chan string, 1)}
	speaker := NewSpeaker(engine, errors.New("espeak not installed"))

	assert.False(t, speaker.Enabled())
	speaker.Speak("hello")

	select {
	case <-engine.said:
		t.Fatal("disabled speaker invoked engine")
	case <-time.After(50 * time.Millisecond):
	}

	assert.False(t, NewSpeaker(nil, nil).Enabled())
}

func TestSpeaker_RecoversFromPanics(t *testing.T) {
	engine := &panickingEngine{done: make(chan struct{})}
	speaker := NewSpeaker(engine, nil)

	speaker.Speak("boom")

	select {
	case <-engine.done:
	case <-time.After(time.Second):
		t.Fatal("engine was not invoked")
	}
}

func TestNewExecEngine(t *testing.T) {
	_, err := NewExecEngine("")
	assert.Error(t, err)

	_, err = NewExecEngine("definitely-not-a-tts-binary -s 150")
	assert.Error(t, err)

	_, err = NewExecEngine(`espeak "unterminated`)
	assert.Error(t, err)
}

func TestExecEngine_Say(t *testing.T) {
	engine, err := NewExecEngine("true")
	if err != nil {
		t.Skip("true not available")
	}
	assert.NoError(t, engine.Say(context.Background(), "hello"))

	failing, err := NewExecEngine("false")
	if err != nil {
		t.Skip("false not available")
	}
	assert.Error(t, failing.Say(context.Background(), "hello"))
}
