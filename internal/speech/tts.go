package speech

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/mattn/go-shellwords"
	log "github.com/sirupsen/logrus"
)

// Engine synthesizes text to the audio output
type Engine interface {
	Say(ctx context.Context, text string) error
}

// ExecEngine speaks by running a synthesis program such as espeak with the
// text as its final argument. Runs are serialized.
type ExecEngine struct {
	cmd []string
	mu  sync.Mutex
}

// NewExecEngine parses command and checks that its program is installed
func NewExecEngine(command string) (*ExecEngine, error) {
	args, err := shellwords.NewParser().Parse(command)
	if err != nil {
		return nil, fmt.Errorf("speech: parse tts command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("speech: tts command is empty")
	}
	if _, err := exec.LookPath(args[0]); err != nil {
		return nil, fmt.Errorf("speech: tts engine not found: %w", err)
	}
	return &ExecEngine{cmd: args}, nil
}

// Say blocks until the program exits
func (e *ExecEngine) Say(ctx context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	args := append(append([]string{}, e.cmd[1:]...), text)
	out, err := exec.CommandContext(ctx, e.cmd[0], args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("speech: tts command failed: %w: %s", err, out)
	}
	return nil
}

// Speaker is the process-wide text-to-speech handle. A speaker whose engine
// failed to initialize is disabled and ignores every request.
type Speaker struct {
	engine  Engine
	enabled bool
}

// NewSpeaker wraps engine; initErr is the error from creating it
func NewSpeaker(engine Engine, initErr error) *Speaker {
	if initErr != nil {
		log.WithError(initErr).Warn("text-to-speech disabled")
	}
	return &Speaker{
		engine:  engine,
		enabled: initErr == nil && engine != nil,
	}
}

// Enabled reports whether speech output is available
func (s *Speaker) Enabled() bool {
	return s != nil && s.enabled
}

// Speak plays text in the background and returns immediately.
// Failures are logged and dropped.
func (s *Speaker) Speak(text string) {
	if !s.Enabled() {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("text-to-speech panicked")
			}
		}()
		if err := s.engine.Say(context.Background(), text); err != nil {
			log.WithError(err).Debug("text-to-speech failed")
		}
	}()
}
