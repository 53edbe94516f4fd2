package logging

import (
	"errors"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineFormatter_Format(t *testing.T) {
	entry := &log.Entry{
		Logger:  log.New(),
		Time:    time.Date(2026, 10, 19, 14, 2, 11, 0, time.UTC),
		Level:   log.WarnLevel,
		Message: "weather lookup failed\n",
		Data: log.Fields{
			"city":  "paris",
			"error": errors.New("boom"),
		},
	}

	out, err := (&LineFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2026-10-19 14:02:11] [warn ] weather lookup failed | city=paris, error=boom\n", string(out))
}

func TestSetup_WritesRotatingFile(t *testing.T) {
	path := t.TempDir() + "/logs/app.log"

	closer, err := Setup(Options{Level: "debug", File: path})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = closer.Close()
		_, _ = Setup(Options{Level: "info"})
	})

	assert.Equal(t, log.DebugLevel, log.GetLevel())
	log.Info("hello")
	assert.FileExists(t, path)
}
