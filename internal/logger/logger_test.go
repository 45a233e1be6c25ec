package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, quiet int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetTestOutput(&buf)
	t.Cleanup(UnsetTestOutput)
	InitLogger(quiet)
	return &buf
}

func TestQuietLevels(t *testing.T) {
	buf := capture(t, 0)
	Debugf("chatter %d", 1)
	Infof("progress")
	assert.Contains(t, buf.String(), "chatter 1")
	assert.Contains(t, buf.String(), "progress")

	buf = capture(t, 1)
	Debug("chatter")
	Info("progress")
	Warn("trouble")
	assert.NotContains(t, buf.String(), "chatter")
	assert.Contains(t, buf.String(), "progress")
	assert.Contains(t, buf.String(), "trouble")

	buf = capture(t, 2)
	Infof("progress")
	Warnf("trouble")
	Errorf("broken: %v", "disk")
	assert.NotContains(t, buf.String(), "progress")
	assert.NotContains(t, buf.String(), "trouble")
	assert.Contains(t, buf.String(), "broken: disk")
}

func TestFields(t *testing.T) {
	buf := capture(t, 0)
	Info("downloading", Fields{"file": "a.mp4", "size": 42})
	assert.Contains(t, buf.String(), "file=a.mp4")
	assert.Contains(t, buf.String(), "size=42")
}
