package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugToggle(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetDebug(false) })

	SetDebug(false)
	Debugf("hidden %d", 1)
	assert.NotContains(t, buf.String(), "hidden 1")

	SetDebug(true)
	Debugf("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}

func TestLevelsWritten(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Infof("info %s", "a")
	Warnf("warn %s", "b")
	Errorf("error %s", "c")

	out := buf.String()
	assert.Contains(t, out, "info a")
	assert.Contains(t, out, "warn b")
	assert.Contains(t, out, "error c")
}
