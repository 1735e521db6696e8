package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)

	t.Cleanup(func() {
		color.NoColor = noColor
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("loaded %d terms", 3)
	Info("source %s", "x")
	Warn("slow")

	assert.Equal(t, "[DEBUG] loaded 3 terms\n[INFO] source x\n[WARN] slow\n", buf.String())
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestError_AlwaysPrints(t *testing.T) {
	buf := capture(t, false)

	Error("failed: %v", "boom")
	assert.Equal(t, "[ERROR] failed: boom\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Dictionary")
	assert.Equal(t, "\n=== Dictionary ===\n", buf.String())
}
