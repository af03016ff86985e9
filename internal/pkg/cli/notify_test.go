package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleNotifier_SetupRequired(t *testing.T) {
	var buffer strings.Builder
	notifier := NewConsoleNotifier(&buffer)

	notifier.SetupRequired("github", "https://github.com/settings/tokens")

	output := buffer.String()
	assert.Contains(t, output, "github")
	assert.Contains(t, output, "https://github.com/settings/tokens")
	assert.Contains(t, output, "Setup required")
}

func TestConsoleNotifier_IgnoresWriteFailure(t *testing.T) {
	notifier := NewConsoleNotifier(failingWriter{})

	// Must not panic; notices are best effort.
	notifier.SetupRequired("github", "https://example.com")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
