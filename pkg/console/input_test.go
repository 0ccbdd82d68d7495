//go:build !integration

package console

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Huh prompts need a live terminal, so these tests exercise the structural
// checks and the no-TTY error path that CI always takes.

func TestPromptInput(t *testing.T) {
	t.Run("errors outside a terminal", func(t *testing.T) {
		_, err := PromptInput("View server", "Name of the view server to connect to", "view-server")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a TTY")
	})

	t.Run("empty title and placeholder are accepted", func(t *testing.T) {
		_, err := PromptInput("", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a TTY")
	})
}

func TestPromptSecretInput(t *testing.T) {
	t.Run("errors outside a terminal", func(t *testing.T) {
		_, err := PromptSecretInput("Password for mfuser", "Used once to obtain a token")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a TTY")
	})
}

func TestPromptInputWithValidation(t *testing.T) {
	t.Run("validator is accepted but TTY check comes first", func(t *testing.T) {
		minLen := func(s string) error {
			if len(s) < 3 {
				return fmt.Errorf("must be at least 3 characters")
			}
			return nil
		}
		_, err := PromptInputWithValidation("Glossary name", "", "Sustainability", minLen)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a TTY")
	})
}

func TestConfirmAction(t *testing.T) {
	t.Run("errors outside a terminal", func(t *testing.T) {
		_, err := ConfirmAction("Delete glossary Sustainability?", "This cannot be undone")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a TTY")
	})
}
