//go:build !integration

package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	t.Run("empty headers renders nothing", func(t *testing.T) {
		out := RenderTable(TableConfig{})
		assert.Empty(t, out)
	})

	t.Run("aligns columns", func(t *testing.T) {
		out := RenderTable(TableConfig{
			Headers: []string{"Display Name", "GUID"},
			Rows: [][]string{
				{"Sustainability", "a1b2"},
				{"Ops", "c3d4"},
			},
		})

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[0], "Display Name")
		assert.Contains(t, lines[1], "---")
		// Both data rows start the GUID column at the same offset.
		assert.Equal(t, strings.Index(lines[2], "a1b2"), strings.Index(lines[3], "c3d4"))
	})

	t.Run("pads short rows", func(t *testing.T) {
		out := RenderTable(TableConfig{
			Headers: []string{"Name", "Description", "Status"},
			Rows:    [][]string{{"only-name"}},
		})
		assert.Contains(t, out, "only-name")
	})

	t.Run("truncates wide cells", func(t *testing.T) {
		out := RenderTable(TableConfig{
			Headers:        []string{"Description"},
			Rows:           [][]string{{strings.Repeat("x", 100)}},
			MaxColumnWidth: 20,
		})
		assert.Contains(t, out, "xxx...")
		assert.NotContains(t, out, strings.Repeat("x", 21))
	})

	t.Run("collapses embedded newlines", func(t *testing.T) {
		out := RenderTable(TableConfig{
			Headers: []string{"Description"},
			Rows:    [][]string{{"wrapped\nmarkdown\nbody"}},
		})
		assert.Contains(t, out, "wrapped markdown body")
	})
}

func TestFormatMessages(t *testing.T) {
	t.Setenv("ACCESSIBLE", "1")

	t.Run("accessible prefixes", func(t *testing.T) {
		assert.Equal(t, "SUCCESS: created", FormatSuccessMessage("created"))
		assert.Equal(t, "INFO: connecting", FormatInfoMessage("connecting"))
		assert.Equal(t, "WARNING: token expires soon", FormatWarningMessage("token expires soon"))
		assert.Equal(t, "ERROR: not found", FormatErrorMessage("not found"))
	})

	t.Run("suggestions are listed", func(t *testing.T) {
		out := FormatErrorWithSuggestions("glossary 'x' not found", []string{
			"Run 'mf glossary list' to see available glossaries",
			"Check for typos in the glossary name",
		})
		assert.Contains(t, out, "glossary 'x' not found")
		assert.Contains(t, out, "glossary list")
	})
}
