package console

import (
	"strings"

	"github.com/metaforge-io/metaforge/pkg/stringutil"
)

// TableConfig configures how RenderTable lays out a table.
type TableConfig struct {
	// Title is rendered in bold above the table when non-empty.
	Title string
	// Headers are the column headings.
	Headers []string
	// Rows hold the cell values. Short rows are padded with empty cells.
	Rows [][]string
	// MaxColumnWidth truncates cells longer than this many runes.
	// A value of 0 means no truncation.
	MaxColumnWidth int
}

// RenderTable renders a plain-text table with aligned columns. Output is
// deterministic so it can be asserted against in tests and piped to other
// tools.
func RenderTable(cfg TableConfig) string {
	if len(cfg.Headers) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(cfg.Rows))
	for _, row := range cfg.Rows {
		cells := make([]string, len(cfg.Headers))
		for i := range cfg.Headers {
			if i < len(row) {
				cell := stringutil.CollapseWhitespace(row[i])
				if cfg.MaxColumnWidth > 0 {
					cell = stringutil.Truncate(cell, cfg.MaxColumnWidth)
				}
				cells[i] = cell
			}
		}
		rows = append(rows, cells)
	}

	widths := make([]int, len(cfg.Headers))
	for i, h := range cfg.Headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := len([]rune(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	if cfg.Title != "" {
		b.WriteString(headerStyle.Render(cfg.Title))
		b.WriteString("\n")
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if pad := widths[i] - len([]rune(cell)); pad > 0 && i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteString("\n")
	}

	writeRow(cfg.Headers)
	separators := make([]string, len(cfg.Headers))
	for i, w := range widths {
		separators[i] = strings.Repeat("-", w)
	}
	writeRow(separators)
	for _, row := range rows {
		writeRow(row)
	}

	return b.String()
}
