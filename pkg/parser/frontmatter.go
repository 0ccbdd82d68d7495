// Package parser provides the markdown primitives shared by the command
// processor: frontmatter extraction, heading scanning, and section
// splitting. It performs linear text scanning with no grammar; semantics
// belong to the mdcmd package.
package parser

import (
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/metaforge-io/metaforge/pkg/logger"
)

var frontmatterLog = logger.New("parser:frontmatter")

// Document is a markdown file split into YAML frontmatter and body content.
type Document struct {
	// Frontmatter holds the parsed YAML block, or an empty map when the
	// file has none.
	Frontmatter map[string]any
	// Content is the markdown body with the frontmatter block removed.
	Content string
}

// ExtractFrontmatter splits content into its optional YAML frontmatter and
// the remaining markdown. A frontmatter block is delimited by "---" lines at
// the very top of the file.
func ExtractFrontmatter(content string) (*Document, error) {
	doc := &Document{
		Frontmatter: map[string]any{},
		Content:     content,
	}

	trimmed := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(trimmed, "---\n") && trimmed != "---" {
		return doc, nil
	}

	// The terminator must be a line that is exactly "---"; lines like
	// "----" or "--- extra" belong to the YAML block.
	rest := strings.TrimPrefix(trimmed, "---\n")
	lines := strings.Split(rest, "\n")
	term := -1
	for i, line := range lines {
		if line == "---" {
			term = i
			break
		}
	}
	if term < 0 {
		frontmatterLog.Print("Unterminated frontmatter block, treating file as plain markdown")
		return doc, nil
	}

	yamlBlock := strings.Join(lines[:term], "\n")
	body := strings.Join(lines[term+1:], "\n")

	if err := yaml.Unmarshal([]byte(yamlBlock), &doc.Frontmatter); err != nil {
		return nil, err
	}
	if doc.Frontmatter == nil {
		doc.Frontmatter = map[string]any{}
	}
	doc.Content = body
	frontmatterLog.Printf("Extracted frontmatter: %d keys, body=%d bytes", len(doc.Frontmatter), len(body))
	return doc, nil
}

// StringField returns a string-valued frontmatter field, or the empty string
// when absent or of another type.
func (d *Document) StringField(name string) string {
	if v, ok := d.Frontmatter[name].(string); ok {
		return v
	}
	return ""
}
