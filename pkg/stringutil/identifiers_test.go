//go:build !integration

package stringutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDocumentName(t *testing.T) {
	assert.Equal(t, "glossary-intake", NormalizeDocumentName("glossary-intake"))
	assert.Equal(t, "glossary-intake", NormalizeDocumentName("glossary-intake.md"))
	assert.Equal(t, "my.glossary", NormalizeDocumentName("my.glossary.md"))
}

func TestIsMarkdownFile(t *testing.T) {
	assert.True(t, IsMarkdownFile("terms.md"))
	assert.True(t, IsMarkdownFile("docs/terms.md"))
	assert.False(t, IsMarkdownFile("terms.yml"))
	assert.False(t, IsMarkdownFile("terms"))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a glossary term", CollapseWhitespace("  a glossary\n\tterm  "))
	assert.Equal(t, "", CollapseWhitespace("   \n "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "long te...", Truncate("long text here", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2), "tiny budgets get a bare prefix")
	assert.Equal(t, "", Truncate("anything", 0))
}

func TestIsBlankValue(t *testing.T) {
	assert.True(t, IsBlankValue(""))
	assert.True(t, IsBlankValue("   "))
	assert.True(t, IsBlankValue("<blank>"))
	assert.True(t, IsBlankValue("  <BLANK>  "))
	assert.False(t, IsBlankValue("value"))
}

func TestTitleWords(t *testing.T) {
	assert.Equal(t, "Solution Blueprint", TitleWords("solution blueprint"))
	assert.Equal(t, "Glossary", TitleWords("glossary"))
	assert.Equal(t, "", TitleWords(""))
}

func TestTitleCamelWords(t *testing.T) {
	assert.Equal(t, "Display Name", TitleCamelWords("displayName"))
	assert.Equal(t, "Qualified Name", TitleCamelWords("qualifiedName"))
	assert.Equal(t, "Status", TitleCamelWords("status"))
}
