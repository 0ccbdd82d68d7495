package parser

import (
	"regexp"
	"strings"
)

// Heading is a markdown ATX heading.
type Heading struct {
	// Level is the number of leading # characters.
	Level int
	// Text is the heading text with surrounding whitespace removed.
	Text string
	// Line is the zero-based line number in the scanned content.
	Line int
}

var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*#*\s*$`)

// ScanHeadings returns every ATX heading in content in document order.
// Headings inside fenced code blocks are skipped.
func ScanHeadings(content string) []Heading {
	var headings []Heading
	inFence := false
	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			headings = append(headings, Heading{
				Level: len(m[1]),
				Text:  m[2],
				Line:  i,
			})
		}
	}
	return headings
}

// Section is a heading together with the body text that follows it, up to
// the next heading of the same or shallower level.
type Section struct {
	Heading Heading
	// Body is the raw text between this heading and the next boundary.
	Body string
}

// SplitSections splits content into the sections introduced by headings of
// exactly the given level. Text before the first matching heading is
// discarded. Deeper headings stay inside the enclosing section's body.
func SplitSections(content string, level int) []Section {
	lines := strings.Split(content, "\n")
	headings := ScanHeadings(content)

	var boundaries []Heading
	for _, h := range headings {
		if h.Level <= level {
			boundaries = append(boundaries, h)
		}
	}

	var sections []Section
	for i, h := range boundaries {
		if h.Level != level {
			continue
		}
		endLine := len(lines)
		if i+1 < len(boundaries) {
			endLine = boundaries[i+1].Line
		}
		body := strings.Join(lines[h.Line+1:endLine], "\n")
		sections = append(sections, Section{
			Heading: h,
			Body:    strings.TrimSpace(body),
		})
	}
	return sections
}

// Subsections splits a section body into its immediate subsections, i.e. the
// sections introduced by headings one level deeper.
func (s Section) Subsections() []Section {
	return SplitSections(s.Body, s.Heading.Level+1)
}
