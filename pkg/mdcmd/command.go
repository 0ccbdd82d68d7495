package mdcmd

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/metaforge-io/metaforge/pkg/logger"
	"github.com/metaforge-io/metaforge/pkg/parser"
	"github.com/metaforge-io/metaforge/pkg/stringutil"
)

var commandLog = logger.New("mdcmd:command")

// Action is what a command does to its element.
type Action string

const (
	ActionCreate Action = "Create"
	ActionUpdate Action = "Update"
)

// ObjectType is the kind of element a command manipulates.
type ObjectType string

const (
	ObjectGlossary  ObjectType = "Glossary"
	ObjectTerm      ObjectType = "Term"
	ObjectCategory  ObjectType = "Category"
	ObjectProject   ObjectType = "Project"
	ObjectBlueprint ObjectType = "Solution Blueprint"
)

// commandHeading matches level-1 command headings such as "Create Term" or
// "Update Solution Blueprint". Surrounding words like "a"/"the" are
// tolerated.
var commandHeading = regexp.MustCompile(
	`(?i)^(create|update)\s+(?:a\s+|the\s+)?(glossary|term|category|project|solution\s+blueprint)$`)

// Command is one parsed markdown command.
type Command struct {
	Action     Action
	ObjectType ObjectType
	// Attributes maps canonical labels (e.g. "Term Name") to the section
	// body text, whitespace-collapsed. Blank sections are omitted.
	Attributes map[string]string
	// SourceLine is the zero-based line of the command heading in the
	// document body, for error reporting.
	SourceLine int
}

// Name returns the element name attribute of the command, e.g. the value of
// "Term Name" for a Term command.
func (c *Command) Name() string {
	return c.Attributes[objectSchemas[c.ObjectType].nameLabel]
}

// QualifiedName returns the explicit qualified name attribute, if present.
func (c *Command) QualifiedName() string {
	return c.Attributes["Qualified Name"]
}

// GUID returns the explicit GUID attribute, if present. Processed documents
// carry it so they round-trip as update documents.
func (c *Command) GUID() string {
	return c.Attributes["GUID"]
}

// EffectiveDates returns the parsed Effective From / Effective To
// attributes. Dates are parsed leniently; "2025-01-02", "Jan 2 2025", and
// similar all work.
func (c *Command) EffectiveDates() (from, to *time.Time, err error) {
	parse := func(label string) (*time.Time, error) {
		v, ok := c.Attributes[label]
		if !ok {
			return nil, nil
		}
		parsed, err := dateparse.ParseAny(v)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %s %q: %w", label, v, err)
		}
		return &parsed, nil
	}
	if from, err = parse("Effective From"); err != nil {
		return nil, nil, err
	}
	if to, err = parse("Effective To"); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// ListAttribute splits a comma-separated attribute such as "Categories" into
// its trimmed entries.
func (c *Command) ListAttribute(label string) []string {
	raw, ok := c.Attributes[label]
	if !ok {
		return nil
	}
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// ExtractCommands scans a markdown body for command sections and parses each
// into a Command. Non-command level-1 sections are ignored. Attribute labels
// are canonicalized through each object type's alias table; unknown labels
// are kept verbatim so validation can flag them.
func ExtractCommands(content string) []Command {
	var commands []Command
	for _, section := range parser.SplitSections(content, 1) {
		m := commandHeading.FindStringSubmatch(strings.TrimSpace(section.Heading.Text))
		if m == nil {
			continue
		}

		action := Action(stringutil.TitleWords(strings.ToLower(m[1])))
		objectType := ObjectType(stringutil.TitleWords(strings.ToLower(m[2])))

		cmd := Command{
			Action:     action,
			ObjectType: objectType,
			Attributes: map[string]string{},
			SourceLine: section.Heading.Line,
		}
		for _, sub := range section.Subsections() {
			label := canonicalLabel(objectType, sub.Heading.Text)
			if stringutil.IsBlankValue(sub.Body) {
				continue
			}
			cmd.Attributes[label] = stringutil.CollapseWhitespace(sub.Body)
		}
		commands = append(commands, cmd)
	}
	commandLog.Printf("Extracted %d commands", len(commands))
	return commands
}

// canonicalLabel folds label aliases ("Display Name" for "Glossary Name",
// case differences) into the canonical label for the object type.
func canonicalLabel(objectType ObjectType, label string) string {
	label = stringutil.CollapseWhitespace(label)
	schema, ok := objectSchemas[objectType]
	if !ok {
		return label
	}
	lower := strings.ToLower(label)
	if canonical, ok := schema.aliases[lower]; ok {
		return canonical
	}
	for _, known := range schema.labels {
		if strings.EqualFold(known, label) {
			return known
		}
	}
	return label
}
