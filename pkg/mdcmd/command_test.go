//go:build !integration

package mdcmd

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirective(t *testing.T) {
	for _, valid := range []string{"display", "validate", "process"} {
		d, err := ParseDirective(valid)
		require.NoError(t, err)
		assert.Equal(t, Directive(valid), d)
	}

	_, err := ParseDirective("dry-run")
	assert.Error(t, err)
}

func TestExtractCommands(t *testing.T) {
	t.Run("parses action, type, and attributes", func(t *testing.T) {
		commands := ExtractCommands(`# Create Term

## Term Name

Carbon Intensity

## Glossary Name

Sustainability

## Summary

Grams of CO2
per unit of output.
`)
		require.Len(t, commands, 1)
		cmd := commands[0]
		assert.Equal(t, ActionCreate, cmd.Action)
		assert.Equal(t, ObjectTerm, cmd.ObjectType)
		assert.Equal(t, "Carbon Intensity", cmd.Name())
		assert.Equal(t, "Sustainability", cmd.Attributes["Glossary Name"])
		assert.Equal(t, "Grams of CO2 per unit of output.", cmd.Attributes["Summary"])
	})

	t.Run("tolerates articles and case in headings", func(t *testing.T) {
		commands := ExtractCommands("# update a glossary\n\n## Glossary Name\n\nOps\n")
		require.Len(t, commands, 1)
		assert.Equal(t, ActionUpdate, commands[0].Action)
		assert.Equal(t, ObjectGlossary, commands[0].ObjectType)
	})

	t.Run("multi-word object types", func(t *testing.T) {
		commands := ExtractCommands("# Create Solution Blueprint\n\n## Blueprint Name\n\nLakehouse\n")
		require.Len(t, commands, 1)
		assert.Equal(t, ObjectBlueprint, commands[0].ObjectType)
		assert.Equal(t, "Lakehouse", commands[0].Name())
	})

	t.Run("folds label aliases", func(t *testing.T) {
		commands := ExtractCommands("# Create Glossary\n\n## Display Name\n\nOps\n")
		require.Len(t, commands, 1)
		assert.Equal(t, "Ops", commands[0].Name())
	})

	t.Run("blank placeholder values are unset", func(t *testing.T) {
		commands := ExtractCommands("# Create Glossary\n\n## Glossary Name\n\nOps\n\n## Description\n\n<blank>\n")
		require.Len(t, commands, 1)
		_, ok := commands[0].Attributes["Description"]
		assert.False(t, ok)
	})

	t.Run("non-command sections are ignored", func(t *testing.T) {
		commands := ExtractCommands("# Introduction\n\nSome prose.\n\n# Create Glossary\n\n## Glossary Name\n\nOps\n")
		require.Len(t, commands, 1)
	})

	t.Run("several commands in one document", func(t *testing.T) {
		commands := ExtractCommands(`# Create Glossary

## Glossary Name

Ops

# Create Term

## Term Name

Uptime

## Glossary Name

Ops
`)
		require.Len(t, commands, 2)
		assert.Equal(t, ObjectGlossary, commands[0].ObjectType)
		assert.Equal(t, ObjectTerm, commands[1].ObjectType)
		assert.Greater(t, commands[1].SourceLine, commands[0].SourceLine)
	})
}

func TestEffectiveDates(t *testing.T) {
	t.Run("lenient date formats", func(t *testing.T) {
		cmd := Command{
			ObjectType: ObjectTerm,
			Attributes: map[string]string{
				"Effective From": "2025-01-02",
				"Effective To":   "Mar 15, 2026",
			},
		}
		from, to, err := cmd.EffectiveDates()
		require.NoError(t, err)
		require.NotNil(t, from)
		require.NotNil(t, to)
		assert.Equal(t, 2025, from.Year())
		assert.Equal(t, time.March, to.Month())
	})

	t.Run("absent dates are nil", func(t *testing.T) {
		cmd := Command{ObjectType: ObjectTerm, Attributes: map[string]string{}}
		from, to, err := cmd.EffectiveDates()
		require.NoError(t, err)
		assert.Nil(t, from)
		assert.Nil(t, to)
	})

	t.Run("unparseable dates error", func(t *testing.T) {
		cmd := Command{
			ObjectType: ObjectTerm,
			Attributes: map[string]string{"Effective From": "sometime next year"},
		}
		_, _, err := cmd.EffectiveDates()
		assert.Error(t, err)
	})
}

func TestValidateAttributes(t *testing.T) {
	t.Run("missing required label", func(t *testing.T) {
		cmd := &Command{
			Action:     ActionCreate,
			ObjectType: ObjectTerm,
			Attributes: map[string]string{"Term Name": "Uptime"},
		}
		err := validateAttributes(cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Glossary Name")
	})

	t.Run("unknown label", func(t *testing.T) {
		cmd := &Command{
			Action:     ActionCreate,
			ObjectType: ObjectGlossary,
			Attributes: map[string]string{"Glossary Name": "Ops", "Color": "blue"},
		}
		assert.Error(t, validateAttributes(cmd))
	})

	t.Run("bad status enum", func(t *testing.T) {
		cmd := &Command{
			Action:     ActionCreate,
			ObjectType: ObjectTerm,
			Attributes: map[string]string{
				"Term Name":     "Uptime",
				"Glossary Name": "Ops",
				"Status":        "SHINY",
			},
		}
		assert.Error(t, validateAttributes(cmd))
	})

	t.Run("valid command", func(t *testing.T) {
		cmd := &Command{
			Action:     ActionCreate,
			ObjectType: ObjectTerm,
			Attributes: map[string]string{
				"Term Name":     "Uptime",
				"Glossary Name": "Ops",
				"Status":        "DRAFT",
			},
		}
		assert.NoError(t, validateAttributes(cmd))
	})
}

func TestGenerateQualifiedName(t *testing.T) {
	assert.Equal(t, "Term::sustainability::carbon-intensity",
		GenerateQualifiedName(ObjectTerm, "Sustainability", "Carbon Intensity"))
	assert.Equal(t, "Glossary::ops",
		GenerateQualifiedName(ObjectGlossary, "", "Ops"))
}

func TestRenderCommands(t *testing.T) {
	commands := ExtractCommands("# Create Glossary\n\n## Description\n\nOperations terms\n\n## Glossary Name\n\nOps\n")
	require.Len(t, commands, 1)

	out := RenderCommands(commands)
	assert.Contains(t, out, "# Create Glossary")
	// Canonical order puts the name before the description regardless of
	// source order.
	assert.Less(t, strings.Index(out, "## Glossary Name"), strings.Index(out, "## Description"))

	t.Run("round-trips through the extractor", func(t *testing.T) {
		again := ExtractCommands(out)
		require.Len(t, again, 1)
		assert.Equal(t, commands[0].Attributes, again[0].Attributes)
	})
}
