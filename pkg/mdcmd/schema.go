package mdcmd

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// objectSchema describes the attribute vocabulary of one object type: its
// name-bearing label, the canonical labels it accepts, alias spellings, and
// the JSON Schema file its attribute map is validated against.
type objectSchema struct {
	nameLabel  string
	labels     []string
	aliases    map[string]string
	schemaFile string
}

var objectSchemas = map[ObjectType]objectSchema{
	ObjectGlossary: {
		nameLabel:  "Glossary Name",
		labels:     []string{"Glossary Name", "Description", "Language", "Usage", "Qualified Name", "GUID"},
		aliases:    map[string]string{"display name": "Glossary Name", "name": "Glossary Name"},
		schemaFile: "schemas/glossary.json",
	},
	ObjectTerm: {
		nameLabel: "Term Name",
		labels: []string{
			"Term Name", "Glossary Name", "Summary", "Description", "Abbreviation",
			"Examples", "Usage", "Status", "Categories", "Effective From", "Effective To",
			"Qualified Name", "GUID",
		},
		aliases: map[string]string{
			"display name":  "Term Name",
			"name":          "Term Name",
			"in glossary":   "Glossary Name",
			"owning glossary": "Glossary Name",
		},
		schemaFile: "schemas/term.json",
	},
	ObjectCategory: {
		nameLabel: "Category Name",
		labels: []string{
			"Category Name", "Glossary Name", "Description", "In Category",
			"Qualified Name", "GUID",
		},
		aliases: map[string]string{
			"display name":    "Category Name",
			"name":            "Category Name",
			"in glossary":     "Glossary Name",
			"owning glossary": "Glossary Name",
			"parent category": "In Category",
		},
		schemaFile: "schemas/category.json",
	},
	ObjectProject: {
		nameLabel: "Project Name",
		labels: []string{
			"Project Name", "Description", "Identifier", "Status", "Phase",
			"Start Date", "Planned End Date", "Qualified Name", "GUID",
		},
		aliases: map[string]string{
			"display name": "Project Name",
			"name":         "Project Name",
		},
		schemaFile: "schemas/project.json",
	},
	ObjectBlueprint: {
		nameLabel: "Blueprint Name",
		labels: []string{
			"Blueprint Name", "Description", "Version Identifier",
			"Qualified Name", "GUID",
		},
		aliases: map[string]string{
			"display name": "Blueprint Name",
			"name":         "Blueprint Name",
			"solution blueprint name": "Blueprint Name",
			"version": "Version Identifier",
		},
		schemaFile: "schemas/blueprint.json",
	},
}

var (
	compileOnce     sync.Once
	compiledSchemas map[ObjectType]*jsonschema.Schema
	compileErr      error
)

// compiledSchema returns the compiled JSON Schema for an object type.
// Schemas are embedded in the binary, so compilation failures are programmer
// errors surfaced on first use.
func compiledSchema(objectType ObjectType) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchemas = make(map[ObjectType]*jsonschema.Schema, len(objectSchemas))
		compiler := jsonschema.NewCompiler()
		for ot, os := range objectSchemas {
			raw, err := schemaFS.ReadFile(os.schemaFile)
			if err != nil {
				compileErr = err
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = err
				return
			}
			if err := compiler.AddResource(os.schemaFile, doc); err != nil {
				compileErr = err
				return
			}
			schema, err := compiler.Compile(os.schemaFile)
			if err != nil {
				compileErr = err
				return
			}
			compiledSchemas[ot] = schema
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	schema, ok := compiledSchemas[objectType]
	if !ok {
		return nil, fmt.Errorf("no schema for object type %q", objectType)
	}
	return schema, nil
}

// validateAttributes checks a command's attribute map against its object
// type's JSON Schema: required labels present, unknown labels rejected.
func validateAttributes(cmd *Command) error {
	schema, err := compiledSchema(cmd.ObjectType)
	if err != nil {
		return err
	}
	attrs := make(map[string]any, len(cmd.Attributes))
	for k, v := range cmd.Attributes {
		attrs[k] = v
	}
	if err := schema.Validate(attrs); err != nil {
		return fmt.Errorf("%s %s attributes: %w", cmd.Action, cmd.ObjectType, err)
	}
	return nil
}
