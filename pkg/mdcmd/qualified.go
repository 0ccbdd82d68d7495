package mdcmd

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// typePrefixes are the qualified-name prefixes per object type.
var typePrefixes = map[ObjectType]string{
	ObjectGlossary:  "Glossary",
	ObjectTerm:      "Term",
	ObjectCategory:  "Category",
	ObjectProject:   "Project",
	ObjectBlueprint: "SolutionBlueprint",
}

// GenerateQualifiedName builds the default qualified name used when a
// command omits the Qualified Name attribute:
//
//	<TypePrefix>::<scope>::<kebab-cased display name>
//
// The scope is the owning glossary for terms and categories and is omitted
// for unscoped types. Qualified names must be unique on the platform; the
// kebab-cased display name keeps them readable while the scope disambiguates
// same-named elements across glossaries.
func GenerateQualifiedName(objectType ObjectType, scope, displayName string) string {
	parts := []string{typePrefixes[objectType]}
	if scope != "" {
		parts = append(parts, strcase.ToKebab(scope))
	}
	parts = append(parts, strcase.ToKebab(displayName))
	return strings.Join(parts, "::")
}

// resolveQualifiedName returns the command's explicit qualified name or the
// generated default.
func resolveQualifiedName(cmd *Command) string {
	if qn := cmd.QualifiedName(); qn != "" {
		return qn
	}
	return GenerateQualifiedName(cmd.ObjectType, cmd.Attributes["Glossary Name"], cmd.Name())
}
