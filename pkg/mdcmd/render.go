package mdcmd

import (
	"fmt"
	"strings"

	"github.com/metaforge-io/metaforge/pkg/sliceutil"
)

// RenderCommands renders commands back as an Egeria-style markdown document.
// Attributes appear in the object type's canonical label order, so a
// processed document (with its appended GUID and Qualified Name) can be
// edited and fed straight back in as an update document.
func RenderCommands(commands []Command) string {
	var b strings.Builder
	for i, cmd := range commands {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "# %s %s\n", cmd.Action, cmd.ObjectType)

		for _, label := range orderedLabels(&cmd) {
			value, ok := cmd.Attributes[label]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "\n## %s\n\n%s\n", label, value)
		}
	}
	return b.String()
}

// orderedLabels returns the command's attribute labels in canonical order,
// followed by any labels the schema does not know (kept so display mode
// shows exactly what validation would flag).
func orderedLabels(cmd *Command) []string {
	schema, ok := objectSchemas[cmd.ObjectType]
	if !ok {
		return sliceutil.SortedKeys(cmd.Attributes)
	}

	known := make(map[string]bool, len(schema.labels))
	labels := make([]string, 0, len(cmd.Attributes))
	for _, label := range schema.labels {
		known[label] = true
		if _, ok := cmd.Attributes[label]; ok {
			labels = append(labels, label)
		}
	}
	for _, label := range sliceutil.SortedKeys(cmd.Attributes) {
		if !known[label] {
			labels = append(labels, label)
		}
	}
	return labels
}
