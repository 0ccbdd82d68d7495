package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/console"
	"github.com/metaforge-io/metaforge/pkg/sliceutil"
	"github.com/metaforge-io/metaforge/pkg/stringutil"
)

// printElements writes elements to w as a table, or as indented JSON when
// jsonOut is set. propColumns name the property keys shown as columns after
// the GUID.
func printElements(w io.Writer, jsonOut bool, title string, elements []client.Element, propColumns ...string) error {
	if jsonOut {
		return printJSON(w, elements)
	}
	if len(elements) == 0 {
		fmt.Fprintln(w, "no matching elements")
		return nil
	}

	headers := append([]string{"GUID", "Type"}, propColumns...)
	rows := sliceutil.Map(elements, func(e client.Element) []string {
		row := []string{e.Header.GUID, e.Header.TypeName}
		for _, col := range propColumns {
			row = append(row, propString(e, col))
		}
		return row
	})

	fmt.Fprint(w, console.RenderTable(console.TableConfig{
		Title:          title,
		Headers:        headers,
		Rows:           rows,
		MaxColumnWidth: 60,
	}))
	return nil
}

// printElement writes one element as a label/value listing, or JSON.
func printElement(w io.Writer, jsonOut bool, element *client.Element) error {
	if jsonOut {
		return printJSON(w, element)
	}
	fmt.Fprintf(w, "GUID:  %s\n", element.Header.GUID)
	fmt.Fprintf(w, "Type:  %s\n", element.Header.TypeName)
	for _, key := range sortedPropertyKeys(element) {
		fmt.Fprintf(w, "%s: %s\n", stringutil.TitleCamelWords(key), propString(*element, key))
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func propString(e client.Element, key string) string {
	v, ok := e.Properties[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func sortedPropertyKeys(e *client.Element) []string {
	// Deterministic listing keeps captured output stable.
	return sliceutil.SortedKeys(e.Properties)
}
