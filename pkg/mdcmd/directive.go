// Package mdcmd implements the markdown command processor: it extracts
// Create/Update commands from semi-structured markdown documents, validates
// their attributes, resolves whether the named elements already exist, and
// either previews, checks, or executes the resulting platform calls.
package mdcmd

import "fmt"

// Directive selects what the processor does with a parsed document.
type Directive string

const (
	// DirectiveDisplay renders the parsed commands back as markdown
	// without calling the platform.
	DirectiveDisplay Directive = "display"
	// DirectiveValidate checks the commands and reports problems without
	// calling any mutating endpoint.
	DirectiveValidate Directive = "validate"
	// DirectiveProcess executes the commands against the platform.
	DirectiveProcess Directive = "process"
)

// directiveRank orders directives by how much they are allowed to do.
var directiveRank = map[Directive]int{
	DirectiveDisplay:  0,
	DirectiveValidate: 1,
	DirectiveProcess:  2,
}

// ParseDirective converts a user-supplied string to a Directive.
func ParseDirective(s string) (Directive, error) {
	switch Directive(s) {
	case DirectiveDisplay, DirectiveValidate, DirectiveProcess:
		return Directive(s), nil
	default:
		return "", fmt.Errorf("unknown directive %q: expected display, validate, or process", s)
	}
}
