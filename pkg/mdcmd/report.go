package mdcmd

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ValidationReport accumulates the outcome of validating one document.
type ValidationReport struct {
	// Commands is the number of commands found in the document.
	Commands int
	// Notices are informational findings, e.g. a Create rewritten to an
	// update because the element already exists.
	Notices []string

	errs *multierror.Error
}

// AddError records a per-command validation failure.
func (r *ValidationReport) AddError(cmd *Command, err error) {
	r.errs = multierror.Append(r.errs,
		fmt.Errorf("line %d: %s %s %q: %w", cmd.SourceLine+1, cmd.Action, cmd.ObjectType, cmd.Name(), err))
}

// AddNotice records an informational finding for a command.
func (r *ValidationReport) AddNotice(cmd *Command, format string, args ...any) {
	r.Notices = append(r.Notices,
		fmt.Sprintf("line %d: %s %s %q: %s", cmd.SourceLine+1, cmd.Action, cmd.ObjectType, cmd.Name(),
			fmt.Sprintf(format, args...)))
}

// OK reports whether validation found no errors.
func (r *ValidationReport) OK() bool {
	return r.errs.ErrorOrNil() == nil
}

// Err returns the accumulated errors, or nil when validation passed.
func (r *ValidationReport) Err() error {
	return r.errs.ErrorOrNil()
}

// Render formats the report for terminal or markdown output.
func (r *ValidationReport) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d command(s) found\n", r.Commands)
	for _, notice := range r.Notices {
		fmt.Fprintf(&b, "note: %s\n", notice)
	}
	if err := r.errs.ErrorOrNil(); err != nil {
		for _, e := range r.errs.Errors {
			fmt.Fprintf(&b, "error: %s\n", e)
		}
	} else {
		b.WriteString("validation passed\n")
	}
	return b.String()
}
