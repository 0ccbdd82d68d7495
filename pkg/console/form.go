package console

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// FormField describes one field in a multi-field form.
type FormField struct {
	// Type is one of "input", "password", "confirm", or "select".
	Type string
	// Title is the field heading.
	Title string
	// Description provides extra context under the title.
	Description string
	// Placeholder is shown in empty input fields.
	Placeholder string
	// Value receives the result: *string for input, password, and select
	// fields, *bool for confirm fields.
	Value any
	// Options are required for select fields.
	Options []SelectOption
	// Validate optionally rejects input field values.
	Validate func(string) error
}

// RunForm renders a multi-field form and blocks until the user completes or
// cancels it. Field values are written through the Value pointers.
func RunForm(fields []FormField) error {
	if len(fields) == 0 {
		return errors.New("no form fields provided")
	}

	huhFields := make([]huh.Field, 0, len(fields))
	for _, field := range fields {
		switch field.Type {
		case "input":
			value, ok := field.Value.(*string)
			if !ok {
				return fmt.Errorf("input field %q requires a *string value", field.Title)
			}
			input := huh.NewInput().
				Title(field.Title).
				Description(field.Description).
				Placeholder(field.Placeholder).
				Value(value)
			if field.Validate != nil {
				input = input.Validate(field.Validate)
			}
			huhFields = append(huhFields, input)
		case "password":
			value, ok := field.Value.(*string)
			if !ok {
				return fmt.Errorf("password field %q requires a *string value", field.Title)
			}
			huhFields = append(huhFields, huh.NewInput().
				Title(field.Title).
				Description(field.Description).
				EchoMode(huh.EchoModePassword).
				Value(value))
		case "confirm":
			value, ok := field.Value.(*bool)
			if !ok {
				return fmt.Errorf("confirm field %q requires a *bool value", field.Title)
			}
			huhFields = append(huhFields, huh.NewConfirm().
				Title(field.Title).
				Description(field.Description).
				Value(value))
		case "select":
			if len(field.Options) == 0 {
				return fmt.Errorf("select field %q requires options", field.Title)
			}
			value, ok := field.Value.(*string)
			if !ok {
				return fmt.Errorf("select field %q requires a *string value", field.Title)
			}
			options := make([]huh.Option[string], len(field.Options))
			for i, opt := range field.Options {
				options[i] = huh.NewOption(opt.Label, opt.Value)
			}
			huhFields = append(huhFields, huh.NewSelect[string]().
				Title(field.Title).
				Description(field.Description).
				Options(options...).
				Value(value))
		default:
			return fmt.Errorf("unknown field type %q", field.Type)
		}
	}

	if !isTTY() {
		return errNotTTY
	}

	return huh.NewForm(huh.NewGroup(huhFields...)).WithAccessible(IsAccessibleMode()).Run()
}
