package console

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// SelectOption is a single selectable entry in a select prompt.
type SelectOption struct {
	// Label is the text shown to the user.
	Label string
	// Value is returned when the option is chosen.
	Value string
}

// PromptSelect shows a single-choice select prompt and returns the chosen
// option's value.
func PromptSelect(title, description string, options []SelectOption) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options provided for select prompt")
	}
	if !isTTY() {
		return "", errNotTTY
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value)
	}

	var value string
	sel := huh.NewSelect[string]().
		Title(title).
		Description(description).
		Options(huhOptions...).
		Value(&value)

	form := huh.NewForm(huh.NewGroup(sel)).WithAccessible(IsAccessibleMode())
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// PromptMultiSelect shows a multi-choice select prompt and returns the chosen
// options' values. A limit of 0 allows any number of selections.
func PromptMultiSelect(title, description string, options []SelectOption, limit int) ([]string, error) {
	if len(options) == 0 {
		return nil, errors.New("no options provided for multi-select prompt")
	}
	if !isTTY() {
		return nil, errNotTTY
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value)
	}

	var values []string
	sel := huh.NewMultiSelect[string]().
		Title(title).
		Description(description).
		Options(huhOptions...).
		Value(&values)
	if limit > 0 {
		sel = sel.Limit(limit)
	}

	form := huh.NewForm(huh.NewGroup(sel)).WithAccessible(IsAccessibleMode())
	if err := form.Run(); err != nil {
		return nil, err
	}
	return values, nil
}
