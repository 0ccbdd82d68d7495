package console

import (
	"errors"

	"github.com/charmbracelet/huh"
)

var errNotTTY = errors.New("interactive prompt requires a terminal: not a TTY")

// PromptInput shows a single-line text input prompt and returns the entered
// value.
func PromptInput(title, description, placeholder string) (string, error) {
	return PromptInputWithValidation(title, description, placeholder, nil)
}

// PromptInputWithValidation shows a text input prompt whose value must pass
// the supplied validator before the prompt accepts it. A nil validator
// accepts any input.
func PromptInputWithValidation(title, description, placeholder string, validate func(string) error) (string, error) {
	if !isTTY() {
		return "", errNotTTY
	}

	var value string
	input := huh.NewInput().
		Title(title).
		Description(description).
		Placeholder(placeholder).
		Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}

	form := huh.NewForm(huh.NewGroup(input)).WithAccessible(IsAccessibleMode())
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// PromptSecretInput shows a masked text input prompt for secrets such as
// passwords.
func PromptSecretInput(title, description string) (string, error) {
	if !isTTY() {
		return "", errNotTTY
	}

	var value string
	input := huh.NewInput().
		Title(title).
		Description(description).
		EchoMode(huh.EchoModePassword).
		Value(&value)

	form := huh.NewForm(huh.NewGroup(input)).WithAccessible(IsAccessibleMode())
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// ConfirmAction shows a yes/no confirmation prompt.
func ConfirmAction(title, description string) (bool, error) {
	if !isTTY() {
		return false, errNotTTY
	}

	var confirmed bool
	confirm := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(confirm)).WithAccessible(IsAccessibleMode())
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
