package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/console"
)

func newGlossaryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Manage glossaries",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List glossaries on the view server",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			glossaries := c.Glossaries()

			var elements []client.Element
			if search == "" {
				elements, err = glossaries.FindAll(cmd.Context())
			} else {
				elements, err = glossaries.Find(cmd.Context(), search, client.SearchOptions{IgnoreCase: true})
			}
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), opts.jsonOut, "Glossaries",
				elements, "displayName", "language", "description")
		},
	}
	list.Flags().StringVar(&search, "search", "", "filter glossaries by search string")

	view := &cobra.Command{
		Use:   "view NAME_OR_GUID",
		Short: "Show one glossary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			element, err := getByNameOrGUID(cmd, args[0],
				c.Glossaries().GetByGUID, c.Glossaries().GetByName)
			if err != nil {
				return err
			}
			return printElement(cmd.OutOrStdout(), opts.jsonOut, element)
		},
	}

	var description, language, usage string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a glossary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			guid, err := c.Glossaries().Create(cmd.Context(), client.GlossaryProperties{
				DisplayName: args[0],
				Description: description,
				Language:    language,
				Usage:       usage,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
				fmt.Sprintf("Created glossary %q: %s", args[0], guid)))
			fmt.Fprintln(cmd.OutOrStdout(), guid)
			return nil
		},
	}
	create.Flags().StringVar(&description, "description", "", "glossary description")
	create.Flags().StringVar(&language, "language", "", "glossary language")
	create.Flags().StringVar(&usage, "usage", "", "usage guidance")

	var cascade, force bool
	del := &cobra.Command{
		Use:   "delete GUID",
		Short: "Delete a glossary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				confirmed, err := console.ConfirmAction(
					fmt.Sprintf("Delete glossary %s?", args[0]),
					"Terms and categories are removed too when --cascade is set.")
				if err != nil {
					return fmt.Errorf("confirmation unavailable, re-run with --force: %w", err)
				}
				if !confirmed {
					return nil
				}
			}
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if err := c.Glossaries().Delete(cmd.Context(), args[0], cascade); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Deleted glossary "+args[0]))
			return nil
		},
	}
	del.Flags().BoolVar(&cascade, "cascade", false, "also delete the glossary's terms and categories")
	del.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")

	terms := &cobra.Command{
		Use:   "terms NAME_OR_GUID",
		Short: "List the terms of a glossary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			glossary, err := getByNameOrGUID(cmd, args[0],
				c.Glossaries().GetByGUID, c.Glossaries().GetByName)
			if err != nil {
				return err
			}
			elements, err := c.Glossaries().Terms(cmd.Context(), glossary.Header.GUID)
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), opts.jsonOut, "Terms",
				elements, "displayName", "status", "summary")
		},
	}

	categories := &cobra.Command{
		Use:   "categories NAME_OR_GUID",
		Short: "List the categories of a glossary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			glossary, err := getByNameOrGUID(cmd, args[0],
				c.Glossaries().GetByGUID, c.Glossaries().GetByName)
			if err != nil {
				return err
			}
			elements, err := c.Glossaries().Categories(cmd.Context(), glossary.Header.GUID)
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), opts.jsonOut, "Categories",
				elements, "displayName", "description")
		},
	}

	cmd.AddCommand(list, view, create, del, terms, categories)
	return cmd
}

// getByNameOrGUID fetches an element by GUID when the argument parses as
// one, and by name otherwise.
func getByNameOrGUID(cmd *cobra.Command, arg string,
	byGUID func(ctx context.Context, guid string) (*client.Element, error),
	byName func(ctx context.Context, name string) (*client.Element, error),
) (*client.Element, error) {
	if client.IsGUID(arg) {
		return byGUID(cmd.Context(), arg)
	}
	return byName(cmd.Context(), arg)
}
