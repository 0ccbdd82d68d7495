package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/console"
)

func newCategoryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage glossary categories",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "Search categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if search == "" {
				search = ".*"
			}
			elements, err := c.Categories().Find(cmd.Context(), search, client.SearchOptions{IgnoreCase: true})
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), opts.jsonOut, "Categories",
				elements, "displayName", "description")
		},
	}
	list.Flags().StringVar(&search, "search", "", "category search string (regular expression)")

	view := &cobra.Command{
		Use:   "view NAME_OR_GUID",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			element, err := getByNameOrGUID(cmd, args[0],
				c.Categories().GetByGUID, c.Categories().GetByName)
			if err != nil {
				return err
			}
			return printElement(cmd.OutOrStdout(), opts.jsonOut, element)
		},
	}

	var glossary, description string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a category in a glossary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if glossary == "" {
				return fmt.Errorf("--glossary is required")
			}
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			glossaryGUID, err := resolveGlossary(cmd.Context(), c, glossary)
			if err != nil {
				return err
			}
			guid, err := c.Categories().Create(cmd.Context(), glossaryGUID, client.CategoryProperties{
				DisplayName: args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
				fmt.Sprintf("Created category %q: %s", args[0], guid)))
			fmt.Fprintln(cmd.OutOrStdout(), guid)
			return nil
		},
	}
	create.Flags().StringVar(&glossary, "glossary", "", "owning glossary name or GUID (required)")
	create.Flags().StringVar(&description, "description", "", "category description")

	var force bool
	del := &cobra.Command{
		Use:   "delete GUID",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				confirmed, err := console.ConfirmAction(
					fmt.Sprintf("Delete category %s?", args[0]), "")
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
			if err := c.Categories().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Deleted category "+args[0]))
			return nil
		},
	}
	del.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")

	parent := &cobra.Command{
		Use:   "parent CATEGORY_GUID PARENT_GUID",
		Short: "Nest a category under a parent category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if err := c.Categories().SetParent(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Category nested under "+args[1]))
			return nil
		},
	}

	cmd.AddCommand(list, view, create, del, parent)
	return cmd
}
