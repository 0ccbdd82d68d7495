package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/console"
)

func newLocationCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Manage locations",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "Search locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if search == "" {
				search = ".*"
			}
			elements, err := c.Locations().Find(cmd.Context(), search, client.SearchOptions{IgnoreCase: true})
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), opts.jsonOut, "Locations",
				elements, "displayName", "locationKind", "description")
		},
	}
	list.Flags().StringVar(&search, "search", "", "location search string (regular expression)")

	view := &cobra.Command{
		Use:   "view GUID",
		Short: "Show one location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			element, err := c.Locations().GetByGUID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printElement(cmd.OutOrStdout(), opts.jsonOut, element)
		},
	}

	var kind, description string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			guid, err := c.Locations().Create(cmd.Context(), client.LocationProperties{
				DisplayName: args[0],
				Description: description,
				Kind:        kind,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
				fmt.Sprintf("Created location %q: %s", args[0], guid)))
			fmt.Fprintln(cmd.OutOrStdout(), guid)
			return nil
		},
	}
	create.Flags().StringVar(&kind, "kind", "", "location kind (fixed, secure, digital)")
	create.Flags().StringVar(&description, "description", "", "location description")

	var force bool
	del := &cobra.Command{
		Use:   "delete GUID",
		Short: "Delete a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				confirmed, err := console.ConfirmAction(
					fmt.Sprintf("Delete location %s?", args[0]), "")
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
			if err := c.Locations().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Deleted location "+args[0]))
			return nil
		},
	}
	del.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")

	nest := &cobra.Command{
		Use:   "nest PARENT_GUID CHILD_GUID",
		Short: "Nest one location inside another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if err := c.Locations().Nest(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Nested location under "+args[0]))
			return nil
		},
	}

	cmd.AddCommand(list, view, create, del, nest)
	return cmd
}
