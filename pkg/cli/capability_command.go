package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/console"
)

func newCapabilityCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "capability",
		Aliases: []string{"cap"},
		Short:   "Manage business capabilities",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "Search business capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if search == "" {
				search = ".*"
			}
			elements, err := c.BusinessCapabilities().Find(cmd.Context(), search, client.SearchOptions{IgnoreCase: true})
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), opts.jsonOut, "Business capabilities",
				elements, "displayName", "identifier", "description")
		},
	}
	list.Flags().StringVar(&search, "search", "", "capability search string (regular expression)")

	view := &cobra.Command{
		Use:   "view GUID",
		Short: "Show one business capability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			element, err := c.BusinessCapabilities().GetByGUID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printElement(cmd.OutOrStdout(), opts.jsonOut, element)
		},
	}

	var identifier, description string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a business capability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			guid, err := c.BusinessCapabilities().Create(cmd.Context(), client.BusinessCapabilityProperties{
				DisplayName: args[0],
				Identifier:  identifier,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
				fmt.Sprintf("Created business capability %q: %s", args[0], guid)))
			fmt.Fprintln(cmd.OutOrStdout(), guid)
			return nil
		},
	}
	create.Flags().StringVar(&identifier, "identifier", "", "capability identifier")
	create.Flags().StringVar(&description, "description", "", "capability description")

	var force bool
	del := &cobra.Command{
		Use:   "delete GUID",
		Short: "Delete a business capability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				confirmed, err := console.ConfirmAction(
					fmt.Sprintf("Delete business capability %s?", args[0]), "")
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
			if err := c.BusinessCapabilities().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Deleted business capability "+args[0]))
			return nil
		},
	}
	del.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")

	link := &cobra.Command{
		Use:   "link GUID SUPPORTING_GUID",
		Short: "Record that one capability supports another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if err := c.BusinessCapabilities().LinkSupporting(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Linked supporting capability"))
			return nil
		},
	}

	cmd.AddCommand(list, view, create, del, link)
	return cmd
}
