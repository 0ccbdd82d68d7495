package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/console"
)

func newGovCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "governance",
		Aliases: []string{"gov"},
		Short:   "Manage governance definitions",
	}

	var typeName, search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List governance definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			var elements []client.Element
			switch {
			case typeName != "":
				elements, err = c.GovernanceDefinitions().FindByType(cmd.Context(), typeName)
			case search != "":
				elements, err = c.GovernanceDefinitions().Find(cmd.Context(), search, client.SearchOptions{IgnoreCase: true})
			default:
				elements, err = c.GovernanceDefinitions().Find(cmd.Context(), ".*", client.SearchOptions{IgnoreCase: true})
			}
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), opts.jsonOut, "Governance definitions",
				elements, "title", "typeName", "summary")
		},
	}
	list.Flags().StringVar(&typeName, "type", "", "restrict to one definition type (e.g. GovernancePolicy)")
	list.Flags().StringVar(&search, "search", "", "search string (regular expression)")

	view := &cobra.Command{
		Use:   "view GUID",
		Short: "Show one governance definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			element, err := c.GovernanceDefinitions().GetByGUID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printElement(cmd.OutOrStdout(), opts.jsonOut, element)
		},
	}

	var summary, description, scope string
	create := &cobra.Command{
		Use:   "create TYPE TITLE",
		Short: "Create a governance definition",
		Long: `Create a governance definition of the given type. Supported types are
GovernancePrinciple, GovernancePolicy, GovernanceObligation,
GovernanceStrategy, Regulation, and GovernanceProcedure.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			guid, err := c.GovernanceDefinitions().Create(cmd.Context(), client.GovernanceDefinitionProperties{
				TypeName:    args[0],
				Title:       args[1],
				Summary:     summary,
				Description: description,
				Scope:       scope,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
				fmt.Sprintf("Created %s %q: %s", args[0], args[1], guid)))
			fmt.Fprintln(cmd.OutOrStdout(), guid)
			return nil
		},
	}
	create.Flags().StringVar(&summary, "summary", "", "short summary")
	create.Flags().StringVar(&description, "description", "", "full description")
	create.Flags().StringVar(&scope, "scope", "", "breadth of applicability")

	var force bool
	del := &cobra.Command{
		Use:   "delete GUID",
		Short: "Delete a governance definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				confirmed, err := console.ConfirmAction(
					fmt.Sprintf("Delete governance definition %s?", args[0]), "")
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
			if err := c.GovernanceDefinitions().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Deleted governance definition "+args[0]))
			return nil
		},
	}
	del.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")

	var relationship string
	link := &cobra.Command{
		Use:   "link GUID PEER_GUID",
		Short: "Link two governance definitions as peers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if err := c.GovernanceDefinitions().LinkPeers(cmd.Context(), args[0], args[1], relationship); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Linked governance definitions"))
			return nil
		},
	}
	link.Flags().StringVar(&relationship, "relationship", "GovernanceDriverLink", "peer relationship type")

	cmd.AddCommand(list, view, create, del, link)
	return cmd
}
