package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/console"
)

func newTermCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Manage glossary terms",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "Search terms across glossaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if search == "" {
				search = ".*"
			}
			elements, err := c.Terms().Find(cmd.Context(), search, client.SearchOptions{IgnoreCase: true})
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), opts.jsonOut, "Terms",
				elements, "displayName", "status", "summary")
		},
	}
	list.Flags().StringVar(&search, "search", "", "term search string (regular expression)")

	var glossary string
	view := &cobra.Command{
		Use:   "view NAME_OR_GUID",
		Short: "Show one term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			glossaryGUID := ""
			if glossary != "" {
				glossaryGUID, err = resolveGlossary(cmd.Context(), c, glossary)
				if err != nil {
					return err
				}
			}
			element, err := getByNameOrGUID(cmd, args[0],
				c.Terms().GetByGUID,
				func(ctx context.Context, name string) (*client.Element, error) {
					return c.Terms().GetByName(ctx, name, glossaryGUID)
				})
			if err != nil {
				return err
			}
			return printElement(cmd.OutOrStdout(), opts.jsonOut, element)
		},
	}
	view.Flags().StringVar(&glossary, "glossary", "", "restrict the name lookup to one glossary")

	var summary, description, status string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a term in a glossary",
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
			props := client.TermProperties{
				DisplayName: args[0],
				Summary:     summary,
				Description: description,
			}
			if status != "" {
				props.Status = client.TermStatus(status)
			}
			guid, err := c.Terms().Create(cmd.Context(), glossaryGUID, props)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
				fmt.Sprintf("Created term %q: %s", args[0], guid)))
			fmt.Fprintln(cmd.OutOrStdout(), guid)
			return nil
		},
	}
	create.Flags().StringVar(&glossary, "glossary", "", "owning glossary name or GUID (required)")
	create.Flags().StringVar(&summary, "summary", "", "short summary")
	create.Flags().StringVar(&description, "description", "", "full description")
	create.Flags().StringVar(&status, "status", "", "initial status (DRAFT, ACTIVE, DEPRECATED, OBSOLETE)")

	statusCmd := &cobra.Command{
		Use:   "status GUID STATUS",
		Short: "Change a term's lifecycle status",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return CompleteTermStatuses(cmd, args, toComplete)
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if err := c.Terms().UpdateStatus(cmd.Context(), args[0], client.TermStatus(args[1])); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Term status set to "+args[1]))
			return nil
		},
	}

	var force bool
	del := &cobra.Command{
		Use:   "delete GUID",
		Short: "Delete a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				confirmed, err := console.ConfirmAction(
					fmt.Sprintf("Delete term %s?", args[0]), "")
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
			if err := c.Terms().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Deleted term "+args[0]))
			return nil
		},
	}
	del.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")

	related := &cobra.Command{
		Use:   "related GUID",
		Short: "List terms related to a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			elements, err := c.Terms().RelatedTerms(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), opts.jsonOut, "Related terms",
				elements, "displayName", "status", "summary")
		},
	}

	cmd.AddCommand(list, view, create, statusCmd, del, related)
	return cmd
}

// resolveGlossary turns a glossary name or GUID into a GUID.
func resolveGlossary(ctx context.Context, c *client.Client, nameOrGUID string) (string, error) {
	if client.IsGUID(nameOrGUID) {
		return nameOrGUID, nil
	}
	stub, err := c.Glossaries().Resolver().Resolve(ctx, nameOrGUID)
	if err != nil {
		return "", err
	}
	return stub.GUID, nil
}
