package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/console"
)

func newProjectCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "Search projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if search == "" {
				search = ".*"
			}
			elements, err := c.Projects().Find(cmd.Context(), search, client.SearchOptions{IgnoreCase: true})
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), opts.jsonOut, "Projects",
				elements, "displayName", "identifier", "projectStatus")
		},
	}
	list.Flags().StringVar(&search, "search", "", "project search string (regular expression)")

	view := &cobra.Command{
		Use:   "view NAME_OR_GUID",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			element, err := getByNameOrGUID(cmd, args[0],
				c.Projects().GetByGUID, c.Projects().GetByName)
			if err != nil {
				return err
			}
			return printElement(cmd.OutOrStdout(), opts.jsonOut, element)
		},
	}

	var identifier, description, status string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			guid, err := c.Projects().Create(cmd.Context(), client.ProjectProperties{
				DisplayName: args[0],
				Identifier:  identifier,
				Description: description,
				Status:      status,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
				fmt.Sprintf("Created project %q: %s", args[0], guid)))
			fmt.Fprintln(cmd.OutOrStdout(), guid)
			return nil
		},
	}
	create.Flags().StringVar(&identifier, "identifier", "", "short project identifier")
	create.Flags().StringVar(&description, "description", "", "project description")
	create.Flags().StringVar(&status, "status", "", "project status")

	var force bool
	del := &cobra.Command{
		Use:   "delete GUID",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				confirmed, err := console.ConfirmAction(
					fmt.Sprintf("Delete project %s?", args[0]), "")
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
			if err := c.Projects().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Deleted project "+args[0]))
			return nil
		},
	}
	del.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")

	var role string
	member := &cobra.Command{
		Use:   "add-member PROJECT_GUID ACTOR_GUID",
		Short: "Add an actor to a project team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if err := c.Projects().AddMember(cmd.Context(), args[0], args[1], role); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Added member to project "+args[0]))
			return nil
		},
	}
	member.Flags().StringVar(&role, "role", "", "team role for the new member")

	link := &cobra.Command{
		Use:   "link PARENT_GUID CHILD_GUID",
		Short: "Place one project under another in the hierarchy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			if err := c.Projects().LinkHierarchy(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Linked project hierarchy"))
			return nil
		},
	}

	cmd.AddCommand(list, view, create, del, member, link)
	return cmd
}
