package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/client"
)

func newAssetCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Explore assets in the catalog",
	}

	find := &cobra.Command{
		Use:   "find SEARCH",
		Short: "Search the asset catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			elements, err := c.Assets().Find(cmd.Context(), args[0], client.SearchOptions{IgnoreCase: true})
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), opts.jsonOut, "Assets",
				elements, "displayName", "deployedImplementationType", "description")
		},
	}

	view := &cobra.Command{
		Use:   "view GUID",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			element, err := c.Assets().GetByGUID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printElement(cmd.OutOrStdout(), opts.jsonOut, element)
		},
	}

	var mermaid bool
	graph := &cobra.Command{
		Use:   "graph GUID",
		Short: "Show the neighborhood graph around an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			g, err := c.Assets().Graph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if mermaid {
				fmt.Fprintln(cmd.OutOrStdout(), g.MermaidGraph())
				return nil
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), g)
			}
			if err := printElement(cmd.OutOrStdout(), false, &g.Anchor); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return printElements(cmd.OutOrStdout(), false, "Connected elements",
				g.Elements, "displayName", "description")
		},
	}
	graph.Flags().BoolVar(&mermaid, "mermaid", false, "render the graph as a Mermaid flowchart")

	cmd.AddCommand(find, view, graph)
	return cmd
}
