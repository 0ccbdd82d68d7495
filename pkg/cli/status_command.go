package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/console"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the view server's status",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			status, err := c.Status(cmd.Context())
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), status)
			}
			state := "inactive"
			if status.Active {
				state = "active"
			}
			rows := [][]string{
				{"Server", status.ServerName},
				{"Type", status.ServerType},
				{"State", state},
			}
			if status.StartTime != "" {
				rows = append(rows, []string{"Started", status.StartTime})
			}
			for _, row := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", row[0]+":", row[1])
			}
			return nil
		},
	}
}

func newOriginCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "origin",
		Short: "Show the platform origin and check version compatibility",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			origin, err := c.Origin(cmd.Context())
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]string{"origin": origin})
			}
			fmt.Fprintln(cmd.OutOrStdout(), origin)
			if err := client.CheckPlatformVersion(origin); err != nil {
				fmt.Fprintln(os.Stderr, console.FormatWarningMessage(err.Error()))
			}
			return nil
		},
	}
}
