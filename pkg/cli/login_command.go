package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/console"
	"github.com/metaforge-io/metaforge/pkg/constants"
)

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the platform and store the session token",
		Long: `Authenticate against the platform token service and write the resulting
bearer token to the config file. The password is read from --password,
the ` + "`METAFORGE_PASSWORD`" + ` environment variable, or an interactive prompt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			pw := password
			if pw == "" {
				pw = os.Getenv(constants.EnvPassword)
			}
			if pw == "" {
				pw, err = console.PromptSecretInput(
					fmt.Sprintf("Password for %s", cfg.User),
					"Used once to obtain a bearer token, never stored.")
				if err != nil {
					return err
				}
			}

			c := client.New(cfg.URL, cfg.Server, cfg.User, client.WithPassword(pw))
			if err := c.Connect(cmd.Context()); err != nil {
				return err
			}
			defer c.Disconnect()

			cfg.Token = c.Token()
			path := opts.configFile
			if path == "" {
				path, err = DefaultConfigPath()
				if err != nil {
					return err
				}
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
				fmt.Sprintf("Logged in to %s as %s, token saved to %s", cfg.URL, cfg.User, path)))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "platform password (prompts when omitted)")
	return cmd
}
