package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/console"
	"github.com/metaforge-io/metaforge/pkg/constants"
)

// Package-level version information, set from the main package at build time.
var version = "dev"

// SetVersionInfo sets the version string reported by the CLI.
func SetVersionInfo(v string) {
	version = v
}

// GetVersion returns the current version.
func GetVersion() string {
	return version
}

// rootOptions holds the persistent flag values shared by every command.
type rootOptions struct {
	configFile string
	url        string
	server     string
	user       string
	token      string
	verbose    bool
	jsonOut    bool
}

// NewRootCmd builds the mf command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           constants.CLIName,
		Short:         "Client tooling for a metadata-governance platform",
		Long: `mf is a command-line client for a metadata-governance view server.

It manages glossaries, terms, categories, projects, assets, governance
definitions, locations, and business capabilities, and processes markdown
command documents that create or update metadata elements in bulk.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: user config dir)")
	flags.StringVar(&opts.url, "url", "", "platform URL")
	flags.StringVar(&opts.server, "server", "", "view server name")
	flags.StringVar(&opts.user, "user", "", "user identity")
	flags.StringVar(&opts.token, "token", "", "bearer token")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&opts.jsonOut, "json", "j", false, "output results as JSON")

	root.AddCommand(
		newLoginCmd(opts),
		newStatusCmd(opts),
		newOriginCmd(opts),
		newGlossaryCmd(opts),
		newTermCmd(opts),
		newCategoryCmd(opts),
		newProjectCmd(opts),
		newAssetCmd(opts),
		newGovCmd(opts),
		newLocationCmd(opts),
		newCapabilityCmd(opts),
		newMDCmd(opts),
	)
	return root
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatError(err))
		return 1
	}
	return 0
}

// loadConfig resolves the effective configuration for opts: config file,
// environment overlay, then flag overrides.
func (opts *rootOptions) loadConfig() (*Config, error) {
	path := opts.configFile
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if opts.url != "" {
		cfg.URL = opts.url
	}
	if opts.server != "" {
		cfg.Server = opts.server
	}
	if opts.user != "" {
		cfg.User = opts.user
	}
	if opts.token != "" {
		cfg.Token = opts.token
	}
	return cfg, nil
}

// buildClient creates the platform client for a command invocation.
func (opts *rootOptions) buildClient() (*client.Client, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var clientOpts []client.Option
	if cfg.Token != "" {
		clientOpts = append(clientOpts, client.WithToken(cfg.Token))
	}
	if cfg.Password != "" {
		clientOpts = append(clientOpts, client.WithPassword(cfg.Password))
	}
	console.LogVerbose(opts.verbose, fmt.Sprintf("Connecting to %s (server %s) as %s", cfg.URL, cfg.Server, cfg.User))
	return client.New(cfg.URL, cfg.Server, cfg.User, clientOpts...), nil
}
