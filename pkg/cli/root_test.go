//go:build !integration

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	t.Run("registers all top-level commands", func(t *testing.T) {
		want := []string{
			"login", "status", "origin",
			"glossary", "term", "category", "project",
			"asset", "governance", "location", "capability",
			"md",
		}
		for _, name := range want {
			cmd, _, err := root.Find([]string{name})
			require.NoError(t, err, "command %q", name)
			assert.NotEqual(t, root, cmd, "command %q is missing", name)
		}
	})

	t.Run("md has the directive subcommands", func(t *testing.T) {
		for _, name := range []string{"display", "validate", "process", "watch"} {
			_, _, err := root.Find([]string{"md", name})
			require.NoError(t, err, "md %s", name)
		}
	})

	t.Run("persistent flags are declared", func(t *testing.T) {
		for _, flag := range []string{"config", "url", "server", "user", "token", "verbose", "json"} {
			assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag --%s", flag)
		}
	})
}

func TestVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3")
	assert.Equal(t, "1.2.3", GetVersion())
}
