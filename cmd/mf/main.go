package main

import (
	"os"

	"github.com/metaforge-io/metaforge/pkg/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersionInfo(version)
	os.Exit(cli.Execute())
}
