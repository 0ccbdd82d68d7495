// Package cli provides the command-line interface for mf, the metadata
// governance client.
//
// This package implements the `mf` CLI using the Cobra command framework.
// It provides commands for managing glossaries, terms, categories,
// projects, assets, governance definitions, locations, and business
// capabilities on a remote view server, and for running markdown command
// documents. Each command follows consistent patterns for error handling,
// output formatting, and user interaction.
//
// # Available Commands
//
// login - Authenticate with the platform and store the session token
//
// status, origin - Inspect the view server and platform version
//
// glossary, term, category - Manage glossary content
//
// project, asset, governance, location, capability - Manage other
// metadata element families
//
// md - Display, validate, or process markdown command documents, or
// watch a directory and process documents as they change
//
// # Command Structure
//
// Each command follows a consistent pattern:
//  1. Command definition in *_command.go files
//  2. Connection settings resolved from flags, environment, and the
//     config file, in that order of precedence
//  3. Output rendered as a table or, with --json, as indented JSON
package cli
