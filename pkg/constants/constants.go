// Package constants defines shared constants for the metaforge CLI and client.
package constants

import "time"

// CLIName is the name of the command-line binary.
const CLIName = "mf"

// DefaultPageSize is the page size used for paged list calls when the caller
// does not specify one.
const DefaultPageSize = 100

// MaxPageSize is the largest page size the platform accepts.
const MaxPageSize = 500

// DefaultTimeout is the per-request timeout applied when the caller's context
// carries no deadline.
const DefaultTimeout = 30 * time.Second

// MinPlatformVersion is the lowest platform release this client is tested
// against. The origin command compares the server's reported version against
// this value.
const MinPlatformVersion = "v5.1.0"

// Environment variable names recognized by the CLI configuration layer.
const (
	EnvURL      = "METAFORGE_URL"
	EnvServer   = "METAFORGE_SERVER"
	EnvUser     = "METAFORGE_USER"
	EnvPassword = "METAFORGE_PASSWORD"
	EnvToken    = "METAFORGE_TOKEN"
	EnvLogLevel = "METAFORGE_LOG"
)

// API path roots on the view server. Resource clients append to these.
const (
	APIRoot       = "/api/v3"
	TokenPath     = "/api/token"
	OriginPath    = "/api/v3/origin"
	StatusPath    = "/api/v3/server-status"
	GlossaryPath  = "/api/v3/glossaries"
	TermPath      = "/api/v3/terms"
	CategoryPath  = "/api/v3/categories"
	AssetPath     = "/api/v3/assets"
	ProjectPath   = "/api/v3/projects"
	GovDefPath    = "/api/v3/governance-definitions"
	LocationPath  = "/api/v3/locations"
	CapabilityPath = "/api/v3/business-capabilities"
)
