package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/metaforge-io/metaforge/pkg/constants"
)

// ServerStatus reports the runtime state of the view server.
type ServerStatus struct {
	ServerName    string `json:"serverName"`
	ServerType    string `json:"serverType"`
	Active        bool   `json:"active"`
	StartTime     string `json:"startTime,omitempty"`
	PlatformBuild string `json:"platformBuild,omitempty"`
}

// Origin returns the platform's version string, e.g. "v5.2.1".
func (c *Client) Origin(ctx context.Context) (string, error) {
	env, err := c.doRequest(ctx, http.MethodGet, c.platformURL+constants.OriginPath, nil)
	if err != nil {
		return "", err
	}
	if env.Version == "" {
		return "", newError(ErrorKindUnknown, "origin response contained no version")
	}
	return env.Version, nil
}

// Status returns the view server's runtime status.
func (c *Client) Status(ctx context.Context) (*ServerStatus, error) {
	env, err := c.doRequest(ctx, http.MethodGet, c.serverPath(constants.StatusPath), nil)
	if err != nil {
		return nil, err
	}
	if len(env.Element) == 0 {
		return nil, newError(ErrorKindNotFound, "status response contained no element")
	}
	status := &ServerStatus{}
	if err := json.Unmarshal(env.Element, status); err != nil {
		return nil, &ClientError{Kind: ErrorKindUnknown, Message: "malformed status payload", Cause: err}
	}
	return status, nil
}

// CheckPlatformVersion compares a platform-reported version string against
// the minimum this client supports. Returns an error for unparseable or
// too-old versions.
func CheckPlatformVersion(reported string) error {
	v := strings.TrimSpace(reported)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return invalidParameterError("platform reported unparseable version %q", reported)
	}
	if semver.Compare(v, constants.MinPlatformVersion) < 0 {
		return newError(ErrorKindPlatform, fmt.Sprintf(
			"platform version %s is older than the minimum supported %s", reported, constants.MinPlatformVersion))
	}
	return nil
}
