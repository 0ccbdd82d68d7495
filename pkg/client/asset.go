package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/metaforge-io/metaforge/pkg/constants"
)

// AssetClient provides asset discovery operations on a view server.
type AssetClient struct {
	c *Client
}

// Assets returns the asset resource client.
func (c *Client) Assets() *AssetClient {
	return &AssetClient{c: c}
}

// AssetGraph is the neighborhood of an asset: the anchor element plus the
// elements and relationships reachable from it.
type AssetGraph struct {
	Anchor        Element             `json:"anchor"`
	Elements      []Element           `json:"elements"`
	Relationships []AssetRelationship `json:"relationships"`
}

// AssetRelationship is one edge of an asset graph.
type AssetRelationship struct {
	TypeName string `json:"typeName"`
	End1GUID string `json:"end1GUID"`
	End2GUID string `json:"end2GUID"`
	Label    string `json:"label,omitempty"`
}

// Find searches assets whose metadata matches the search string.
func (ac *AssetClient) Find(ctx context.Context, searchString string, opts SearchOptions) ([]Element, error) {
	if strings.TrimSpace(searchString) == "" {
		return nil, invalidParameterError("asset search string is empty")
	}
	return ac.c.getElementList(ctx, http.MethodPost, ac.c.serverPath(constants.AssetPath, "by-search-string"),
		searchBody(searchString, opts))
}

// GetByGUID retrieves an asset by its GUID.
func (ac *AssetClient) GetByGUID(ctx context.Context, guid string) (*Element, error) {
	if err := validateGUID(guid); err != nil {
		return nil, err
	}
	return ac.c.getElement(ctx, http.MethodGet, ac.c.serverPath(constants.AssetPath, guid, "retrieve"), nil)
}

// Graph retrieves the asset's neighborhood graph.
func (ac *AssetClient) Graph(ctx context.Context, guid string) (*AssetGraph, error) {
	if err := validateGUID(guid); err != nil {
		return nil, err
	}
	env, err := ac.c.doRequest(ctx, http.MethodGet, ac.c.serverPath(constants.AssetPath, guid, "graph"), nil)
	if err != nil {
		return nil, err
	}
	if len(env.Element) == 0 {
		return nil, newError(ErrorKindNotFound, "response contained no graph")
	}
	graph := &AssetGraph{}
	if err := json.Unmarshal(env.Element, graph); err != nil {
		return nil, &ClientError{Kind: ErrorKindUnknown, Message: "malformed asset graph payload", Cause: err}
	}
	return graph, nil
}

// MermaidGraph renders an asset graph as a mermaid flowchart, the format the
// CLI embeds in markdown output.
func (g *AssetGraph) MermaidGraph() string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	names := make(map[string]string, len(g.Elements)+1)
	addNode := func(e Element) {
		if _, ok := names[e.Header.GUID]; ok {
			return
		}
		id := fmt.Sprintf("n%d", len(names))
		names[e.Header.GUID] = id
		label := e.Header.TypeName
		if v, ok := e.Properties["displayName"].(string); ok && v != "" {
			label = fmt.Sprintf("%s: %s", e.Header.TypeName, v)
		}
		b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, mermaidEscape(label)))
	}

	addNode(g.Anchor)
	for _, e := range g.Elements {
		addNode(e)
	}
	for _, rel := range g.Relationships {
		from, okFrom := names[rel.End1GUID]
		to, okTo := names[rel.End2GUID]
		if !okFrom || !okTo {
			continue
		}
		label := rel.Label
		if label == "" {
			label = rel.TypeName
		}
		b.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", from, mermaidEscape(label), to))
	}
	return b.String()
}

func mermaidEscape(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	return strings.ReplaceAll(s, "|", "/")
}
