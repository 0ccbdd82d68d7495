package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/metaforge-io/metaforge/pkg/constants"
	"github.com/metaforge-io/metaforge/pkg/sliceutil"
)

// governanceDefinitionTypes are the definition type names the platform
// accepts for typed retrieval.
var governanceDefinitionTypes = []string{
	"GovernancePrinciple",
	"GovernancePolicy",
	"GovernanceObligation",
	"GovernanceStrategy",
	"Regulation",
	"GovernanceProcedure",
}

// GovernanceClient provides governance-definition operations on a view
// server.
type GovernanceClient struct {
	c *Client
}

// GovernanceDefinitions returns the governance-definition resource client.
func (c *Client) GovernanceDefinitions() *GovernanceClient {
	return &GovernanceClient{c: c}
}

// Create creates a governance definition of props.TypeName and returns its
// GUID.
func (gc *GovernanceClient) Create(ctx context.Context, props GovernanceDefinitionProperties) (string, error) {
	if err := props.Validate(); err != nil {
		return "", err
	}
	if !sliceutil.Contains(governanceDefinitionTypes, props.TypeName) {
		return "", invalidParameterError("unknown governance definition type %q", props.TypeName)
	}
	return gc.c.getGUID(ctx, http.MethodPost, gc.c.serverPath(constants.GovDefPath),
		map[string]any{"properties": props})
}

// Update replaces or merges a governance definition's properties.
func (gc *GovernanceClient) Update(ctx context.Context, guid string, props GovernanceDefinitionProperties, merge bool) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	if err := props.Validate(); err != nil {
		return err
	}
	_, err := gc.c.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("%s/update?mergeUpdate=%t", gc.c.serverPath(constants.GovDefPath, guid), merge),
		map[string]any{"properties": props})
	return err
}

// Delete removes a governance definition.
func (gc *GovernanceClient) Delete(ctx context.Context, guid string) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	_, err := gc.c.doRequest(ctx, http.MethodPost, gc.c.serverPath(constants.GovDefPath, guid)+"/delete", nil)
	return err
}

// GetByGUID retrieves a governance definition by its GUID.
func (gc *GovernanceClient) GetByGUID(ctx context.Context, guid string) (*Element, error) {
	if err := validateGUID(guid); err != nil {
		return nil, err
	}
	return gc.c.getElement(ctx, http.MethodGet, gc.c.serverPath(constants.GovDefPath, guid, "retrieve"), nil)
}

// FindByType lists governance definitions of one type, paged through to
// completion. An empty type lists every definition.
func (gc *GovernanceClient) FindByType(ctx context.Context, typeName string) ([]Element, error) {
	if typeName != "" && !sliceutil.Contains(governanceDefinitionTypes, typeName) {
		return nil, invalidParameterError("unknown governance definition type %q", typeName)
	}
	return fetchAllPages(ctx, 0, func(ctx context.Context, startFrom, pageSize int) ([]Element, error) {
		return gc.c.getElementList(ctx, http.MethodPost, gc.c.serverPath(constants.GovDefPath, "by-type"),
			map[string]any{
				"typeName":  typeName,
				"startFrom": startFrom,
				"pageSize":  pageSize,
			})
	})
}

// Find searches governance definitions by search string.
func (gc *GovernanceClient) Find(ctx context.Context, searchString string, opts SearchOptions) ([]Element, error) {
	return gc.c.getElementList(ctx, http.MethodPost, gc.c.serverPath(constants.GovDefPath, "by-search-string"),
		searchBody(searchString, opts))
}

// LinkPeers links two peer definitions (e.g. a policy supporting a
// principle) with the given relationship type.
func (gc *GovernanceClient) LinkPeers(ctx context.Context, guid, peerGUID, relationshipType string) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	if err := validateGUID(peerGUID); err != nil {
		return err
	}
	if relationshipType == "" {
		return invalidParameterError("relationship type is empty")
	}
	_, err := gc.c.doRequest(ctx, http.MethodPost,
		gc.c.serverPath(constants.GovDefPath, guid, "peers", relationshipType, peerGUID), nil)
	return err
}
