package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/metaforge-io/metaforge/pkg/constants"
)

// CapabilityClient provides business-capability operations on a view server.
type CapabilityClient struct {
	c *Client
}

// BusinessCapabilities returns the business-capability resource client.
func (c *Client) BusinessCapabilities() *CapabilityClient {
	return &CapabilityClient{c: c}
}

// Create creates a business capability and returns its GUID.
func (bc *CapabilityClient) Create(ctx context.Context, props BusinessCapabilityProperties) (string, error) {
	if err := props.Validate(); err != nil {
		return "", err
	}
	return bc.c.getGUID(ctx, http.MethodPost, bc.c.serverPath(constants.CapabilityPath),
		map[string]any{"properties": props})
}

// Update replaces or merges a business capability's properties.
func (bc *CapabilityClient) Update(ctx context.Context, guid string, props BusinessCapabilityProperties, merge bool) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	if err := props.Validate(); err != nil {
		return err
	}
	_, err := bc.c.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("%s/update?mergeUpdate=%t", bc.c.serverPath(constants.CapabilityPath, guid), merge),
		map[string]any{"properties": props})
	return err
}

// Delete removes a business capability.
func (bc *CapabilityClient) Delete(ctx context.Context, guid string) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	_, err := bc.c.doRequest(ctx, http.MethodPost, bc.c.serverPath(constants.CapabilityPath, guid)+"/delete", nil)
	return err
}

// GetByGUID retrieves a business capability by its GUID.
func (bc *CapabilityClient) GetByGUID(ctx context.Context, guid string) (*Element, error) {
	if err := validateGUID(guid); err != nil {
		return nil, err
	}
	return bc.c.getElement(ctx, http.MethodGet, bc.c.serverPath(constants.CapabilityPath, guid, "retrieve"), nil)
}

// Find searches business capabilities by search string.
func (bc *CapabilityClient) Find(ctx context.Context, searchString string, opts SearchOptions) ([]Element, error) {
	return bc.c.getElementList(ctx, http.MethodPost, bc.c.serverPath(constants.CapabilityPath, "by-search-string"),
		searchBody(searchString, opts))
}

// LinkSupporting records that capability guid depends on supportingGUID.
func (bc *CapabilityClient) LinkSupporting(ctx context.Context, guid, supportingGUID string) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	if err := validateGUID(supportingGUID); err != nil {
		return err
	}
	_, err := bc.c.doRequest(ctx, http.MethodPost,
		bc.c.serverPath(constants.CapabilityPath, guid, "supported-by", supportingGUID), nil)
	return err
}
