package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/metaforge-io/metaforge/pkg/constants"
)

// LocationClient provides location operations on a view server.
type LocationClient struct {
	c *Client
}

// Locations returns the location resource client.
func (c *Client) Locations() *LocationClient {
	return &LocationClient{c: c}
}

// Create creates a location and returns its GUID.
func (lc *LocationClient) Create(ctx context.Context, props LocationProperties) (string, error) {
	if err := props.Validate(); err != nil {
		return "", err
	}
	return lc.c.getGUID(ctx, http.MethodPost, lc.c.serverPath(constants.LocationPath),
		map[string]any{"properties": props})
}

// Update replaces or merges a location's properties.
func (lc *LocationClient) Update(ctx context.Context, guid string, props LocationProperties, merge bool) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	if err := props.Validate(); err != nil {
		return err
	}
	_, err := lc.c.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("%s/update?mergeUpdate=%t", lc.c.serverPath(constants.LocationPath, guid), merge),
		map[string]any{"properties": props})
	return err
}

// Delete removes a location.
func (lc *LocationClient) Delete(ctx context.Context, guid string) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	_, err := lc.c.doRequest(ctx, http.MethodPost, lc.c.serverPath(constants.LocationPath, guid)+"/delete", nil)
	return err
}

// GetByGUID retrieves a location by its GUID.
func (lc *LocationClient) GetByGUID(ctx context.Context, guid string) (*Element, error) {
	if err := validateGUID(guid); err != nil {
		return nil, err
	}
	return lc.c.getElement(ctx, http.MethodGet, lc.c.serverPath(constants.LocationPath, guid, "retrieve"), nil)
}

// Find searches locations by search string.
func (lc *LocationClient) Find(ctx context.Context, searchString string, opts SearchOptions) ([]Element, error) {
	return lc.c.getElementList(ctx, http.MethodPost, lc.c.serverPath(constants.LocationPath, "by-search-string"),
		searchBody(searchString, opts))
}

// Nest places childGUID inside parentGUID, e.g. a data center inside a
// region.
func (lc *LocationClient) Nest(ctx context.Context, parentGUID, childGUID string) error {
	if err := validateGUID(parentGUID); err != nil {
		return err
	}
	if err := validateGUID(childGUID); err != nil {
		return err
	}
	_, err := lc.c.doRequest(ctx, http.MethodPost,
		lc.c.serverPath(constants.LocationPath, parentGUID, "nested", childGUID), nil)
	return err
}
