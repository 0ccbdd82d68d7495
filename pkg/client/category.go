package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/metaforge-io/metaforge/pkg/constants"
)

// CategoryClient provides glossary-category operations on a view server.
type CategoryClient struct {
	c        *Client
	resolver *Resolver
}

// Categories returns the category resource client.
func (c *Client) Categories() *CategoryClient {
	cc := &CategoryClient{c: c}
	cc.resolver = NewResolver(cc.lookupByName)
	return cc
}

// Resolver returns the category name resolver.
func (cc *CategoryClient) Resolver() *Resolver { return cc.resolver }

// Create creates a category inside the given glossary and returns its GUID.
func (cc *CategoryClient) Create(ctx context.Context, glossaryGUID string, props CategoryProperties) (string, error) {
	if err := validateGUID(glossaryGUID); err != nil {
		return "", err
	}
	if err := props.Validate(); err != nil {
		return "", err
	}
	guid, err := cc.c.getGUID(ctx, http.MethodPost, cc.c.serverPath(constants.CategoryPath),
		map[string]any{
			"glossaryGUID": glossaryGUID,
			"properties":   props,
		})
	if err != nil {
		return "", err
	}
	cc.resolver.Remember(props.DisplayName, ElementStub{
		GUID:          guid,
		TypeName:      "GlossaryCategory",
		QualifiedName: props.QualifiedName,
		DisplayName:   props.DisplayName,
	})
	return guid, nil
}

// Update replaces or merges a category's properties.
func (cc *CategoryClient) Update(ctx context.Context, guid string, props CategoryProperties, merge bool) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	if err := props.Validate(); err != nil {
		return err
	}
	_, err := cc.c.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("%s/update?mergeUpdate=%t", cc.c.serverPath(constants.CategoryPath, guid), merge),
		map[string]any{"properties": props})
	return err
}

// Delete removes a category. Terms filed under it stay in their glossary.
func (cc *CategoryClient) Delete(ctx context.Context, guid string) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	_, err := cc.c.doRequest(ctx, http.MethodPost, cc.c.serverPath(constants.CategoryPath, guid)+"/delete", nil)
	return err
}

// GetByGUID retrieves a category by its GUID.
func (cc *CategoryClient) GetByGUID(ctx context.Context, guid string) (*Element, error) {
	if err := validateGUID(guid); err != nil {
		return nil, err
	}
	return cc.c.getElement(ctx, http.MethodGet, cc.c.serverPath(constants.CategoryPath, guid, "retrieve"), nil)
}

// GetByName retrieves the category whose qualified or display name matches
// exactly.
func (cc *CategoryClient) GetByName(ctx context.Context, name string) (*Element, error) {
	if name == "" {
		return nil, invalidParameterError("category name is empty")
	}
	return cc.c.getElement(ctx, http.MethodPost, cc.c.serverPath(constants.CategoryPath, "by-name"),
		map[string]any{"name": name})
}

// Find searches categories by search string.
func (cc *CategoryClient) Find(ctx context.Context, searchString string, opts SearchOptions) ([]Element, error) {
	return cc.c.getElementList(ctx, http.MethodPost, cc.c.serverPath(constants.CategoryPath, "by-search-string"),
		searchBody(searchString, opts))
}

// SetParent nests a category under a parent category.
func (cc *CategoryClient) SetParent(ctx context.Context, categoryGUID, parentGUID string) error {
	if err := validateGUID(categoryGUID); err != nil {
		return err
	}
	if err := validateGUID(parentGUID); err != nil {
		return err
	}
	_, err := cc.c.doRequest(ctx, http.MethodPost,
		cc.c.serverPath(constants.CategoryPath, categoryGUID, "parent", parentGUID), nil)
	return err
}

func (cc *CategoryClient) lookupByName(ctx context.Context, name string) (ElementStub, error) {
	element, err := cc.GetByName(ctx, name)
	if err != nil {
		return ElementStub{}, err
	}
	return element.Stub(), nil
}
