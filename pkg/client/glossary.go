package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/metaforge-io/metaforge/pkg/constants"
	"github.com/metaforge-io/metaforge/pkg/logger"
)

var glossaryLog = logger.New("client:glossary")

// GlossaryClient provides glossary operations on a view server.
type GlossaryClient struct {
	c        *Client
	resolver *Resolver
}

// Glossaries returns the glossary resource client.
func (c *Client) Glossaries() *GlossaryClient {
	gc := &GlossaryClient{c: c}
	gc.resolver = NewResolver(gc.lookupByName)
	return gc
}

// Resolver returns the glossary name resolver, a flat cache over by-name
// lookups shared by the markdown processor.
func (gc *GlossaryClient) Resolver() *Resolver { return gc.resolver }

// Create creates a glossary and returns its GUID.
func (gc *GlossaryClient) Create(ctx context.Context, props GlossaryProperties) (string, error) {
	if err := props.Validate(); err != nil {
		return "", err
	}
	guid, err := gc.c.getGUID(ctx, http.MethodPost, gc.c.serverPath(constants.GlossaryPath), map[string]any{
		"properties": props,
	})
	if err != nil {
		return "", err
	}
	glossaryLog.Printf("Created glossary %q -> %s", props.DisplayName, guid)
	gc.resolver.Remember(props.DisplayName, ElementStub{
		GUID:          guid,
		TypeName:      "Glossary",
		QualifiedName: props.QualifiedName,
		DisplayName:   props.DisplayName,
	})
	return guid, nil
}

// Update replaces or merges a glossary's properties. With merge true, unset
// properties keep their current values on the platform.
func (gc *GlossaryClient) Update(ctx context.Context, guid string, props GlossaryProperties, merge bool) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	if err := props.Validate(); err != nil {
		return err
	}
	_, err := gc.c.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("%s/update?mergeUpdate=%t", gc.c.serverPath(constants.GlossaryPath, guid), merge),
		map[string]any{"properties": props})
	return err
}

// Delete removes a glossary. With cascade true, the platform also removes
// the glossary's terms and categories.
func (gc *GlossaryClient) Delete(ctx context.Context, guid string, cascade bool) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	_, err := gc.c.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("%s/delete?cascade=%t", gc.c.serverPath(constants.GlossaryPath, guid), cascade), nil)
	if err == nil {
		glossaryLog.Printf("Deleted glossary %s", guid)
	}
	return err
}

// GetByGUID retrieves a glossary by its GUID.
func (gc *GlossaryClient) GetByGUID(ctx context.Context, guid string) (*Element, error) {
	if err := validateGUID(guid); err != nil {
		return nil, err
	}
	return gc.c.getElement(ctx, http.MethodGet, gc.c.serverPath(constants.GlossaryPath, guid, "retrieve"), nil)
}

// GetByName retrieves the glossary whose qualified or display name matches
// exactly. Ambiguous names are reported as invalid parameters by the
// platform.
func (gc *GlossaryClient) GetByName(ctx context.Context, name string) (*Element, error) {
	if name == "" {
		return nil, invalidParameterError("glossary name is empty")
	}
	return gc.c.getElement(ctx, http.MethodPost, gc.c.serverPath(constants.GlossaryPath, "by-name"),
		map[string]any{"name": name})
}

// Find searches glossaries by search string. An empty search string with
// default options returns all glossaries, paged.
func (gc *GlossaryClient) Find(ctx context.Context, searchString string, opts SearchOptions) ([]Element, error) {
	return gc.c.getElementList(ctx, http.MethodPost, gc.c.serverPath(constants.GlossaryPath, "by-search-string"),
		searchBody(searchString, opts))
}

// FindAll retrieves every glossary on the view server.
func (gc *GlossaryClient) FindAll(ctx context.Context) ([]Element, error) {
	return fetchAllPages(ctx, 0, func(ctx context.Context, startFrom, pageSize int) ([]Element, error) {
		return gc.Find(ctx, "", SearchOptions{StartFrom: startFrom, PageSize: pageSize, IgnoreCase: true})
	})
}

// Terms lists the terms of a glossary, paged through to completion.
func (gc *GlossaryClient) Terms(ctx context.Context, glossaryGUID string) ([]Element, error) {
	if err := validateGUID(glossaryGUID); err != nil {
		return nil, err
	}
	return fetchAllPages(ctx, 0, func(ctx context.Context, startFrom, pageSize int) ([]Element, error) {
		return gc.c.getElementList(ctx, http.MethodGet,
			fmt.Sprintf("%s/terms/retrieve?startFrom=%d&pageSize=%d",
				gc.c.serverPath(constants.GlossaryPath, glossaryGUID), startFrom, pageSize), nil)
	})
}

// Categories lists the categories of a glossary, paged through to completion.
func (gc *GlossaryClient) Categories(ctx context.Context, glossaryGUID string) ([]Element, error) {
	if err := validateGUID(glossaryGUID); err != nil {
		return nil, err
	}
	return fetchAllPages(ctx, 0, func(ctx context.Context, startFrom, pageSize int) ([]Element, error) {
		return gc.c.getElementList(ctx, http.MethodGet,
			fmt.Sprintf("%s/categories/retrieve?startFrom=%d&pageSize=%d",
				gc.c.serverPath(constants.GlossaryPath, glossaryGUID), startFrom, pageSize), nil)
	})
}

func (gc *GlossaryClient) lookupByName(ctx context.Context, name string) (ElementStub, error) {
	element, err := gc.GetByName(ctx, name)
	if err != nil {
		return ElementStub{}, err
	}
	return element.Stub(), nil
}

// searchBody builds the request body shared by all by-search-string
// endpoints.
func searchBody(searchString string, opts SearchOptions) map[string]any {
	if opts.PageSize <= 0 {
		opts.PageSize = constants.DefaultPageSize
	}
	return map[string]any{
		"searchString": searchString,
		"startFrom":    opts.StartFrom,
		"pageSize":     opts.PageSize,
		"startsWith":   opts.StartsWith,
		"endsWith":     opts.EndsWith,
		"ignoreCase":   opts.IgnoreCase,
	}
}
