package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/metaforge-io/metaforge/pkg/constants"
	"github.com/metaforge-io/metaforge/pkg/logger"
)

var termLog = logger.New("client:term")

// TermClient provides glossary-term operations on a view server.
type TermClient struct {
	c        *Client
	resolver *Resolver
}

// Terms returns the term resource client.
func (c *Client) Terms() *TermClient {
	tc := &TermClient{c: c}
	tc.resolver = NewResolver(tc.lookupByName)
	return tc
}

// Resolver returns the term name resolver.
func (tc *TermClient) Resolver() *Resolver { return tc.resolver }

// Create creates a term inside the given glossary and returns its GUID.
func (tc *TermClient) Create(ctx context.Context, glossaryGUID string, props TermProperties) (string, error) {
	if err := validateGUID(glossaryGUID); err != nil {
		return "", err
	}
	if err := props.Validate(); err != nil {
		return "", err
	}
	guid, err := tc.c.getGUID(ctx, http.MethodPost, tc.c.serverPath(constants.TermPath),
		map[string]any{
			"glossaryGUID": glossaryGUID,
			"properties":   props,
		})
	if err != nil {
		return "", err
	}
	termLog.Printf("Created term %q in glossary %s -> %s", props.DisplayName, glossaryGUID, guid)
	tc.resolver.Remember(props.DisplayName, ElementStub{
		GUID:          guid,
		TypeName:      "GlossaryTerm",
		QualifiedName: props.QualifiedName,
		DisplayName:   props.DisplayName,
	})
	return guid, nil
}

// Update replaces or merges a term's properties.
func (tc *TermClient) Update(ctx context.Context, guid string, props TermProperties, merge bool) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	if err := props.Validate(); err != nil {
		return err
	}
	_, err := tc.c.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("%s/update?mergeUpdate=%t", tc.c.serverPath(constants.TermPath, guid), merge),
		map[string]any{"properties": props})
	return err
}

// UpdateStatus moves a term to a new lifecycle status.
func (tc *TermClient) UpdateStatus(ctx context.Context, guid string, status TermStatus) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	_, err := tc.c.doRequest(ctx, http.MethodPost,
		tc.c.serverPath(constants.TermPath, guid)+"/status",
		map[string]any{"status": status})
	return err
}

// Delete removes a term.
func (tc *TermClient) Delete(ctx context.Context, guid string) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	_, err := tc.c.doRequest(ctx, http.MethodPost, tc.c.serverPath(constants.TermPath, guid)+"/delete", nil)
	if err == nil {
		termLog.Printf("Deleted term %s", guid)
	}
	return err
}

// GetByGUID retrieves a term by its GUID.
func (tc *TermClient) GetByGUID(ctx context.Context, guid string) (*Element, error) {
	if err := validateGUID(guid); err != nil {
		return nil, err
	}
	return tc.c.getElement(ctx, http.MethodGet, tc.c.serverPath(constants.TermPath, guid, "retrieve"), nil)
}

// GetByName retrieves the term whose qualified or display name matches
// exactly, optionally scoped to one glossary.
func (tc *TermClient) GetByName(ctx context.Context, name, glossaryGUID string) (*Element, error) {
	if name == "" {
		return nil, invalidParameterError("term name is empty")
	}
	body := map[string]any{"name": name}
	if glossaryGUID != "" {
		if err := validateGUID(glossaryGUID); err != nil {
			return nil, err
		}
		body["glossaryGUID"] = glossaryGUID
	}
	return tc.c.getElement(ctx, http.MethodPost, tc.c.serverPath(constants.TermPath, "by-name"), body)
}

// Find searches terms by search string across all glossaries.
func (tc *TermClient) Find(ctx context.Context, searchString string, opts SearchOptions) ([]Element, error) {
	return tc.c.getElementList(ctx, http.MethodPost, tc.c.serverPath(constants.TermPath, "by-search-string"),
		searchBody(searchString, opts))
}

// Details fetches the full elements for a set of term GUIDs in parallel.
func (tc *TermClient) Details(ctx context.Context, guids []string) ([]Element, error) {
	for _, guid := range guids {
		if err := validateGUID(guid); err != nil {
			return nil, err
		}
	}
	return fetchDetails(ctx, guids, 4, tc.GetByGUID)
}

// AddToCategory files a term under a category.
func (tc *TermClient) AddToCategory(ctx context.Context, termGUID, categoryGUID string) error {
	if err := validateGUID(termGUID); err != nil {
		return err
	}
	if err := validateGUID(categoryGUID); err != nil {
		return err
	}
	_, err := tc.c.doRequest(ctx, http.MethodPost,
		tc.c.serverPath(constants.TermPath, termGUID, "categories", categoryGUID), nil)
	return err
}

// RemoveFromCategory unfiles a term from a category.
func (tc *TermClient) RemoveFromCategory(ctx context.Context, termGUID, categoryGUID string) error {
	if err := validateGUID(termGUID); err != nil {
		return err
	}
	if err := validateGUID(categoryGUID); err != nil {
		return err
	}
	_, err := tc.c.doRequest(ctx, http.MethodPost,
		tc.c.serverPath(constants.TermPath, termGUID, "categories", categoryGUID)+"/delete", nil)
	return err
}

// RelateTerms creates a typed relationship (synonym, antonym, translation,
// is-a, ...) between two terms.
func (tc *TermClient) RelateTerms(ctx context.Context, termGUID, relatedGUID, relationshipType string) error {
	if err := validateGUID(termGUID); err != nil {
		return err
	}
	if err := validateGUID(relatedGUID); err != nil {
		return err
	}
	if relationshipType == "" {
		return invalidParameterError("relationship type is empty")
	}
	_, err := tc.c.doRequest(ctx, http.MethodPost,
		tc.c.serverPath(constants.TermPath, termGUID, "relationships", relationshipType, relatedGUID), nil)
	return err
}

// RelatedTerms lists the terms related to this one, with their relationship
// types in the returned element properties.
func (tc *TermClient) RelatedTerms(ctx context.Context, termGUID string) ([]Element, error) {
	if err := validateGUID(termGUID); err != nil {
		return nil, err
	}
	return fetchAllPages(ctx, 0, func(ctx context.Context, startFrom, pageSize int) ([]Element, error) {
		return tc.c.getElementList(ctx, http.MethodGet,
			fmt.Sprintf("%s/related?startFrom=%d&pageSize=%d",
				tc.c.serverPath(constants.TermPath, termGUID), startFrom, pageSize), nil)
	})
}

func (tc *TermClient) lookupByName(ctx context.Context, name string) (ElementStub, error) {
	element, err := tc.GetByName(ctx, name, "")
	if err != nil {
		return ElementStub{}, err
	}
	return element.Stub(), nil
}
