package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/metaforge-io/metaforge/pkg/constants"
)

// ProjectClient provides project operations on a view server.
type ProjectClient struct {
	c        *Client
	resolver *Resolver
}

// Projects returns the project resource client.
func (c *Client) Projects() *ProjectClient {
	pc := &ProjectClient{c: c}
	pc.resolver = NewResolver(pc.lookupByName)
	return pc
}

// Resolver returns the project name resolver.
func (pc *ProjectClient) Resolver() *Resolver { return pc.resolver }

// Create creates a project and returns its GUID.
func (pc *ProjectClient) Create(ctx context.Context, props ProjectProperties) (string, error) {
	if err := props.Validate(); err != nil {
		return "", err
	}
	guid, err := pc.c.getGUID(ctx, http.MethodPost, pc.c.serverPath(constants.ProjectPath),
		map[string]any{"properties": props})
	if err != nil {
		return "", err
	}
	pc.resolver.Remember(props.DisplayName, ElementStub{
		GUID:          guid,
		TypeName:      "Project",
		QualifiedName: props.QualifiedName,
		DisplayName:   props.DisplayName,
	})
	return guid, nil
}

// Update replaces or merges a project's properties.
func (pc *ProjectClient) Update(ctx context.Context, guid string, props ProjectProperties, merge bool) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	if err := props.Validate(); err != nil {
		return err
	}
	_, err := pc.c.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("%s/update?mergeUpdate=%t", pc.c.serverPath(constants.ProjectPath, guid), merge),
		map[string]any{"properties": props})
	return err
}

// Delete removes a project.
func (pc *ProjectClient) Delete(ctx context.Context, guid string) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	_, err := pc.c.doRequest(ctx, http.MethodPost, pc.c.serverPath(constants.ProjectPath, guid)+"/delete", nil)
	return err
}

// GetByGUID retrieves a project by its GUID.
func (pc *ProjectClient) GetByGUID(ctx context.Context, guid string) (*Element, error) {
	if err := validateGUID(guid); err != nil {
		return nil, err
	}
	return pc.c.getElement(ctx, http.MethodGet, pc.c.serverPath(constants.ProjectPath, guid, "retrieve"), nil)
}

// GetByName retrieves the project whose qualified or display name matches
// exactly.
func (pc *ProjectClient) GetByName(ctx context.Context, name string) (*Element, error) {
	if name == "" {
		return nil, invalidParameterError("project name is empty")
	}
	return pc.c.getElement(ctx, http.MethodPost, pc.c.serverPath(constants.ProjectPath, "by-name"),
		map[string]any{"name": name})
}

// Find searches projects by search string.
func (pc *ProjectClient) Find(ctx context.Context, searchString string, opts SearchOptions) ([]Element, error) {
	return pc.c.getElementList(ctx, http.MethodPost, pc.c.serverPath(constants.ProjectPath, "by-search-string"),
		searchBody(searchString, opts))
}

// LinkHierarchy makes childGUID a managed sub-project of parentGUID.
func (pc *ProjectClient) LinkHierarchy(ctx context.Context, parentGUID, childGUID string) error {
	if err := validateGUID(parentGUID); err != nil {
		return err
	}
	if err := validateGUID(childGUID); err != nil {
		return err
	}
	_, err := pc.c.doRequest(ctx, http.MethodPost,
		pc.c.serverPath(constants.ProjectPath, parentGUID, "children", childGUID), nil)
	return err
}

// AddMember adds an actor (person, team, engine) to the project's membership
// with the given role.
func (pc *ProjectClient) AddMember(ctx context.Context, projectGUID, actorGUID, role string) error {
	if err := validateGUID(projectGUID); err != nil {
		return err
	}
	if err := validateGUID(actorGUID); err != nil {
		return err
	}
	_, err := pc.c.doRequest(ctx, http.MethodPost,
		pc.c.serverPath(constants.ProjectPath, projectGUID, "members", actorGUID),
		map[string]any{"role": role})
	return err
}

func (pc *ProjectClient) lookupByName(ctx context.Context, name string) (ElementStub, error) {
	element, err := pc.GetByName(ctx, name)
	if err != nil {
		return ElementStub{}, err
	}
	return element.Stub(), nil
}
