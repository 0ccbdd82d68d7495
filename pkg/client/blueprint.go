package client

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const blueprintPath = "/api/v3/solution-blueprints"

// SolutionBlueprintProperties describe a solution blueprint.
type SolutionBlueprintProperties struct {
	DisplayName       string `json:"displayName" mapstructure:"displayName"`
	QualifiedName     string `json:"qualifiedName,omitempty" mapstructure:"qualifiedName"`
	Description       string `json:"description,omitempty" mapstructure:"description"`
	VersionIdentifier string `json:"versionIdentifier,omitempty" mapstructure:"versionIdentifier"`
}

// Validate checks the properties before they are sent to the platform.
func (p SolutionBlueprintProperties) Validate() error {
	return wrapValidation(validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required, validation.Length(1, 255)),
	))
}

// BlueprintClient provides solution-blueprint operations on a view server.
type BlueprintClient struct {
	c        *Client
	resolver *Resolver
}

// SolutionBlueprints returns the solution-blueprint resource client.
func (c *Client) SolutionBlueprints() *BlueprintClient {
	bc := &BlueprintClient{c: c}
	bc.resolver = NewResolver(bc.lookupByName)
	return bc
}

// Resolver returns the blueprint name resolver.
func (bc *BlueprintClient) Resolver() *Resolver { return bc.resolver }

// Create creates a solution blueprint and returns its GUID.
func (bc *BlueprintClient) Create(ctx context.Context, props SolutionBlueprintProperties) (string, error) {
	if err := props.Validate(); err != nil {
		return "", err
	}
	guid, err := bc.c.getGUID(ctx, http.MethodPost, bc.c.serverPath(blueprintPath),
		map[string]any{"properties": props})
	if err != nil {
		return "", err
	}
	bc.resolver.Remember(props.DisplayName, ElementStub{
		GUID:          guid,
		TypeName:      "SolutionBlueprint",
		QualifiedName: props.QualifiedName,
		DisplayName:   props.DisplayName,
	})
	return guid, nil
}

// Update replaces or merges a solution blueprint's properties.
func (bc *BlueprintClient) Update(ctx context.Context, guid string, props SolutionBlueprintProperties, merge bool) error {
	if err := validateGUID(guid); err != nil {
		return err
	}
	if err := props.Validate(); err != nil {
		return err
	}
	_, err := bc.c.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("%s/update?mergeUpdate=%t", bc.c.serverPath(blueprintPath, guid), merge),
		map[string]any{"properties": props})
	return err
}

// GetByName retrieves the blueprint whose qualified or display name matches
// exactly.
func (bc *BlueprintClient) GetByName(ctx context.Context, name string) (*Element, error) {
	if name == "" {
		return nil, invalidParameterError("blueprint name is empty")
	}
	return bc.c.getElement(ctx, http.MethodPost, bc.c.serverPath(blueprintPath, "by-name"),
		map[string]any{"name": name})
}

// Find searches solution blueprints by search string.
func (bc *BlueprintClient) Find(ctx context.Context, searchString string, opts SearchOptions) ([]Element, error) {
	return bc.c.getElementList(ctx, http.MethodPost, bc.c.serverPath(blueprintPath, "by-search-string"),
		searchBody(searchString, opts))
}

func (bc *BlueprintClient) lookupByName(ctx context.Context, name string) (ElementStub, error) {
	element, err := bc.GetByName(ctx, name)
	if err != nil {
		return ElementStub{}, err
	}
	return element.Stub(), nil
}
