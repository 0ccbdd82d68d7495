package client

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/mapstructure"
)

// ElementHeader carries the platform-assigned identity of a metadata element.
type ElementHeader struct {
	GUID     string `json:"guid" mapstructure:"guid"`
	TypeName string `json:"typeName" mapstructure:"typeName"`
	Origin   string `json:"origin,omitempty" mapstructure:"origin"`
	Status   string `json:"status,omitempty" mapstructure:"status"`
}

// ElementStub is the compact form of an element returned by name lookups and
// used as the value type of the resolver cache.
type ElementStub struct {
	GUID          string `json:"guid" mapstructure:"guid"`
	TypeName      string `json:"typeName" mapstructure:"typeName"`
	QualifiedName string `json:"qualifiedName" mapstructure:"qualifiedName"`
	DisplayName   string `json:"displayName,omitempty" mapstructure:"displayName"`
}

// Element is a full metadata element: its header plus a loosely typed
// properties map whose shape depends on the element's type.
type Element struct {
	Header     ElementHeader  `json:"elementHeader"`
	Properties map[string]any `json:"properties"`
}

// DecodeProperties decodes the element's loose properties map into a typed
// struct such as GlossaryProperties or TermProperties.
func (e *Element) DecodeProperties(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(e.Properties); err != nil {
		return &ClientError{Kind: ErrorKindUnknown, Message: "cannot decode element properties", Cause: err}
	}
	return nil
}

// Stub derives an ElementStub from a full element.
func (e *Element) Stub() ElementStub {
	stub := ElementStub{GUID: e.Header.GUID, TypeName: e.Header.TypeName}
	if v, ok := e.Properties["qualifiedName"].(string); ok {
		stub.QualifiedName = v
	}
	if v, ok := e.Properties["displayName"].(string); ok {
		stub.DisplayName = v
	}
	return stub
}

// GlossaryProperties describe a glossary.
type GlossaryProperties struct {
	DisplayName   string `json:"displayName" mapstructure:"displayName"`
	QualifiedName string `json:"qualifiedName,omitempty" mapstructure:"qualifiedName"`
	Description   string `json:"description,omitempty" mapstructure:"description"`
	Language      string `json:"language,omitempty" mapstructure:"language"`
	Usage         string `json:"usage,omitempty" mapstructure:"usage"`
}

// Validate checks the properties before they are sent to the platform.
func (p GlossaryProperties) Validate() error {
	return wrapValidation(validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.QualifiedName, validation.Length(0, 512)),
	))
}

// TermStatus is the lifecycle status of a glossary term.
type TermStatus string

const (
	TermStatusDraft    TermStatus = "DRAFT"
	TermStatusActive   TermStatus = "ACTIVE"
	TermStatusDeprecated TermStatus = "DEPRECATED"
	TermStatusObsolete TermStatus = "OBSOLETE"
)

// TermProperties describe a glossary term.
type TermProperties struct {
	DisplayName   string     `json:"displayName" mapstructure:"displayName"`
	QualifiedName string     `json:"qualifiedName,omitempty" mapstructure:"qualifiedName"`
	Summary       string     `json:"summary,omitempty" mapstructure:"summary"`
	Description   string     `json:"description,omitempty" mapstructure:"description"`
	Abbreviation  string     `json:"abbreviation,omitempty" mapstructure:"abbreviation"`
	Examples      string     `json:"examples,omitempty" mapstructure:"examples"`
	Usage         string     `json:"usage,omitempty" mapstructure:"usage"`
	Status        TermStatus `json:"status,omitempty" mapstructure:"status"`
	EffectiveFrom *time.Time `json:"effectiveFrom,omitempty" mapstructure:"-"`
	EffectiveTo   *time.Time `json:"effectiveTo,omitempty" mapstructure:"-"`

	AdditionalProperties map[string]string `json:"additionalProperties,omitempty" mapstructure:"additionalProperties"`
}

// Validate checks the properties before they are sent to the platform.
func (p TermProperties) Validate() error {
	return wrapValidation(validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Status, validation.In(TermStatus(""), TermStatusDraft, TermStatusActive, TermStatusDeprecated, TermStatusObsolete)),
	))
}

// CategoryProperties describe a glossary category.
type CategoryProperties struct {
	DisplayName   string `json:"displayName" mapstructure:"displayName"`
	QualifiedName string `json:"qualifiedName,omitempty" mapstructure:"qualifiedName"`
	Description   string `json:"description,omitempty" mapstructure:"description"`
}

// Validate checks the properties before they are sent to the platform.
func (p CategoryProperties) Validate() error {
	return wrapValidation(validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required, validation.Length(1, 255)),
	))
}

// ProjectProperties describe a project.
type ProjectProperties struct {
	DisplayName   string     `json:"displayName" mapstructure:"displayName"`
	QualifiedName string     `json:"qualifiedName,omitempty" mapstructure:"qualifiedName"`
	Identifier    string     `json:"identifier,omitempty" mapstructure:"identifier"`
	Description   string     `json:"description,omitempty" mapstructure:"description"`
	Status        string     `json:"projectStatus,omitempty" mapstructure:"projectStatus"`
	Phase         string     `json:"projectPhase,omitempty" mapstructure:"projectPhase"`
	StartDate     *time.Time `json:"startDate,omitempty" mapstructure:"-"`
	PlannedEnd    *time.Time `json:"plannedEndDate,omitempty" mapstructure:"-"`
}

// Validate checks the properties before they are sent to the platform.
func (p ProjectProperties) Validate() error {
	return wrapValidation(validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required, validation.Length(1, 255)),
	))
}

// GovernanceDefinitionProperties describe a governance definition such as a
// policy, principle, or obligation.
type GovernanceDefinitionProperties struct {
	TypeName       string `json:"typeName" mapstructure:"typeName"`
	Title          string `json:"title" mapstructure:"title"`
	QualifiedName  string `json:"qualifiedName,omitempty" mapstructure:"qualifiedName"`
	Summary        string `json:"summary,omitempty" mapstructure:"summary"`
	Description    string `json:"description,omitempty" mapstructure:"description"`
	Scope          string `json:"scope,omitempty" mapstructure:"scope"`
	Importance     string `json:"importance,omitempty" mapstructure:"importance"`
	ImplementationDescription string `json:"implementationDescription,omitempty" mapstructure:"implementationDescription"`
}

// Validate checks the properties before they are sent to the platform.
func (p GovernanceDefinitionProperties) Validate() error {
	return wrapValidation(validation.ValidateStruct(&p,
		validation.Field(&p.TypeName, validation.Required),
		validation.Field(&p.Title, validation.Required, validation.Length(1, 255)),
	))
}

// LocationProperties describe a location.
type LocationProperties struct {
	DisplayName   string `json:"displayName" mapstructure:"displayName"`
	QualifiedName string `json:"qualifiedName,omitempty" mapstructure:"qualifiedName"`
	Description   string `json:"description,omitempty" mapstructure:"description"`
	// Kind distinguishes fixed, secure, and digital locations.
	Kind string `json:"locationKind,omitempty" mapstructure:"locationKind"`
}

// Validate checks the properties before they are sent to the platform.
func (p LocationProperties) Validate() error {
	return wrapValidation(validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required, validation.Length(1, 255)),
	))
}

// BusinessCapabilityProperties describe a business capability.
type BusinessCapabilityProperties struct {
	DisplayName   string `json:"displayName" mapstructure:"displayName"`
	QualifiedName string `json:"qualifiedName,omitempty" mapstructure:"qualifiedName"`
	Description   string `json:"description,omitempty" mapstructure:"description"`
	Identifier    string `json:"identifier,omitempty" mapstructure:"identifier"`
}

// Validate checks the properties before they are sent to the platform.
func (p BusinessCapabilityProperties) Validate() error {
	return wrapValidation(validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required, validation.Length(1, 255)),
	))
}

// SearchOptions control find-style calls.
type SearchOptions struct {
	StartFrom  int  `json:"startFrom"`
	PageSize   int  `json:"pageSize"`
	StartsWith bool `json:"startsWith"`
	EndsWith   bool `json:"endsWith"`
	IgnoreCase bool `json:"ignoreCase"`
}

// wrapValidation converts an ozzo-validation error into the client's typed
// invalid-parameter error so callers see a single error taxonomy.
func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return &ClientError{Kind: ErrorKindInvalidParameter, Message: "invalid request properties", Cause: err}
}
