package client

import (
	"encoding/json"
	"fmt"
)

// envelope is the response wrapper the platform puts around every payload.
// Exactly one of the payload fields is populated, depending on the endpoint.
type envelope struct {
	RelatedHTTPCode       int    `json:"relatedHTTPCode"`
	ExceptionClassName    string `json:"exceptionClassName,omitempty"`
	ExceptionErrorMessage string `json:"exceptionErrorMessage,omitempty"`
	ExceptionSystemAction string `json:"exceptionSystemAction,omitempty"`
	ExceptionUserAction   string `json:"exceptionUserAction,omitempty"`

	GUID        string          `json:"guid,omitempty"`
	Element     json.RawMessage `json:"element,omitempty"`
	ElementList json.RawMessage `json:"elementList,omitempty"`
	NameList    []string        `json:"nameList,omitempty"`
	Version     string          `json:"version,omitempty"`
	Flag        *bool           `json:"flag,omitempty"`
}

// exceptionError converts a platform-reported exception in the envelope to a
// typed error. Returns nil when the envelope carries no exception.
func (e *envelope) exceptionError(method, url string) error {
	if e.ExceptionClassName == "" && (e.RelatedHTTPCode == 0 || e.RelatedHTTPCode < 300) {
		return nil
	}
	msg := e.ExceptionErrorMessage
	if msg == "" {
		msg = fmt.Sprintf("platform reported %s", e.ExceptionClassName)
	}
	return &ClientError{
		Kind:              kindFromEnvelope(e),
		StatusCode:        e.RelatedHTTPCode,
		Message:           msg,
		Method:            method,
		URL:               url,
		PlatformException: e.ExceptionClassName,
	}
}

// kindFromEnvelope prefers the exception class for classification and falls
// back to the embedded HTTP code. The platform reports exceptions through a
// 200 response whose envelope carries the real status.
func kindFromEnvelope(e *envelope) ErrorKind {
	switch e.ExceptionClassName {
	case "InvalidParameterException":
		return ErrorKindInvalidParameter
	case "UserNotAuthorizedException":
		return ErrorKindNotAuthorized
	case "PropertyServerException":
		return ErrorKindPlatform
	}
	if e.RelatedHTTPCode > 0 {
		return kindFromStatus(e.RelatedHTTPCode)
	}
	return ErrorKindUnknown
}

// decodeElement unmarshals the envelope's single-element payload into out.
func (e *envelope) decodeElement(out any) error {
	if len(e.Element) == 0 {
		return newError(ErrorKindNotFound, "response contained no element")
	}
	if err := json.Unmarshal(e.Element, out); err != nil {
		return &ClientError{Kind: ErrorKindUnknown, Message: "malformed element payload", Cause: err}
	}
	return nil
}

// decodeElementList unmarshals the envelope's element-list payload into out.
// An absent list decodes as empty, not as an error: list endpoints omit the
// field when nothing matched.
func (e *envelope) decodeElementList(out any) error {
	if len(e.ElementList) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.ElementList, out); err != nil {
		return &ClientError{Kind: ErrorKindUnknown, Message: "malformed element list payload", Cause: err}
	}
	return nil
}
