package gdata

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
)

// Parse error kinds. Every *ParseError matches exactly one of these with
// errors.Is, and also matches domain.ErrInvalidResponse.
var (
	// ErrDocument indicates the payload is not well-formed XML or JSON, or
	// has no root.
	ErrDocument = errors.New("gdata: unparseable document")

	// ErrRequiredAttributeMissing indicates a mandatory XML attribute or JSON
	// property is absent.
	ErrRequiredAttributeMissing = errors.New("gdata: required attribute missing")

	// ErrRequiredElementMissing indicates a mandatory child element or member
	// is absent after the whole payload was read.
	ErrRequiredElementMissing = errors.New("gdata: required element missing")

	// ErrRequiredContentMissing indicates an element or member is present
	// but empty where content is mandatory.
	ErrRequiredContentMissing = errors.New("gdata: required content missing")

	// ErrDuplicateElement indicates a singleton element occurs more than once.
	ErrDuplicateElement = errors.New("gdata: duplicate element")

	// ErrMalformedValue indicates a value that cannot be read as its
	// declared type or is outside its enumerated set.
	ErrMalformedValue = errors.New("gdata: malformed value")
)

// ParseError describes why a payload could not be turned into a resource.
type ParseError struct {
	// Kind is one of the Err* kind sentinels above.
	Kind error
	// Element is the element or member involved, rendered as in the
	// message (e.g. "<entry/gAcl:scope>").
	Element string
	// Property is the attribute or property involved, if any.
	Property string
	// Value is the offending content, if any.
	Value string

	msg string
}

func (e *ParseError) Error() string { return e.msg }

// Is matches the error's kind and the invalid-response family.
func (e *ParseError) Is(target error) bool {
	return target == e.Kind || target == domain.ErrInvalidResponse
}

func newParseError(kind error, element, property, value, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:     kind,
		Element:  element,
		Property: property,
		Value:    value,
		msg:      fmt.Sprintf(format, args...),
	}
}

// RequiredContentMissing reports an element present without mandatory content.
func RequiredContentMissing(n *Node) error {
	el := n.Describe()
	return newParseError(ErrRequiredContentMissing, el, "", "",
		"A %s element was missing required content.", el)
}

// NotISO8601 reports element content that is not an ISO 8601 timestamp.
func NotISO8601(n *Node, content string) error {
	el := n.Describe()
	return newParseError(ErrMalformedValue, el, "", content,
		"The content of a %s element (‘%s’) was not in ISO 8601 format.", el, content)
}

// UnknownPropertyValue reports an attribute value outside its allowed set.
func UnknownPropertyValue(n *Node, property, value string) error {
	el := n.Describe()
	return newParseError(ErrMalformedValue, el, property, value,
		"The value of the %s property of a %s element (‘%s’) was unknown.", property, el, value)
}

// UnknownContent reports element content outside its allowed set.
func UnknownContent(n *Node, content string) error {
	el := n.Describe()
	return newParseError(ErrMalformedValue, el, "", content,
		"The content of a %s element (‘%s’) was unknown.", el, content)
}

// RequiredPropertyMissing reports a missing mandatory attribute.
func RequiredPropertyMissing(n *Node, property string) error {
	el := n.Describe()
	return newParseError(ErrRequiredAttributeMissing, el, property, "",
		"A required property of a %s element (@%s) was not present.", el, property)
}

// MutexProperties reports two attributes set where only one is allowed.
func MutexProperties(n *Node, property1, property2 string) error {
	el := n.Describe()
	return newParseError(ErrMalformedValue, el, property1+","+property2, "",
		"Values were present for properties %s and %s of a %s element when only one of the two is allowed.",
		property1, property2, el)
}

// RequiredElementMissing reports a mandatory child element of parent that
// never appeared.
func RequiredElementMissing(name, parent string) error {
	return newParseError(ErrRequiredElementMissing, "<"+parent+"/"+name+">", "", "",
		"A required element (<%s/%s>) was not present.", parent, name)
}

// DuplicateElement reports a second occurrence of a singleton element.
func DuplicateElement(n *Node) error {
	el := n.Describe()
	return newParseError(ErrDuplicateElement, el, "", "",
		"A singleton element (%s) was duplicated.", el)
}

// RequiredJSONContentMissing reports a JSON member without mandatory content.
func RequiredJSONContentMissing(member string) error {
	return newParseError(ErrRequiredContentMissing, member, "", "",
		"A ‘%s’ element was missing required content.", member)
}

// InvalidJSON reports a JSON value of the wrong type or shape.
func InvalidJSON(member, detail string) error {
	return newParseError(ErrMalformedValue, member, "", "",
		"Invalid JSON was received from the server: %s", detail)
}

// NotISO8601JSON reports a JSON string member that is not an ISO 8601 timestamp.
func NotISO8601JSON(member, content string) error {
	return newParseError(ErrMalformedValue, member, "", content,
		"The content of a ‘%s’ element (‘%s’) was not in ISO 8601 format.", member, content)
}

// UnknownJSONValue reports a JSON string member outside its allowed set.
func UnknownJSONValue(member, value string) error {
	return newParseError(ErrMalformedValue, member, "", value,
		"The content of a ‘%s’ element (‘%s’) was unknown.", member, value)
}

func errParsingXML(detail string) error {
	return newParseError(ErrDocument, "", "", "", "Error parsing XML: %s", detail)
}

func errParsingJSON(detail string) error {
	return newParseError(ErrDocument, "", "", "", "Error parsing JSON: %s", detail)
}

// IsParseError reports whether err came from decoding a response payload.
func IsParseError(err error) bool {
	return errors.Is(err, domain.ErrInvalidResponse)
}
