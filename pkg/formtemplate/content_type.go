package formtemplate

// ContentType is the closed set of renderable element kinds. The underlying
// string is the wire literal; use Name for the kind name.
type ContentType string

const (
	ContentTypeText         ContentType = "text"
	ContentTypePassword     ContentType = "password"
	ContentTypeMultiselect  ContentType = "checkbox"
	ContentTypeSingleSelect ContentType = "radio"
	ContentTypeHidden       ContentType = "hidden"
	ContentTypeSubmit       ContentType = "submit"
	ContentTypeUnknown      ContentType = "unknown"
)

var contentTypes = map[string]ContentType{
	string(ContentTypeText):         ContentTypeText,
	string(ContentTypePassword):     ContentTypePassword,
	string(ContentTypeMultiselect):  ContentTypeMultiselect,
	string(ContentTypeSingleSelect): ContentTypeSingleSelect,
	string(ContentTypeHidden):       ContentTypeHidden,
	string(ContentTypeSubmit):       ContentTypeSubmit,
	string(ContentTypeUnknown):      ContentTypeUnknown,
}

var contentTypeNames = map[ContentType]string{
	ContentTypeText:         "text",
	ContentTypePassword:     "password",
	ContentTypeMultiselect:  "multiselect",
	ContentTypeSingleSelect: "singleSelect",
	ContentTypeHidden:       "hidden",
	ContentTypeSubmit:       "submit",
	ContentTypeUnknown:      "unknown",
}

// ContentTypes lists every kind in declaration order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentTypeText,
		ContentTypePassword,
		ContentTypeMultiselect,
		ContentTypeSingleSelect,
		ContentTypeHidden,
		ContentTypeSubmit,
		ContentTypeUnknown,
	}
}

// ParseContentType matches a wire literal exactly. Kind names that differ from
// their wire literal ("multiselect", "singleSelect") do not match.
func ParseContentType(raw string) (ContentType, bool) {
	kind, ok := contentTypes[raw]
	return kind, ok
}

// Name returns the kind name, e.g. "multiselect" for the "checkbox" literal.
func (c ContentType) Name() string {
	if name, ok := contentTypeNames[c]; ok {
		return name
	}
	return contentTypeNames[ContentTypeUnknown]
}

// Classify resolves the kind of an element. A present top-level type is
// authoritative: when it does not match a known literal the result is
// ContentTypeUnknown and data.type is never consulted. data.type is only read
// when the top-level type is absent.
func Classify(element Element) ContentType {
	if element.Type != nil {
		return lookupContentType(*element.Type)
	}
	if element.Data == nil || element.Data.Type == nil {
		return ContentTypeUnknown
	}
	return lookupContentType(*element.Data.Type)
}

func lookupContentType(raw string) ContentType {
	if kind, ok := ParseContentType(raw); ok {
		return kind
	}
	return ContentTypeUnknown
}
