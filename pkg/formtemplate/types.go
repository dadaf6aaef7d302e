package formtemplate

import "strings"

// FormTemplate is one decoded form message. Element order is the on-screen
// field order.
type FormTemplate struct {
	Elements []Element `json:"elements"`
}

// Element is a single field or control. Either part may be absent.
type Element struct {
	Type *string  `json:"type,omitempty"`
	Data *Details `json:"data,omitempty"`
}

// ContentType resolves the element kind. See Classify.
func (e Element) ContentType() ContentType {
	return Classify(e)
}

// Details carries the rendering and behaviour attributes of an element. Type
// is a secondary kind signal used only when Element.Type is absent.
type Details struct {
	Label       *string  `json:"label,omitempty"`
	Placeholder *string  `json:"placeholder,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Value       *string  `json:"value,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Action      *Action  `json:"action,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// DisplayLabel returns the first non-blank of label, title, placeholder and
// name. A nil receiver yields "".
func (d *Details) DisplayLabel() string {
	if d == nil {
		return ""
	}
	for _, candidate := range []*string{d.Label, d.Title, d.Placeholder, d.Name} {
		if value := strings.TrimSpace(Deref(candidate)); value != "" {
			return value
		}
	}
	return ""
}

// Option is one selectable choice.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Action describes what submitting the form triggers.
type Action struct {
	FormAction  *string `json:"formAction,omitempty"`
	Message     *string `json:"message,omitempty"`
	RequestType *string `json:"requestType,omitempty"`
}

// Deref returns the pointed-to string or "" when absent.
func Deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
