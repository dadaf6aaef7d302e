package formtemplate

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	displayPolicyOnce sync.Once
	displayPolicy     *bluemonday.Policy
)

// Sanitize returns a copy of the template with markup stripped from display
// strings: labels, placeholders, titles, option labels and the action
// message. Names, values, type tags, option values, formAction and
// requestType are copied verbatim so classification does not change. Display
// strings that sanitise to blank become absent.
func Sanitize(template FormTemplate) FormTemplate {
	if template.Elements == nil {
		return FormTemplate{}
	}
	out := FormTemplate{Elements: make([]Element, len(template.Elements))}
	for idx, element := range template.Elements {
		out.Elements[idx] = sanitizeElement(element)
	}
	return out
}

func sanitizeElement(element Element) Element {
	out := Element{Type: cloneString(element.Type)}
	if element.Data == nil {
		return out
	}
	data := element.Data
	details := &Details{
		Label:       sanitizeDisplay(data.Label),
		Placeholder: sanitizeDisplay(data.Placeholder),
		Name:        cloneString(data.Name),
		Value:       cloneString(data.Value),
		Title:       sanitizeDisplay(data.Title),
		Type:        cloneString(data.Type),
	}
	if data.Action != nil {
		details.Action = &Action{
			FormAction:  cloneString(data.Action.FormAction),
			Message:     sanitizeDisplay(data.Action.Message),
			RequestType: cloneString(data.Action.RequestType),
		}
	}
	if data.Options != nil {
		details.Options = make([]Option, len(data.Options))
		for idx, opt := range data.Options {
			details.Options[idx] = Option{
				Label: sanitizeText(opt.Label),
				Value: opt.Value,
			}
		}
	}
	out.Data = details
	return out
}

func sanitizeDisplay(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := sanitizeText(*value)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(displaySanitizer().Sanitize(trimmed))
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func displaySanitizer() *bluemonday.Policy {
	displayPolicyOnce.Do(func() {
		displayPolicy = bluemonday.StrictPolicy()
	})
	return displayPolicy
}
