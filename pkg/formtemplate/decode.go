package formtemplate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode converts generic transport records into a FormTemplate. The payload
// is re-serialised to JSON and then decoded strictly; nil records are treated
// as empty records. Any failure aborts the whole message.
func Decode(payload []map[string]any) (FormTemplate, error) {
	records := make([]map[string]any, len(payload))
	for idx, record := range payload {
		if record == nil {
			record = map[string]any{}
		}
		records[idx] = record
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return FormTemplate{}, malformed("", err, "serialize payload: %v", err)
	}
	return DecodeJSON(raw)
}

// DecodeJSON decodes a JSON array of element records.
func DecodeJSON(raw []byte) (FormTemplate, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return FormTemplate{}, malformed("", nil, "payload is empty")
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return FormTemplate{}, malformed("", err, "payload must be an array of element records: %v", err)
	}

	elements := make([]Element, 0, len(records))
	for idx, record := range records {
		path := fmt.Sprintf("elements[%d]", idx)
		element, err := decodeElement(record, path)
		if err != nil {
			return FormTemplate{}, err
		}
		elements = append(elements, element)
	}
	return FormTemplate{Elements: elements}, nil
}

// DecodeYAML decodes a YAML sequence of element mappings.
func DecodeYAML(raw []byte) (FormTemplate, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return FormTemplate{}, malformed("", nil, "payload is empty")
	}
	var payload []map[string]any
	if err := yaml.Unmarshal(raw, &payload); err != nil {
		return FormTemplate{}, malformed("", err, "payload must be a sequence of element mappings: %v", err)
	}
	for idx, record := range payload {
		if record == nil {
			return FormTemplate{}, malformed(fmt.Sprintf("elements[%d]", idx), nil, "element must be a mapping")
		}
	}
	return Decode(payload)
}

var jsonNull = []byte("null")

// object is one JSON object with its values left raw. Keys are matched
// exactly; encoding/json struct decoding would fold their case.
type object map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull)
}

func decodeObject(raw json.RawMessage, path, what string) (object, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, malformed(path, nil, "%s must be an object", what)
	}
	var obj object
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, malformed(path, err, "decode %s: %v", what, err)
	}
	return obj, nil
}

// optionalString reads key as a string. Absent and null both yield nil.
func (o object) optionalString(key, path string) (*string, error) {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, malformed(path+"."+key, err, "expected string, got %s", jsonKind(raw))
	}
	return &value, nil
}

func (o object) optionalObject(key, path string) (object, bool, error) {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return nil, false, nil
	}
	obj, err := decodeObject(raw, path+"."+key, key)
	if err != nil {
		return nil, false, err
	}
	return obj, true, nil
}

func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "nothing"
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func decodeElement(raw json.RawMessage, path string) (Element, error) {
	obj, err := decodeObject(raw, path, "element")
	if err != nil {
		return Element{}, err
	}

	kind, err := obj.optionalString("type", path)
	if err != nil {
		return Element{}, err
	}
	element := Element{Type: kind}

	data, ok, err := obj.optionalObject("data", path)
	if err != nil || !ok {
		return element, err
	}
	details, err := decodeDetails(data, path+".data")
	if err != nil {
		return Element{}, err
	}
	element.Data = details
	return element, nil
}

func decodeDetails(obj object, path string) (*Details, error) {
	details := &Details{}
	fields := []struct {
		key    string
		target **string
	}{
		{"label", &details.Label},
		{"placeholder", &details.Placeholder},
		{"name", &details.Name},
		{"value", &details.Value},
		{"title", &details.Title},
		{"type", &details.Type},
	}
	for _, field := range fields {
		value, err := obj.optionalString(field.key, path)
		if err != nil {
			return nil, err
		}
		*field.target = value
	}

	action, ok, err := obj.optionalObject("action", path)
	if err != nil {
		return nil, err
	}
	if ok {
		if details.Action, err = decodeAction(action, path+".action"); err != nil {
			return nil, err
		}
	}

	options, err := decodeOptions(obj, path)
	if err != nil {
		return nil, err
	}
	details.Options = options
	return details, nil
}

func decodeAction(obj object, path string) (*Action, error) {
	action := &Action{}
	var err error
	if action.FormAction, err = obj.optionalString("formAction", path); err != nil {
		return nil, err
	}
	if action.Message, err = obj.optionalString("message", path); err != nil {
		return nil, err
	}
	if action.RequestType, err = obj.optionalString("requestType", path); err != nil {
		return nil, err
	}
	return action, nil
}

// decodeOptions enforces the required label and value of every entry. A null
// entry counts as missing both.
func decodeOptions(obj object, path string) ([]Option, error) {
	raw, ok := obj["options"]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, malformed(path+".options", err, "expected array, got %s", jsonKind(raw))
	}

	options := make([]Option, 0, len(entries))
	for idx, entry := range entries {
		optPath := fmt.Sprintf("%s.options[%d]", path, idx)
		entryObj := object{}
		if !isNull(entry) {
			var err error
			if entryObj, err = decodeObject(entry, optPath, "option"); err != nil {
				return nil, err
			}
		}
		label, err := entryObj.optionalString("label", optPath)
		if err != nil {
			return nil, err
		}
		if label == nil {
			return nil, malformed(optPath+".label", nil, "option label is required")
		}
		value, err := entryObj.optionalString("value", optPath)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, malformed(optPath+".value", nil, "option value is required")
		}
		options = append(options, Option{Label: *label, Value: *value})
	}
	return options, nil
}
