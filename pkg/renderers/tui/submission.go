package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formmsg/pkg/formtemplate"
)

// Submission is the outcome of filling a form message. Action is set only
// when a submit element was confirmed and carried an action.
type Submission struct {
	Values    map[string]any       `json:"values"`
	Submitted bool                 `json:"submitted"`
	Action    *formtemplate.Action `json:"action,omitempty"`
	Skipped   []int                `json:"skipped,omitempty"`
}

// Encode serializes a submission using the renderer's output format.
func (r *Renderer) Encode(submission Submission) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(submission.Values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(submission)), nil
	default:
		payload, err := json.Marshal(submission)
		if err != nil {
			return nil, fmt.Errorf("tui: encode submission: %w", err)
		}
		return payload, nil
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		switch v := value.(type) {
		case []any:
			for _, item := range v {
				flattened.Add(key+"[]", fmt.Sprint(item))
			}
		default:
			flattened.Set(key, fmt.Sprint(v))
		}
	}
	return flattened.Encode()
}

func prettyPrint(submission Submission) string {
	var b strings.Builder
	for _, key := range sortedKeys(submission.Values) {
		switch v := submission.Values[key].(type) {
		case []any:
			for idx, item := range v {
				fmt.Fprintf(&b, "%s[%d]=%v\n", key, idx, item)
			}
		default:
			fmt.Fprintf(&b, "%s=%v\n", key, v)
		}
	}
	fmt.Fprintf(&b, "submitted=%t\n", submission.Submitted)
	if action := submission.Action; action != nil {
		writeOptional(&b, "action.formAction", action.FormAction)
		writeOptional(&b, "action.message", action.Message)
		writeOptional(&b, "action.requestType", action.RequestType)
	}
	return b.String()
}

func writeOptional(b *strings.Builder, key string, value *string) {
	if value == nil {
		return
	}
	fmt.Fprintf(b, "%s=%s\n", key, *value)
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
