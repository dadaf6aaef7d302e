package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formmsg/pkg/formtemplate"
)

// MustDecodeFile decodes a JSON or YAML payload fixture, choosing the decoder
// by file extension. Failures abort the test.
func MustDecodeFile(t *testing.T, path string) formtemplate.FormTemplate {
	t.Helper()

	tmpl, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return tmpl
}

// DecodeFile decodes a payload fixture without requiring testing.T.
func DecodeFile(path string) (formtemplate.FormTemplate, error) {
	if path == "" {
		return formtemplate.FormTemplate{}, errors.New("testsupport: fixture path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return formtemplate.FormTemplate{}, fmt.Errorf("testsupport: read fixture: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formtemplate.DecodeYAML(data)
	default:
		return formtemplate.DecodeJSON(data)
	}
}

// MustLoadTemplate loads a JSON golden holding a serialised FormTemplate.
func MustLoadTemplate(t *testing.T, path string) formtemplate.FormTemplate {
	t.Helper()

	tmpl, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	return tmpl
}

// LoadTemplate reads a FormTemplate golden, returning an error for callers
// managing setup outside of *testing.T.
func LoadTemplate(path string) (formtemplate.FormTemplate, error) {
	if path == "" {
		return formtemplate.FormTemplate{}, errors.New("testsupport: template path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return formtemplate.FormTemplate{}, fmt.Errorf("testsupport: read template: %w", err)
	}
	var out formtemplate.FormTemplate
	if err := json.Unmarshal(data, &out); err != nil {
		return formtemplate.FormTemplate{}, fmt.Errorf("testsupport: unmarshal template: %w", err)
	}
	return out, nil
}

// MustReadFixture returns the raw bytes of a fixture file.
func MustReadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// StringPtr returns a pointer to value, for building optional fields inline.
func StringPtr(value string) *string {
	return &value
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
