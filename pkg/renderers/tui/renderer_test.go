package tui

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formmsg/pkg/formtemplate"
	"github.com/goliatone/go-formmsg/pkg/testsupport"
)

type stubDriver struct {
	inputs     []string
	passwords  []string
	selectIdx  []int
	multiIdx   [][]int
	confirm    []bool
	inputPos   int
	passPos    int
	selectPos  int
	multiPos   int
	confirmPos int

	inputCfgs    []InputConfig
	selectCfgs   []SelectConfig
	multiCfgs    []SelectConfig
	confirmCfgs  []ConfirmConfig
	infoMessages []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.confirmCfgs = append(s.confirmCfgs, cfg)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiCfgs = append(s.multiCfgs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func signupTemplate(t *testing.T) formtemplate.FormTemplate {
	t.Helper()
	return testsupport.MustDecodeFile(t, filepath.Join("..", "..", "formtemplate", "testdata", "signup.json"))
}

func TestFill_SignupForm(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada Lovelace"},
		passwords: []string{"s3cret"},
		multiIdx:  [][]int{{0, 1}},
		selectIdx: []int{1},
		confirm:   []bool{true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	got, err := r.Fill(testsupport.Context(), signupTemplate(t))
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := Submission{
		Values: map[string]any{
			"fullName":  "Ada Lovelace",
			"password":  "s3cret",
			"interests": []any{"sports", "music"},
			"plan":      "pro",
			"source":    "mobile",
		},
		Submitted: true,
		Action: &formtemplate.Action{
			FormAction:  testsupport.StringPtr("https://example.com/signup"),
			Message:     testsupport.StringPtr("Signed up"),
			RequestType: testsupport.StringPtr("POST"),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}

	if driver.inputCfgs[0].Message != "Full name" || driver.inputCfgs[0].Help != "Jane Doe" {
		t.Fatalf("unexpected text prompt: %+v", driver.inputCfgs[0])
	}
	if diff := cmp.Diff([]string{"Free", "Pro"}, driver.selectCfgs[0].Options); diff != "" {
		t.Fatalf("select options mismatch (-want +got):\n%s", diff)
	}
	if driver.selectCfgs[0].Message != "Plan" {
		t.Fatalf("expected select titled Plan, got %q", driver.selectCfgs[0].Message)
	}
	if driver.confirmCfgs[0].Message != "Sign up" {
		t.Fatalf("expected submit label Sign up, got %q", driver.confirmCfgs[0].Message)
	}
}

func TestFill_SkipsUnknownElements(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	driver := &stubDriver{inputs: []string{"x"}}
	r, err := New(WithPromptDriver(driver), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	tmpl, err := formtemplate.Decode([]map[string]any{
		{},
		{"type": "bogus", "data": map[string]any{"type": "submit"}},
		{"type": "text", "data": map[string]any{"name": "note"}},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got, err := r.Fill(testsupport.Context(), tmpl)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1}, got.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
	if got.Submitted {
		t.Fatalf("unrecognised top-level type must not submit")
	}
	if len(driver.confirmCfgs) != 0 {
		t.Fatalf("expected no confirm prompts, got %d", len(driver.confirmCfgs))
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected 2 skip notices, got %v", driver.infoMessages)
	}
	if logs.Len() != 2 {
		t.Fatalf("expected 2 warnings, got %d", logs.Len())
	}
	if got.Values["note"] != "x" {
		t.Fatalf("unexpected values: %+v", got.Values)
	}
}

func TestFill_SubmitDeclined(t *testing.T) {
	driver := &stubDriver{confirm: []bool{false}}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	tmpl, err := formtemplate.Decode([]map[string]any{
		{"data": map[string]any{"type": "submit", "action": map[string]any{"formAction": "/x"}}},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got, err := r.Fill(testsupport.Context(), tmpl)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got.Submitted || got.Action != nil {
		t.Fatalf("expected declined submission, got %+v", got)
	}
	if driver.confirmCfgs[0].Message != defaultSubmitLabel {
		t.Fatalf("expected default submit label, got %q", driver.confirmCfgs[0].Message)
	}
}

func TestFill_OnlyFirstConfirmedSubmitCounts(t *testing.T) {
	driver := &stubDriver{confirm: []bool{true}}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	tmpl, err := formtemplate.Decode([]map[string]any{
		{"data": map[string]any{"type": "submit", "title": "Accept", "action": map[string]any{"message": "accepted"}}},
		{"data": map[string]any{"type": "submit", "title": "Reject", "action": map[string]any{"message": "rejected"}}},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got, err := r.Fill(testsupport.Context(), tmpl)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if len(driver.confirmCfgs) != 1 {
		t.Fatalf("expected a single confirm prompt, got %d", len(driver.confirmCfgs))
	}
	if got.Action == nil || formtemplate.Deref(got.Action.Message) != "accepted" {
		t.Fatalf("unexpected action: %+v", got.Action)
	}
}

func TestFill_PrefillDefaults(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"kept"},
		selectIdx: []int{0},
		multiIdx:  [][]int{{}},
	}
	r, err := New(WithPromptDriver(driver), WithPrefill(map[string]any{
		"nick": "ada",
		"size": "l",
		"tags": []any{"b"},
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	tmpl, err := formtemplate.Decode([]map[string]any{
		{"type": "text", "data": map[string]any{"name": "nick", "value": "ignored"}},
		{"type": "radio", "data": map[string]any{"name": "size", "options": []any{
			map[string]any{"label": "Small", "value": "s"},
			map[string]any{"label": "Large", "value": "l"},
		}}},
		{"type": "checkbox", "data": map[string]any{"name": "tags", "options": []any{
			map[string]any{"label": "A", "value": "a"},
			map[string]any{"label": "B", "value": "b"},
		}}},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got, err := r.Fill(testsupport.Context(), tmpl)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if driver.inputCfgs[0].Default != "ada" {
		t.Fatalf("expected prefilled default, got %q", driver.inputCfgs[0].Default)
	}
	if driver.selectCfgs[0].DefaultIndex != 1 {
		t.Fatalf("expected default index 1, got %d", driver.selectCfgs[0].DefaultIndex)
	}
	if diff := cmp.Diff([]int{1}, driver.multiCfgs[0].Defaults); diff != "" {
		t.Fatalf("multiselect defaults mismatch (-want +got):\n%s", diff)
	}
	if got.Values["size"] != "s" {
		t.Fatalf("expected answered value to replace prefill, got %v", got.Values["size"])
	}
	if diff := cmp.Diff([]any{}, got.Values["tags"]); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_SelectWithoutOptionsIsSkipped(t *testing.T) {
	driver := &stubDriver{}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	tmpl, err := formtemplate.Decode([]map[string]any{{"type": "radio", "data": map[string]any{"name": "empty"}}})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got, err := r.Fill(testsupport.Context(), tmpl)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff([]int{0}, got.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
	if len(driver.selectCfgs) != 0 {
		t.Fatalf("expected no select prompt")
	}
}

func TestFill_SanitizesDisplayStrings(t *testing.T) {
	driver := &stubDriver{inputs: []string{"v"}}
	r, err := New(WithPromptDriver(driver), WithSanitize(true))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	tmpl, err := formtemplate.Decode([]map[string]any{
		{"type": "text", "data": map[string]any{"label": "<b>Email</b>", "name": "email"}},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if _, err := r.Fill(testsupport.Context(), tmpl); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if driver.inputCfgs[0].Message != "Email" {
		t.Fatalf("expected sanitised label, got %q", driver.inputCfgs[0].Message)
	}
}

func TestFill_UnnamedElementsUseIndexKeys(t *testing.T) {
	driver := &stubDriver{inputs: []string{"hello"}}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	tmpl, err := formtemplate.Decode([]map[string]any{{}, {"type": "text"}})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got, err := r.Fill(testsupport.Context(), tmpl)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got.Values["elements[1]"] != "hello" {
		t.Fatalf("unexpected values: %+v", got.Values)
	}
	if driver.inputCfgs[0].Message != "elements[1]" {
		t.Fatalf("expected key as fallback label, got %q", driver.inputCfgs[0].Message)
	}
}

func TestFill_ContextCancelled(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(testsupport.Context())
	cancel()

	if _, err := r.Fill(ctx, signupTemplate(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFill_PropagatesDriverErrors(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Fill(testsupport.Context(), signupTemplate(t)); err == nil {
		t.Fatalf("expected error when the driver runs out of answers")
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}

func TestEncode(t *testing.T) {
	submission := Submission{
		Values: map[string]any{
			"name": "Ada",
			"tags": []any{"a", "b"},
		},
		Submitted: true,
		Action:    &formtemplate.Action{FormAction: testsupport.StringPtr("/send"), RequestType: testsupport.StringPtr("POST")},
	}

	cases := []struct {
		format      OutputFormat
		contentType string
		want        string
	}{
		{
			format:      OutputFormatFormURLEncoded,
			contentType: "application/x-www-form-urlencoded",
			want:        "name=Ada&tags%5B%5D=a&tags%5B%5D=b",
		},
		{
			format:      OutputFormatPrettyText,
			contentType: "text/plain",
			want:        "name=Ada\ntags[0]=a\ntags[1]=b\nsubmitted=true\naction.formAction=/send\naction.requestType=POST\n",
		},
	}

	for _, tc := range cases {
		t.Run(string(tc.format), func(t *testing.T) {
			r, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(tc.format))
			if err != nil {
				t.Fatalf("new renderer: %v", err)
			}
			if got := r.ContentType(); got != tc.contentType {
				t.Fatalf("ContentType() = %q, want %q", got, tc.contentType)
			}
			out, err := r.Encode(submission)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if diff := cmp.Diff(tc.want, string(out)); diff != "" {
				t.Fatalf("encoded mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_JSON(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Encode(Submission{Values: map[string]any{"plan": "pro"}, Skipped: []int{2}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{
		"values":    map[string]any{"plan": "pro"},
		"submitted": false,
		"skipped":   []any{float64(2)},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}
