package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formmsg/pkg/formtemplate"
)

const defaultSubmitLabel = "Submit"

// Renderer fills decoded form messages in a terminal, issuing one prompt per
// element kind.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	logger       *zap.Logger
	sanitize     bool
	prefill      map[string]any
}

// New constructs a TUI renderer with defaults (survey driver, JSON output,
// no-op logger).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		logger:       zap.NewNop(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// ContentType reports the serialization format used by Encode.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render fills the template and encodes the resulting submission.
func (r *Renderer) Render(ctx context.Context, tmpl formtemplate.FormTemplate) ([]byte, error) {
	submission, err := r.Fill(ctx, tmpl)
	if err != nil {
		return nil, err
	}
	return r.Encode(submission)
}

// Fill walks the elements in order and collects answers. Elements that
// classify as unknown are skipped and reported in Submission.Skipped.
func (r *Renderer) Fill(ctx context.Context, tmpl formtemplate.FormTemplate) (Submission, error) {
	if ctx == nil {
		return Submission{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	if r.driver == nil {
		return Submission{}, errors.New("tui: prompt driver is nil")
	}

	if r.sanitize {
		tmpl = formtemplate.Sanitize(tmpl)
	}

	state := NewState(r.prefill)
	submission := Submission{}

	for idx, element := range tmpl.Elements {
		if err := ctx.Err(); err != nil {
			return Submission{}, err
		}

		kind := formtemplate.Classify(element)
		key := valueKey(element, idx)
		log := r.logger.With(zap.Int("index", idx), zap.String("kind", kind.Name()), zap.String("key", key))

		var err error
		switch kind {
		case formtemplate.ContentTypeText:
			err = r.promptText(ctx, element, key, state, false)
		case formtemplate.ContentTypePassword:
			err = r.promptText(ctx, element, key, state, true)
		case formtemplate.ContentTypeMultiselect:
			err = r.promptMultiSelect(ctx, element, key, state)
		case formtemplate.ContentTypeSingleSelect:
			err = r.promptSelect(ctx, element, key, state)
		case formtemplate.ContentTypeHidden:
			if element.Data != nil && element.Data.Value != nil {
				state.SetValue(key, *element.Data.Value)
			}
		case formtemplate.ContentTypeSubmit:
			if submission.Submitted {
				log.Debug("form already submitted, ignoring submit element")
				continue
			}
			err = r.promptSubmit(ctx, element, &submission)
		default:
			log.Warn("skipping element with unknown kind",
				zap.String("type", formtemplate.Deref(element.Type)),
			)
			err = r.skip(ctx, idx, &submission)
		}

		if errors.Is(err, ErrNoOptions) {
			log.Warn("skipping select element without options")
			err = r.skip(ctx, idx, &submission)
		}
		if err != nil {
			return Submission{}, err
		}
	}

	submission.Values = state.Values()
	return submission, nil
}

func (r *Renderer) skip(ctx context.Context, idx int, submission *Submission) error {
	submission.Skipped = append(submission.Skipped, idx)
	return r.driver.Info(ctx, fmt.Sprintf("Skipping unsupported element %d", idx))
}

func (r *Renderer) promptText(ctx context.Context, element formtemplate.Element, key string, state *State, secret bool) error {
	cfg := InputConfig{
		Message: displayLabel(element, key),
		Help:    placeholder(element),
	}

	var (
		response string
		err      error
	)
	if secret {
		response, err = r.driver.Password(ctx, cfg)
	} else {
		cfg.Default = defaultString(state, key, element)
		response, err = r.driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}
	state.SetValue(key, response)
	return nil
}

func (r *Renderer) promptSelect(ctx context.Context, element formtemplate.Element, key string, state *State) error {
	options := elementOptions(element)
	if len(options) == 0 {
		return ErrNoOptions
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(element, key),
		Options:      optionLabels(options),
		DefaultIndex: indexOfValue(options, defaultString(state, key, element)),
		Help:         placeholder(element),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("tui: select returned index %d out of range for %s", idx, key)
	}
	state.SetValue(key, options[idx].Value)
	return nil
}

func (r *Renderer) promptMultiSelect(ctx context.Context, element formtemplate.Element, key string, state *State) error {
	options := elementOptions(element)
	if len(options) == 0 {
		return ErrNoOptions
	}

	current, _ := state.Value(key)
	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  displayLabel(element, key),
		Options:  optionLabels(options),
		Defaults: indicesOfValues(options, stringifySlice(current)),
		Help:     placeholder(element),
	})
	if err != nil {
		return err
	}

	selected := make([]any, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(options) {
			return fmt.Errorf("tui: multiselect returned index %d out of range for %s", idx, key)
		}
		selected = append(selected, options[idx].Value)
	}
	state.SetValue(key, selected)
	return nil
}

func (r *Renderer) promptSubmit(ctx context.Context, element formtemplate.Element, submission *Submission) error {
	label := defaultSubmitLabel
	if element.Data != nil {
		if title := strings.TrimSpace(formtemplate.Deref(element.Data.Title)); title != "" {
			label = title
		} else if text := strings.TrimSpace(formtemplate.Deref(element.Data.Label)); text != "" {
			label = text
		}
	}

	confirmed, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: true})
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	submission.Submitted = true
	if element.Data != nil && element.Data.Action != nil {
		action := *element.Data.Action
		submission.Action = &action
	}
	return nil
}

func valueKey(element formtemplate.Element, idx int) string {
	if element.Data != nil {
		if name := strings.TrimSpace(formtemplate.Deref(element.Data.Name)); name != "" {
			return name
		}
	}
	return fmt.Sprintf("elements[%d]", idx)
}

func displayLabel(element formtemplate.Element, key string) string {
	if label := element.Data.DisplayLabel(); label != "" {
		return label
	}
	return key
}

func placeholder(element formtemplate.Element) string {
	if element.Data == nil {
		return ""
	}
	return formtemplate.Deref(element.Data.Placeholder)
}

func defaultString(state *State, key string, element formtemplate.Element) string {
	if value, ok := state.StringValue(key); ok {
		return value
	}
	if element.Data == nil {
		return ""
	}
	return formtemplate.Deref(element.Data.Value)
}

func elementOptions(element formtemplate.Element) []formtemplate.Option {
	if element.Data == nil {
		return nil
	}
	return element.Data.Options
}

func optionLabels(options []formtemplate.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Label
	}
	return out
}

func indexOfValue(options []formtemplate.Option, value string) int {
	if value == "" {
		return -1
	}
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

func indicesOfValues(options []formtemplate.Option, values []string) []int {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	var out []int
	for i, opt := range options {
		if _, ok := seen[opt.Value]; ok {
			out = append(out, i)
		}
	}
	return out
}

func stringifySlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}
