package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formmsg/pkg/formtemplate"
)

// load reads a payload from a file or stdin ("-") and decodes it. Files are
// decoded by extension; other input starting with '[' is treated as JSON and
// anything else as YAML.
func (a *app) load(source string) (formtemplate.FormTemplate, error) {
	data, err := a.read(source)
	if err != nil {
		return formtemplate.FormTemplate{}, err
	}

	tmpl, err := decodePayload(source, data)
	if err != nil {
		a.logger.Warn("decode payload failed", zap.String("source", source), zap.Error(err))
		return formtemplate.FormTemplate{}, err
	}
	a.logger.Debug("decoded payload", zap.String("source", source), zap.Int("elements", len(tmpl.Elements)))
	return tmpl, nil
}

func (a *app) read(source string) ([]byte, error) {
	if source == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}

func decodePayload(source string, data []byte) (formtemplate.FormTemplate, error) {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		return formtemplate.DecodeYAML(data)
	case ".json":
		return formtemplate.DecodeJSON(data)
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return formtemplate.DecodeJSON(data)
	}
	return formtemplate.DecodeYAML(data)
}
