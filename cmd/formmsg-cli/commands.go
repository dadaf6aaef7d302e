package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formmsg/pkg/formtemplate"
	"github.com/goliatone/go-formmsg/pkg/renderers/tui"
)

const unsupportedMessage = "unsupported form message"

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Decode a payload and print the typed template as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := a.load(args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(tmpl, "", "  ")
			if err != nil {
				return fmt.Errorf("encode template: %w", err)
			}
			_, err = fmt.Fprintln(a.stdout, string(out))
			return err
		},
	}
}

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file|-]",
		Short: "List each element with its resolved kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := a.load(args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tKIND\tNAME\tLABEL")
			for idx, element := range tmpl.Elements {
				var name string
				if element.Data != nil {
					name = formtemplate.Deref(element.Data.Name)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					idx,
					formtemplate.Classify(element).Name(),
					orDash(name),
					orDash(element.Data.DisplayLabel()),
				)
			}
			return w.Flush()
		},
	}
}

func (a *app) fillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill [file|-]",
		Short: "Fill a form message interactively and print the submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := a.load(args[0])
			if err != nil {
				if errors.Is(err, formtemplate.ErrMalformedStructure) {
					fmt.Fprintln(a.stderr, unsupportedMessage)
				}
				return err
			}

			opts := []tui.Option{
				tui.WithOutputFormat(a.cfg.Format),
				tui.WithSanitize(a.cfg.Sanitize),
				tui.WithLogger(a.logger.Named("tui")),
			}
			if a.driver != nil {
				opts = append(opts, tui.WithPromptDriver(a.driver))
			}
			renderer, err := tui.New(opts...)
			if err != nil {
				return err
			}

			out, err := renderer.Render(cmd.Context(), tmpl)
			if err != nil {
				return err
			}
			a.logger.Debug("form filled", zap.String("contentType", renderer.ContentType()))
			_, err = fmt.Fprintln(a.stdout, string(out))
			return err
		},
	}
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
