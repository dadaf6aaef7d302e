package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formmsg/internal/config"
	"github.com/goliatone/go-formmsg/pkg/renderers/tui"
)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	viper      *viper.Viper
	configFile string
	cfg        config.Config
	logger     *zap.Logger

	// driver overrides the survey prompt driver; tests inject a stub.
	driver tui.PromptDriver
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		viper:  viper.New(),
		logger: zap.NewNop(),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "formmsg",
		Short: "Decode and fill interactive form chat messages",
		Long: `formmsg decodes form message payloads (JSON or YAML arrays of element
records), reports how each element is classified, and can fill a form
interactively in the terminal.

Use "-" as the file argument to read the payload from stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.viper, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logCfg := zap.NewProductionConfig()
			logCfg.OutputPaths = []string{"stderr"}
			if cfg.Verbose {
				logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := logCfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	flags.Bool(config.KeyVerbose, false, "enable debug logging")
	flags.String(config.KeyFormat, string(tui.OutputFormatJSON), "fill output format: json, form or pretty")
	flags.Bool(config.KeySanitize, false, "strip markup from labels before display")
	for _, key := range []string{config.KeyVerbose, config.KeyFormat, config.KeySanitize} {
		_ = a.viper.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(a.decodeCmd(), a.inspectCmd(), a.fillCmd())
	return root
}

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := a.rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
