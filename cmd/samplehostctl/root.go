package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"samplehost/internal/app"
	"samplehost/internal/infra/config"
	"samplehost/internal/infra/telemetry"
)

type cliOptions struct {
	configPath string
	logLevel   string
	jsonOutput bool
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := cliOptions{
		configPath: config.DefaultPath(),
		logLevel:   "warn",
		logger:     zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "samplehostctl",
		Short:         "Drive the sample host from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			applyRootFlagBindings(cmd, &opts)
			logger, err := app.NewZapLogger(opts.logLevel, false)
			if err != nil {
				return exitError{code: exitCodeFailure, message: err.Error()}
			}
			opts.logger = logger.With(zap.String(telemetry.FieldLogSource, telemetry.LogSourceCLI))
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "path to config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output JSON")

	root.AddCommand(
		newScalePointsCmd(&opts),
		newImportCmd(&opts),
		newParticipantsCmd(&opts),
		newStateCmd(&opts),
	)

	return root
}

func applyRootFlagBindings(cmd *cobra.Command, opts *cliOptions) {
	flags := cmd.Flags()
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "config":
			opts.configPath, _ = flags.GetString("config")
		case "log-level":
			opts.logLevel, _ = flags.GetString("log-level")
		case "json":
			opts.jsonOutput, _ = flags.GetBool("json")
		}
	})
}
