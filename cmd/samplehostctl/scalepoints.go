package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"samplehost/internal/infra/lv2"
)

type scalePointsArgs struct {
	file string
}

func newScalePointsCmd(opts *cliOptions) *cobra.Command {
	args := &scalePointsArgs{}
	cmd := &cobra.Command{
		Use:   "scalepoints <plugin-uri> <port-symbol>",
		Short: "List the scale points of a plugin control port",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, positional []string) error {
			plugins, err := loadPlugins(cmd, opts, args)
			if err != nil {
				return exitFor(err)
			}
			uri, symbol := positional[0], positional[1]
			for _, plugin := range plugins {
				if plugin.URI != uri {
					continue
				}
				points, err := plugin.ScalePoints(symbol)
				if err != nil {
					return exitFor(err)
				}
				return printScalePoints(plugin, symbol, points, opts.jsonOutput)
			}
			return exitError{code: exitCodeNotFound, message: fmt.Sprintf("plugin %q not found", uri)}
		},
	}
	cmd.Flags().StringVar(&args.file, "file", "", "read a single plugin description instead of the plugin path")
	return cmd
}

func loadPlugins(cmd *cobra.Command, opts *cliOptions, args *scalePointsArgs) ([]lv2.Plugin, error) {
	if args.file != "" {
		plugin, err := lv2.LoadFile(args.file)
		if err != nil {
			return nil, err
		}
		return []lv2.Plugin{plugin}, nil
	}
	cfg, err := loadConfig(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	return lv2.LoadDir(cfg.PluginPath)
}
