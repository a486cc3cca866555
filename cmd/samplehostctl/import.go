package main

import (
	"github.com/spf13/cobra"

	"samplehost/internal/domain"
	"samplehost/internal/participants/sampleloader"
	"samplehost/internal/ui/selection"
	"samplehost/internal/ui/tui"
)

type importArgs struct {
	paths   []string
	metrics bool
}

func newImportCmd(opts *cliOptions) *cobra.Command {
	args := &importArgs{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Pick sample files and add them to the session",
		Long: "Opens the sample loader's file picker in the terminal and prints the resulting add-samples request.\n" +
			"With --path the picker is skipped and the given files are confirmed in order.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var view domain.SelectionView
			if len(args.paths) > 0 {
				view = selection.Confirming(args.paths...)
			} else {
				view = tui.NewSelectionView(domain.SelectionOptions{}, opts.logger)
			}

			ctx := cmd.Context()
			application, err := startHost(ctx, opts, view)
			if err != nil {
				return exitFor(err)
			}
			defer func() { _ = application.Close(ctx) }()

			if !isActive(application.Manager().Active(), sampleloader.Name) {
				if err := application.Manager().Activate(ctx, sampleloader.Name); err != nil {
					return exitFor(err)
				}
			}
			if err := application.Commands().Invoke(ctx, sampleloader.CommandID); err != nil {
				return exitFor(err)
			}
			if err := printSampleRequests(application.Session().Requests(), opts.jsonOutput); err != nil {
				return err
			}
			if args.metrics {
				return writeMetrics(cmd.ErrOrStderr(), application.Registry())
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&args.paths, "path", nil, "sample file to add (repeatable, skips the picker)")
	cmd.Flags().BoolVar(&args.metrics, "metrics", false, "write host metrics to stderr after the import")
	return cmd
}

func isActive(active []string, name string) bool {
	for _, candidate := range active {
		if candidate == name {
			return true
		}
	}
	return false
}
