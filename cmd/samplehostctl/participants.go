package main

import (
	"github.com/spf13/cobra"

	"samplehost/internal/ui/selection"
)

func newParticipantsCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participants",
		Short: "Inspect and toggle host participants",
	}
	cmd.AddCommand(
		newParticipantsListCmd(opts),
		newParticipantsActivateCmd(opts),
		newParticipantsDeactivateCmd(opts),
	)
	return cmd
}

func newParticipantsListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered participants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			application, err := startHost(ctx, opts, selection.NewScriptedView())
			if err != nil {
				return exitFor(err)
			}
			defer func() { _ = application.Close(ctx) }()
			return printParticipants(application.Manager().Participants(), opts.jsonOutput)
		},
	}
}

// Activation persists, so the participant is restored on the next start.
func newParticipantsActivateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <name>",
		Short: "Activate a participant and keep it active across restarts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, err := startHost(ctx, opts, selection.NewScriptedView())
			if err != nil {
				return exitFor(err)
			}
			defer func() { _ = application.Close(ctx) }()
			if err := application.Manager().Activate(ctx, args[0]); err != nil {
				return exitFor(err)
			}
			return printParticipants(application.Manager().Participants(), opts.jsonOutput)
		},
	}
}

func newParticipantsDeactivateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <name>",
		Short: "Deactivate a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, err := startHost(ctx, opts, selection.NewScriptedView())
			if err != nil {
				return exitFor(err)
			}
			defer func() { _ = application.Close(ctx) }()
			if err := application.Manager().Deactivate(ctx, args[0]); err != nil {
				return exitFor(err)
			}
			return printParticipants(application.Manager().Participants(), opts.jsonOutput)
		},
	}
}
