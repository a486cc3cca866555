package main

import (
	"github.com/spf13/cobra"

	"samplehost/internal/infra/statestore"
)

func newStateCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect persisted participant state",
	}
	cmd.AddCommand(
		newStateListCmd(opts),
		newStateForgetCmd(opts),
	)
	return cmd
}

func newStateListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored participant records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd, opts)
			if err != nil {
				return exitFor(err)
			}
			defer func() { _ = store.Close() }()
			records, err := store.Records()
			if err != nil {
				return exitFor(err)
			}
			return printStateRecords(records, opts.jsonOutput)
		},
	}
}

func newStateForgetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <name>",
		Short: "Drop the stored state and active flag of a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, opts)
			if err != nil {
				return exitFor(err)
			}
			defer func() { _ = store.Close() }()
			return exitFor(store.Forget(args[0]))
		},
	}
}

func openStore(cmd *cobra.Command, opts *cliOptions) (*statestore.Store, error) {
	cfg, err := loadConfig(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	return statestore.Open(cfg.StatePath)
}
