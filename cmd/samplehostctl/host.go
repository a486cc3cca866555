package main

import (
	"context"

	"samplehost/internal/app"
	"samplehost/internal/domain"
	"samplehost/internal/infra/config"
)

// startHost builds and starts the host with view as the sample loader's
// selection surface. The caller must Close the returned application.
func startHost(ctx context.Context, opts *cliOptions, view domain.SelectionView) (*app.Application, error) {
	application, err := app.InitializeApplication(ctx, app.Options{
		ConfigPath: opts.configPath,
		View:       view,
	}, app.LoggingConfig{Logger: opts.logger})
	if err != nil {
		return nil, err
	}
	if err := application.Start(ctx); err != nil {
		_ = application.Close(ctx)
		return nil, err
	}
	return application, nil
}

func loadConfig(ctx context.Context, opts *cliOptions) (domain.HostConfig, error) {
	return config.NewLoader(opts.logger).Load(ctx, opts.configPath)
}
