// @title         textclf API
// @version       0.1.0
// @description   Serves predictions from a pre-fitted vectorizer and classifier

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"textclf/internal/core/artifact"
	"textclf/internal/platform/config"
	"textclf/internal/platform/logger"
	phttp "textclf/internal/platform/net/http"

	"textclf/internal/services/api"
	predictmod "textclf/internal/services/predict/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Fatal().Err(err).Msg("textclf-api stopped")
	}
}

func run(ctx context.Context) error {
	srv, model, err := setup(ctx, config.New())
	if err != nil {
		return err
	}
	defer closeModel(model)

	return srv.Run(ctx)
}

// setup loads the artifacts and mounts the API on a new server
// a missing or malformed artifact fails here, before anything listens
func setup(ctx context.Context, root config.Conf) (*phttp.Server, *artifact.Bundle, error) {
	// service-scoped config for HTTP etc (CORE_API_*)
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	paths := predictmod.PathsFromConfig(root)
	model, err := artifact.Load(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	l.Info().
		Str("vectorizer", model.VectorizerInfo.Describe()).
		Str("classifier", model.ClassifierInfo.Describe()).
		Msg("artifacts loaded")

	// http server (reads CORE_API_PORT / CORE_API_SHUTDOWN_TIMEOUT)
	srv := phttp.NewServer(apiCfg)

	opt := api.FromConfig(root)
	opt.Model = model
	opt.Logger = l
	api.Mount(srv.Router(), opt)

	return srv, model, nil
}

func closeModel(b *artifact.Bundle) {
	if err := b.Close(); err != nil {
		logger.Get().Error().Err(err).Msg("failed to release model")
	}
}
