// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"textclf/internal/core/artifact"
	"textclf/internal/platform/config"
	perr "textclf/internal/platform/errors"
	"textclf/internal/platform/logger"
	pnet "textclf/internal/platform/net"
	phttp "textclf/internal/platform/net/http"

	"textclf/internal/modkit"
	"textclf/internal/modkit/httpkit"
	"textclf/internal/modkit/module"
	"textclf/internal/modkit/swaggerkit"

	metahttp "textclf/internal/services/api/meta/http"
	metamod "textclf/internal/services/api/meta/module"
	predictmod "textclf/internal/services/predict/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Model          *artifact.Bundle
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	Stack          httpkit.StackOptions
}

// FromConfig reads CORE_API_* toggles and stack tuning from cfg
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_API_")
	return Options{
		Config:         cfg,
		EnableSwagger:  c.MayBool("SWAGGER", false),
		EnableProfiler: c.MayBool("PROFILER", false),
		Stack: httpkit.StackOptions{
			CORSOrigins:    c.MayCSV("CORS_ORIGINS", nil),
			RequestTimeout: c.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
			SlowRequest:    c.MayDuration("SLOW_REQUEST", time.Second),
		},
	}
}

// Mount mounts the API service onto the given router
// routes are served at the root and again under /api/v1
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log:   opt.Logger,
		Cfg:   opt.Config,
		Model: opt.Model,
	}

	// the predict module owns the bundle; meta reads it through the model port
	predict := predictmod.New(deps, predictmod.FromConfig(deps.Cfg))
	model, _ := module.PortsOf[metahttp.Model](predict)
	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{Model: model}))

	mods := []module.Module{predict, meta}

	// unknown routes and methods answer in the envelope; sub routers inherit these
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Use(httpkit.CommonStack(opt.Stack)...)

	for _, m := range mods {
		m.MountRoutes(r)
	}
	httpkit.MountAPIV1(r, nil, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	// Swagger + profiler
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	deps.Logger("api").Info().
		Bool("swagger", opt.EnableSwagger).
		Bool("profiler", opt.EnableProfiler).
		Int("modules", len(mods)).
		Msg("api mounted")
}

func notFound(w http.ResponseWriter, r *http.Request) {
	phttp.RespondError(w, r, perr.NotFoundf("no route for %s %s", r.Method, r.URL.Path))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_, env := pnet.Error(perr.InvalidInputf("method %s not allowed", r.Method), pnet.RequestID(r.Context()))
	env.StatusCode = http.StatusMethodNotAllowed
	env.Status = http.StatusText(http.StatusMethodNotAllowed)
	phttp.JSON(w, http.StatusMethodNotAllowed, env)
}
