// Package module wires predict into the API using modkit
package module

import (
	"net/http"

	"textclf/internal/core/artifact"
	modkit "textclf/internal/modkit"
	"textclf/internal/modkit/httpkit"
	"textclf/internal/platform/config"
	str "textclf/internal/platform/strings"
	predicthttp "textclf/internal/services/predict/http"
	predictsvc "textclf/internal/services/predict/service"
)

// Options are the predict limits
type Options struct {
	MaxBodyBytes int64
	MaxTextChars int
}

// FromConfig reads CORE_PREDICT_* limits from cfg
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_PREDICT_")
	return Options{
		MaxBodyBytes: c.MayInt64("MAX_BODY_BYTES", predicthttp.DefaultMaxBodyBytes),
		MaxTextChars: c.MayInt("MAX_TEXT_CHARS", predictsvc.DefaultMaxTextChars),
	}
}

// PathsFromConfig reads CORE_MODEL_*_PATH, defaulting to the working directory names
func PathsFromConfig(cfg config.Conf) artifact.Paths {
	c := cfg.Prefix("CORE_MODEL_")
	return artifact.Paths{
		Vectorizer: c.MayString("VECTORIZER_PATH", artifact.DefaultVectorizerPath),
		Classifier: c.MayString("CLASSIFIER_PATH", artifact.DefaultClassifierPath),
	}
}

// Module implements the predict module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	register func(httpkit.Router)

	svc predictsvc.Service
}

// New constructs the predict module; deps.Model must be loaded
func New(deps modkit.Deps, opt Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("predict"), modkit.WithPrefix("/predict")}, opts...)...)

	svc := predictsvc.New(deps.Model, predictsvc.Options{MaxTextChars: opt.MaxTextChars})

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Predictor: adaptPredictPort{svc: svc}, Model: modelInfo{b: deps.Model}}

	external := b.Register
	m.register = func(r httpkit.Router) {
		predicthttp.Register(r, m.svc, opt.MaxBodyBytes)
		external(r)
	}

	deps.Logger("predict").Info().
		Str("vectorizer", deps.Model.VectorizerInfo.Kind).
		Str("classifier", deps.Model.ClassifierInfo.Kind).
		Int("dim", deps.Model.Vectorizer.Dim()).
		Int64("max_body_bytes", opt.MaxBodyBytes).
		Int("max_text_chars", opt.MaxTextChars).
		Msg("predict module ready")
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, m.register)
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

