// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"textclf/internal/core/version"
	modkit "textclf/internal/modkit"
	"textclf/internal/modkit/httpkit"
	str "textclf/internal/platform/strings"

	metahttp "textclf/internal/services/api/meta/http"
)

// Ports are what meta reads from other modules
type Ports struct {
	Model metahttp.Model
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
// WithPorts(Ports{Model: ...}) reports the loaded artifacts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	var model metahttp.Model
	if p, ok := b.Ports.(Ports); ok {
		model = p.Model
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Service,
			StartedAt:   m.startedAt,
			Model:       model,
		})
		external(r)
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }


// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
