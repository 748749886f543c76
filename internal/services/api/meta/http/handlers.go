// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"textclf/internal/core/artifact"
	"textclf/internal/core/classifier"
	"textclf/internal/core/version"
	"textclf/internal/modkit/httpkit"
	perr "textclf/internal/platform/errors"
	str "textclf/internal/platform/strings"
)

// Model is satisfied by the predict module's model port
type Model interface {
	VectorizerInfo() artifact.Info
	ClassifierInfo() artifact.Info
	Classes() []classifier.Label
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Model is nil until artifacts are loaded
	Model Model
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
// an empty ServiceName reports the build's service name
func Register(r httpkit.Router, d Deps) {
	d.ServiceName = str.Or(d.ServiceName, version.Service)
	h := &handlers{deps: d}

	// mount routes
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/model", h.model)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"textclf-api"`
	Started string `json:"started"  example:"2026-10-14T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-14T13:05:00Z"`
}

// ReadyCheck describes a single artifact check
type ReadyCheck struct {
	Name   string `json:"name"   example:"classifier"`
	Status string `json:"status" example:"ok"` // ok fail
	Kind   string `json:"kind,omitempty" example:"random_forest"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-14T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"textclf-api"`
	Started string `json:"started" example:"2026-10-14T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ModelResponse reports the loaded artifacts
type ModelResponse struct {
	Vectorizer artifact.Info      `json:"vectorizer"`
	Classifier artifact.Info      `json:"classifier"`
	Classes    []classifier.Label `json:"classes" swaggertype:"array,string"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with artifact checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Failure 503 {object} ReadyResponse "fail"
// @Router /meta/ready [get]
func (h *handlers) ready(_ *http.Request) (any, error) {
	check := func(name string, kind func() string) ReadyCheck {
		if h.deps.Model == nil {
			return ReadyCheck{Name: name, Status: "fail"}
		}
		return ReadyCheck{Name: name, Status: "ok", Kind: kind()}
	}

	checks := []ReadyCheck{
		check("vectorizer", func() string { return h.deps.Model.VectorizerInfo().Kind }),
		check("classifier", func() string { return h.deps.Model.ClassifierInfo().Kind }),
	}
	out := ReadyResponse{Status: "ok", Checks: checks, Now: time.Now().UTC().Format(time.RFC3339)}
	if h.deps.Model == nil {
		out.Status = "fail"
		return httpkit.Status(http.StatusServiceUnavailable, out), nil
	}
	return out, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/model Meta metaModel
// @Summary Loaded artifact metadata
// @Tags Meta
// @Produce json
// @Success 200 {object} ModelResponse "ok"
// @Failure 503 {object} httpkit.Envelope "not loaded"
// @Router /meta/model [get]
func (h *handlers) model(_ *http.Request) (any, error) {
	if h.deps.Model == nil {
		return nil, perr.Unavailablef("model not loaded")
	}
	return ModelResponse{
		Vectorizer: h.deps.Model.VectorizerInfo(),
		Classifier: h.deps.Model.ClassifierInfo(),
		Classes:    h.deps.Model.Classes(),
	}, nil
}
