// Package modkit provides module wiring and core deps
package modkit

import (
	"textclf/internal/core/artifact"
	"textclf/internal/platform/config"
	"textclf/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log   *logger.Logger
	Cfg   config.Conf
	Model *artifact.Bundle
}

// Logger returns Log or the named process logger when Log is unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Named(component)
}

// HasModel reports whether a loaded bundle was injected
func (d Deps) HasModel() bool {
	return d.Model != nil && d.Model.Vectorizer != nil && d.Model.Classifier != nil
}
