package modkit

import (
	"textclf/internal/modkit/module"
)

// Module is the common surface for API modules that mount routes and expose ports
// it aliases module.Module so modules can import either package
type Module = module.Module

// Builder constructs a Module from shared deps and options
// modules typically expose New(deps Deps, opts ...Option) Module and may delegate to this pattern
type Builder func(Deps, ...Option) Module
