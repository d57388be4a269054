package modkit

import "spamguard/internal/modkit/module"

// Module is the module contract, re-exported so wiring code needs one import
type Module = module.Module

// Builder is the New(deps, opts...) shape every module package exports
type Builder func(Deps, ...Option) Module
