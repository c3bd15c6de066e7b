// Package config defines the format-agnostic description of a model: the
// declared data, variable, operation and distribution nodes, plus the build
// options forwarded to the numeric engine.
//
// The `config.Definition` is the single source of truth for the registry
// populator. Concrete loaders (HCL, see internal/hcl) live in separate
// packages and implement the Loader interface.
package config
