// Package hcl provides the concrete HCL implementation of config.Loader.
// It is responsible for file discovery, parsing, and translating `data`,
// `variable`, `operation`, `distribution` and `model` blocks into the
// format-agnostic config.Definition.
package hcl
