// Package registry accumulates the nodes a caller creates while describing a
// model and records the structural links between them.
//
// The Registry is the explicit stand-in for "every value visible to the
// caller": model builds ask it for the non-data nodes when no seeds are
// given, and read parents and children through it during discovery. Each
// constructor validates its inputs before anything is stored, so the
// topology a build reads is always consistent.
//
// Populate translates a format-agnostic config.Definition into nodes,
// creating referenced declarations before the declarations that use them.
package registry
