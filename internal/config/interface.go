package config

import (
	"context"
)

// Loader is the interface for a format-specific model loader.
type Loader interface {
	// Load reads model declarations from the given paths and translates them
	// into the format-agnostic Definition.
	Load(ctx context.Context, paths ...string) (*Definition, error)
}
