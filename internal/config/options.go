package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/gretago/internal/ctxlog"
)

// ErrInvalidConfiguration is matched by every ConfigurationError.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigurationError reports an option the build cannot accept.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfiguration) true.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// Precision selects the floating point width of the numeric engine.
type Precision string

const (
	PrecisionSingle Precision = "single"
	PrecisionDouble Precision = "double"
)

// ParsePrecision validates a precision name.
func ParsePrecision(s string) (Precision, error) {
	switch p := Precision(s); p {
	case PrecisionSingle, PrecisionDouble:
		return p, nil
	default:
		return "", &ConfigurationError{Field: "precision", Value: fmt.Sprintf("%q", s), Reason: "must be 'single' or 'double'"}
	}
}

// Options are the opaque settings forwarded to the numeric engine.
type Options struct {
	Precision Precision
	// CoreCount is the parallelism hint for evaluation. Zero means every
	// available core.
	CoreCount int
	// Compile asks the engine to optimise the executable ahead of time.
	Compile bool
}

// DefaultOptions returns double precision on all cores without compilation.
func DefaultOptions() Options {
	return Options{Precision: PrecisionDouble}
}

// Resolve validates the options and fills in defaults against the given
// hardware maximum. A core count above the maximum is clamped with a logged
// warning instead of failing.
func (o Options) Resolve(ctx context.Context, maxCores int) (Options, error) {
	logger := ctxlog.FromContext(ctx)
	if maxCores < 1 {
		maxCores = 1
	}

	out := o
	if out.Precision == "" {
		out.Precision = PrecisionDouble
	}
	if _, err := ParsePrecision(string(out.Precision)); err != nil {
		return Options{}, err
	}

	switch {
	case out.CoreCount < 0:
		return Options{}, &ConfigurationError{Field: "core count", Value: out.CoreCount, Reason: "must be a positive integer"}
	case out.CoreCount == 0:
		out.CoreCount = maxCores
	case out.CoreCount > maxCores:
		logger.Warn("Requested core count exceeds available cores, using the maximum instead.",
			"requested", out.CoreCount, "available", maxCores)
		out.CoreCount = maxCores
	}

	logger.Debug("Build options resolved.", "precision", out.Precision, "cores", out.CoreCount, "compile", out.Compile)
	return out, nil
}
