// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultEps = 1e-9
)

// Options configures a Sweep.
type Options struct {
	// Eps scales the bounds diagonal to give the length below which edges
	// left after finalization are collapsed.
	Eps float64
	// Logger receives debug records for every step. Defaults to a no-op logger.
	Logger *zap.Logger
	// Validate runs a full structural check after every step.
	Validate bool
}

// Option sets a field of Options.
type Option func(*Options) error

// WithEps sets the zero-length tolerance factor. It must be positive.
func WithEps(eps float64) Option {
	return func(o *Options) error {
		if eps <= 0 {
			return errors.Errorf("WithEps: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// WithLogger sets the logger used by the sweep.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) error {
		if logger == nil {
			return errors.New("WithLogger: logger must not be nil")
		}
		o.Logger = logger
		return nil
	}
}

// WithValidation turns the per-step structural check on or off.
func WithValidation(enabled bool) Option {
	return func(o *Options) error {
		o.Validate = enabled
		return nil
	}
}

func defaultOptions() Options {
	return Options{
		Eps:    defaultEps,
		Logger: zap.NewNop(),
	}
}
