// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cdt

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	// MaxQuantization keeps scaled frame coordinates within 32 bits.
	MaxQuantization = 16

	minCapacity = frameVertices + 1
)

type Options struct {
	// Quantization is the right shift applied to user coordinates before
	// they are snapped to the even mesh grid.
	Quantization uint
	// Capacity is the requested vertex capacity, frame included. Values
	// above MaxVertices are clamped.
	Capacity int
	Logger   *zap.Logger
	// Validate checks the invariants of every face touched by a mutation
	// and panics with an *InvariantError on violation.
	Validate bool
}

type Option func(*Options) error

func WithQuantization(q uint) Option {
	return func(o *Options) error {
		if q > MaxQuantization {
			return fmt.Errorf("cdt: quantization %d exceeds %d", q, MaxQuantization)
		}
		o.Quantization = q
		return nil
	}
}

func WithCapacity(n int) Option {
	return func(o *Options) error {
		if n < minCapacity {
			return fmt.Errorf("cdt: capacity %d below minimum %d", n, minCapacity)
		}
		o.Capacity = n
		return nil
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) error {
		if l == nil {
			return errors.New("cdt: nil logger")
		}
		o.Logger = l
		return nil
	}
}

func WithValidation(on bool) Option {
	return func(o *Options) error {
		o.Validate = on
		return nil
	}
}
