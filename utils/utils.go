// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating integer point sets
// for triangulation tests, benchmarks and examples.

package utils

import (
	"math/rand"

	"github.com/2dChan/cdt/ivec"
	"github.com/golang/geo/r2"
)

// GenerateRandomPoints generates cnt random integer points uniformly
// distributed inside bounds, rounded to the nearest integer. Duplicates are
// possible. The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64, bounds r2.Rect) []ivec.Vec2 {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]ivec.Vec2, cnt)

	lo, hi := bounds.Lo(), bounds.Hi()
	for i := range cnt {
		points[i] = ivec.FromR2(r2.Point{
			X: lo.X + random.Float64()*(hi.X-lo.X),
			Y: lo.Y + random.Float64()*(hi.Y-lo.Y),
		})
	}

	return points
}

// GenerateRandomSegments pairs up cnt random points from points. The seed
// parameter ensures reproducibility.
func GenerateRandomSegments(points []ivec.Vec2, cnt int, seed int64) [][2]ivec.Vec2 {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	segments := make([][2]ivec.Vec2, cnt)

	for i := range cnt {
		segments[i] = [2]ivec.Vec2{
			points[random.Intn(len(points))],
			points[random.Intn(len(points))],
		}
	}

	return segments
}
