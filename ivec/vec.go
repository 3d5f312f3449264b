// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package ivec provides the integer vector arithmetic used by the cdt mesh:
// exact orientation and intersection predicates on 2D integer points.
package ivec

import (
	"math"

	"github.com/golang/geo/r2"
)

// Vec2 is a 2D integer vector. Mesh coordinates are 16-bit after
// quantization, user coordinates are 32-bit; products of differences are
// always widened before they are compared.
type Vec2 struct {
	X, Y int64
}

// V returns the vector (x, y).
func V(x, y int64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func (a Vec2) Mul(k int64) Vec2 {
	return Vec2{a.X * k, a.Y * k}
}

// Div divides both components by k, truncating toward zero.
func (a Vec2) Div(k int64) Vec2 {
	return Vec2{a.X / k, a.Y / k}
}

func (a Vec2) IsZero() bool {
	return a.X == 0 && a.Y == 0
}

// R2 converts the vector to a floating point r2.Point.
func (a Vec2) R2() r2.Point {
	return r2.Point{X: float64(a.X), Y: float64(a.Y)}
}

// FromR2 rounds p to the nearest integer vector.
func FromR2(p r2.Point) Vec2 {
	return Vec2{int64(math.Round(p.X)), int64(math.Round(p.Y))}
}

// Quantize maps a user coordinate onto the even mesh grid: every component
// is floor-divided by 2^q and rounded down to an even value. Odd grid
// positions are left free for computed intersection points.
func Quantize(p Vec2, q uint) Vec2 {
	return Vec2{p.X >> q &^ 1, p.Y >> q &^ 1}
}

// Cross returns a.X*b.Y - a.Y*b.X. Components must stay below 2^31 in
// magnitude; use CrossSign for wider inputs.
func Cross(a, b Vec2) int64 {
	return a.X*b.Y - a.Y*b.X
}

// Dot returns a.X*b.X + a.Y*b.Y under the same bound as Cross.
func Dot(a, b Vec2) int64 {
	return a.X*b.X + a.Y*b.Y
}

// CrossSign returns the sign of a.X*b.Y - a.Y*b.X computed exactly for any
// int64 components.
func CrossSign(a, b Vec2) int {
	return Mul(a.X, b.Y).Cmp(Mul(a.Y, b.X))
}

// Inside reports whether a x b < 0.
//
// Collinear vectors are resolved by simulation of simplicity: a tiny
// amount is added first to x and then to y, so Inside(a, b) and Inside(b, a)
// never agree unless a == b, in which case both are false. For a planar mesh
// without degenerate triangles, a point p is inside exactly one triangle
// (a, b, c) under Inside(a-p, b-p) && Inside(b-p, c-p) && Inside(c-p, a-p),
// even when p lies on an edge or a vertex.
func Inside(a, b Vec2) bool {
	if c := CrossSign(a, b); c != 0 {
		return c < 0
	}
	// adding 1 to a.X and b.X adds (b.Y - a.Y) to the cross product
	if a.Y != b.Y {
		return b.Y < a.Y
	}
	// adding 1 to a.Y and b.Y adds (a.X - b.X)
	return a.X < b.X
}

// Intersect returns the intersection of the line through p0, p1 with the
// line through q0, q1. It reports false when the lines are parallel, in
// which case the result is p0.
func Intersect(p0, p1, q0, q1 Vec2) (Vec2, bool) {
	p := p1.Sub(p0)
	q := q1.Sub(q0)
	d := Cross(p, q)
	if d == 0 {
		return p0, false
	}
	t := Cross(q0.Sub(p0), q)
	return p0.Add(Vec2{p.X * t / d, p.Y * t / d}), true
}

// IntersectEdge returns the point where the ray from the origin towards q
// crosses the segment a-b, all relative to a common origin. The triangle
// (0, a, b) must be non-degenerate with q leaving it through a-b; otherwise
// IntersectEdge reports false.
func IntersectEdge(q, a, b Vec2) (Vec2, bool) {
	u := b.Sub(a)
	d := Cross(u, q)
	if d <= 0 {
		return Vec2{}, false
	}
	t := Cross(q, a)
	if t < 0 || t > d {
		return Vec2{}, false
	}
	return Vec2{a.X + u.X*t/d, a.Y + u.Y*t/d}, true
}
