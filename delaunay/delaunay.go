// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunay computes the unconstrained Delaunay triangulation of a
// planar point set as the lower convex hull of the points lifted onto the
// paraboloid z = x^2 + y^2. It is a floating point reference for the exact
// incremental mesh in package cdt. NewDiagram builds the dual Voronoi diagram.
package delaunay

import (
	"errors"
	"fmt"
	"math"

	"github.com/2dChan/cdt/ivec"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-12
)

type Triangulation struct {
	Vertices []ivec.Vec2
	// Triangles are wound counter-clockwise in a y-up frame.
	Triangles [][3]int
	// NOTE: Sorted CW per vertex, so consecutive triangles share an edge
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
}

func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

func (dt *Triangulation) TriangleVertices(tIdx int) (ivec.Vec2, ivec.Vec2, ivec.Vec2) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

type TriangulationOptions struct {
	Eps float64
}

type TriangulationOption func(*TriangulationOptions) error

func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 {
			return fmt.Errorf("delaunay: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// NewTriangulation triangulates points, which must be distinct and not all
// collinear. The result is unique when no four points are cocircular.
func NewTriangulation(points []ivec.Vec2, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := len(points)
	if numVertices < 3 {
		return nil,
			errors.New("delaunay: insufficient vertices for triangulation (minimum 3 required)")
	}

	lifted := lift(points)
	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, opts.Eps)

	var centroid r3.Vector
	for _, p := range lifted {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float64(numVertices))

	dt := &Triangulation{
		Vertices:                points,
		IncidentTriangleOffsets: make([]int, numVertices+1),
	}
	for i := 0; i+2 < len(ch.Indices); i += 3 {
		t := [3]int{ch.Indices[i], ch.Indices[i+1], ch.Indices[i+2]}
		a, b, c := lifted[t[0]], lifted[t[1]], lifted[t[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Dot(a.Sub(centroid)) < 0 {
			n = n.Mul(-1)
		}
		// keep the faces looking down, vertical ones come from collinear
		// points on the hull
		if n.Z >= -opts.Eps*n.Norm() {
			continue
		}
		sortTriangleVerticesCCW(&t, points)
		dt.Triangles = append(dt.Triangles, t)
	}

	if err := dt.buildIncidence(); err != nil {
		return nil, err
	}
	return dt, nil
}

// lift maps points into the unit square around their bounding box center
// and onto the paraboloid.
func lift(points []ivec.Vec2) []r3.Vector {
	bounds := r2.EmptyRect()
	for _, p := range points {
		bounds = bounds.AddPoint(p.R2())
	}
	center := bounds.Center()
	size := bounds.Size()
	scale := math.Max(size.X, size.Y) / 2
	if scale == 0 {
		scale = 1
	}

	lifted := make([]r3.Vector, len(points))
	for i, p := range points {
		q := p.R2().Sub(center).Mul(1 / scale)
		lifted[i] = r3.Vector{X: q.X, Y: q.Y, Z: q.Dot(q)}
	}
	return lifted
}

// buildIncidence fills the per-vertex incident triangle lists and checks
// that every vertex is used and the triangle count satisfies Euler's
// formula for a triangulated point set.
func (dt *Triangulation) buildIncidence() error {
	numVertices := len(dt.Vertices)
	numTriangles := len(dt.Triangles)
	if numTriangles == 0 {
		return errors.New("delaunay: degenerate input, all points are collinear")
	}

	dt.IncidentTriangleIndices = make([]int, numTriangles*3)
	for _, t := range dt.Triangles {
		for _, v := range t {
			dt.IncidentTriangleOffsets[v+1]++
		}
	}
	for i := range numVertices {
		if dt.IncidentTriangleOffsets[i+1] == 0 {
			return fmt.Errorf("delaunay: vertex %d is not part of the triangulation", i)
		}
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}

	nxt := make([]int, numVertices)
	copy(nxt, dt.IncidentTriangleOffsets[:numVertices])
	edges := make(map[[2]int]int, numTriangles*3)
	for i, t := range dt.Triangles {
		for j, v := range t {
			dt.IncidentTriangleIndices[nxt[v]] = i
			nxt[v]++

			u, w := v, t[(j+1)%3]
			if u > w {
				u, w = w, u
			}
			edges[[2]int{u, w}]++
		}
	}

	boundary := 0
	for _, n := range edges {
		if n == 1 {
			boundary++
		}
	}
	if want := 2*numVertices - 2 - boundary; numTriangles != want {
		return fmt.Errorf("delaunay: inconsistent triangulation: %d triangles, want %d",
			numTriangles, want)
	}

	for i := range numVertices {
		sortIncidentTriangleIndices(i, dt.IncidentTriangles(i), dt.Triangles)
	}
	return nil
}

func sortTriangleVerticesCCW(t *[3]int, v []ivec.Vec2) {
	p0, p1, p2 := v[t[0]], v[t[1]], v[t[2]]
	if ivec.Cross(p1.Sub(p0), p2.Sub(p0)) < 0 {
		t[1], t[2] = t[2], t[1]
	}
}

// sortIncidentTriangleIndices orders the fan around vIdx so that the next
// vertex of each triangle is the previous vertex of the one after it. On the
// hull the fan is open and starts at the triangle without a predecessor.
func sortIncidentTriangleIndices(vIdx int, incidentTris []int, tris [][3]int) {
	n := len(incidentTris)
	for i := range n {
		prv := PrevVertex(tris[incidentTris[i]], vIdx)
		hasPred := false
		for j := range n {
			if j != i && NextVertex(tris[incidentTris[j]], vIdx) == prv {
				hasPred = true
				break
			}
		}
		if !hasPred {
			incidentTris[0], incidentTris[i] = incidentTris[i], incidentTris[0]
			break
		}
	}

	for i := 1; i < n; i++ {
		nxt := NextVertex(tris[incidentTris[i-1]], vIdx)
		for j := i; j < n; j++ {
			prv := PrevVertex(tris[incidentTris[j]], vIdx)
			if nxt == prv {
				incidentTris[i], incidentTris[j] = incidentTris[j], incidentTris[i]
				break
			}
		}
	}
}

func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}
