// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"fmt"

	"github.com/2dChan/cdt/ivec"
	"github.com/golang/geo/r2"
)

// Diagram is the planar Voronoi diagram dual to a Triangulation. Vertex i is
// the circumcenter of triangle i.
type Diagram struct {
	Sites    []ivec.Vec2
	Vertices []r2.Point

	// NOTE: Sorted CW per cell
	CellVertices []int
	// NOTE: Neighbor i lies across the cell edge leaving vertex i
	CellNeighbors []int
	CellOffsets   []int

	triangles [][3]int
}

// NewDiagram computes the Voronoi diagram of points. Cells of sites on the
// convex hull are unbounded; their vertex chain is open.
func NewDiagram(points []ivec.Vec2, setters ...TriangulationOption) (*Diagram, error) {
	dt, err := NewTriangulation(points, setters...)
	if err != nil {
		return nil, err
	}

	numTriangles := len(dt.Triangles)
	d := &Diagram{
		Sites:         dt.Vertices,
		Vertices:      make([]r2.Point, numTriangles),
		CellVertices:  dt.IncidentTriangleIndices,
		CellNeighbors: make([]int, len(dt.IncidentTriangleIndices)),
		CellOffsets:   dt.IncidentTriangleOffsets,
		triangles:     dt.Triangles,
	}

	for i := range numTriangles {
		d.Vertices[i] = circumcenter(dt.TriangleVertices(i))
	}

	for vIdx := range dt.Vertices {
		offset := dt.IncidentTriangleOffsets[vIdx]
		for i, tIdx := range dt.IncidentTriangles(vIdx) {
			d.CellNeighbors[offset+i] = NextVertex(dt.Triangles[tIdx], vIdx)
		}
	}

	return d, nil
}

func (d *Diagram) NumCells() int {
	return len(d.Sites)
}

func (d *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= len(d.Sites) {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, len(d.Sites))
	}
	return Cell{idx: i, d: d}, nil
}

// circumcenter returns the center of the circle through a, b and c,
// computed relative to a.
func circumcenter(a, b, c ivec.Vec2) r2.Point {
	o := a.R2()
	u := b.R2().Sub(o)
	v := c.R2().Sub(o)

	den := 2 * u.Cross(v)
	uu, vv := u.Dot(u), v.Dot(v)
	return r2.Point{
		X: o.X + (v.Y*uu-u.Y*vv)/den,
		Y: o.Y + (u.X*vv-v.X*uu)/den,
	}
}
