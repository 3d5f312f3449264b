// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"fmt"

	"github.com/2dChan/cdt/ivec"
	"github.com/golang/geo/r2"
)

// Cell is a view of one Voronoi cell in a Diagram. Its index is the index of
// its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

func (c Cell) SiteIndex() int {
	return c.idx
}

func (c Cell) Site() ivec.Vec2 {
	return c.d.Sites[c.idx]
}

// NumVertices returns the number of vertices in the cell.
// This equals the number of neighbors.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// VertexIndices returns the indices of the cell's vertices in the Diagram's
// Vertices, in clockwise order.
func (c Cell) VertexIndices() []int {
	return c.d.CellVertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[c.d.CellVertices[start+i]], nil
}

func (c Cell) NumNeighbors() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

func (c Cell) Neighbor(i int) (Cell, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, fmt.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Cell(c.d.CellNeighbors[start+i])
}

// Bounded reports whether the cell is a closed polygon, which holds for
// every site not on the convex hull.
func (c Cell) Bounded() bool {
	nb := c.NeighborIndices()
	tris := c.VertexIndices()
	// a closed fan ends at the vertex it started from
	return PrevVertex(c.d.triangles[tris[0]], c.idx) == nb[len(nb)-1]
}
