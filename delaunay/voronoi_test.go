// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/2dChan/cdt/ivec"
	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

// Diagram

func TestNewDiagram_WithEps(t *testing.T) {
	points := uniquePoints(10, 0)
	tests := []struct {
		name    string
		eps     float64
		wantErr bool
	}{
		{"eps positive small", 0.01, false},
		{"eps zero", 0, true},
		{"eps negative", -0.01, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDiagram(points, WithEps(tt.eps))
			if (err != nil) != tt.wantErr {
				errValMsg := "nil"
				if tt.wantErr {
					errValMsg = "non-nil"
				}
				t.Errorf("NewDiagram(..., WithEps(%v)) error = %v, want %s", tt.eps, err, errValMsg)
			}
		})
	}
}

func TestNewDiagram_Invariants(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"minimal", 4},
		{"small", 10},
		{"medium", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := uniquePoints(tt.size, 0)
			dt := mustNewTriangulation(t, tt.size)
			vd := mustNewDiagram(t, points)

			if got, want := len(vd.Vertices), len(dt.Triangles); got != want {
				t.Errorf("vd.Vertices count = %v, want %v", got, want)
			}
			if got, want := vd.NumCells(), len(points); got != want {
				t.Errorf("vd.NumCells() = %v, want %v", got, want)
			}

			// every Voronoi vertex is equidistant from the sites of its triangle
			for i, v := range vd.Vertices {
				a, b, c := dt.TriangleVertices(i)
				ra := v.Sub(a.R2()).Norm()
				for _, p := range []ivec.Vec2{b, c} {
					if r := v.Sub(p.R2()).Norm(); math.Abs(r-ra) > 1e-6*ra {
						t.Errorf("vd.Vertices[%d] = %v, distance %v to %v, want %v", i, v, r, p, ra)
					}
				}
			}
		})
	}
}

func TestNewDiagram_DegenerateInput(t *testing.T) {
	points := []ivec.Vec2{ivec.V(0, 0), ivec.V(1, 1), ivec.V(2, 2), ivec.V(3, 3)}
	if _, err := NewDiagram(points); err == nil {
		t.Errorf("NewDiagram(collinear) error = nil, want non-nil")
	}
}

func TestNewDiagram_VerifyCW(t *testing.T) {
	vd := mustNewDiagram(t, uniquePoints(100, 0))

	for i := range vd.NumCells() {
		cell, err := vd.Cell(i)
		if err != nil {
			t.Fatalf("vd.Cell(%d) error = %v, want nil", i, err)
		}
		if !cell.Bounded() {
			continue
		}

		site := cell.Site().R2()
		for j := range cell.NumVertices() {
			k := (j + 1) % cell.NumVertices()
			c, err := cell.Vertex(j)
			if err != nil {
				t.Fatalf("cell.Vertex(%d) error = %v, want nil", j, err)
			}
			n, err := cell.Vertex(k)
			if err != nil {
				t.Fatalf("cell.Vertex(%d) error = %v, want nil", k, err)
			}
			if c.Sub(site).Cross(n.Sub(site)) > 0 {
				t.Errorf("vd.Cell(%d) vertices %d,%d not sorted CW", i, j, k)
			}
		}
	}
}

func TestDiagram_Cell(t *testing.T) {
	vd := mustNewDiagram(t, uniquePoints(10, 0))
	if _, err := vd.Cell(-1); err == nil {
		t.Errorf("vd.Cell(-1) error = nil, want non-nil")
	}
	if _, err := vd.Cell(vd.NumCells()); err == nil {
		t.Errorf("vd.Cell(%d) error = nil, want non-nil", vd.NumCells())
	}
}

// Cell

func TestCell_Accessors(t *testing.T) {
	vd := mustNewDiagram(t, uniquePoints(100, 0))
	for i := range vd.Sites {
		c, err := vd.Cell(i)
		if err != nil {
			t.Fatalf("vd.Cell(%d) error = %v, want nil", i, err)
		}
		if got := c.SiteIndex(); got != i {
			t.Errorf("c.SiteIndex() = %v, want %v", got, i)
		}
		if got := c.Site(); got != vd.Sites[i] {
			t.Errorf("c.Site() = %v, want %v", got, vd.Sites[i])
		}

		n := vd.CellOffsets[i+1] - vd.CellOffsets[i]
		if got := c.NumVertices(); got != n {
			t.Errorf("c.NumVertices() = %v, want %v", got, n)
		}
		if got := c.NumNeighbors(); got != n {
			t.Errorf("c.NumNeighbors() = %v, want %v", got, n)
		}

		want := vd.CellVertices[vd.CellOffsets[i]:vd.CellOffsets[i+1]]
		if diff := cmp.Diff(want, c.VertexIndices()); diff != "" {
			t.Errorf("c.VertexIndices() mismatch (-want +got):\n%s", diff)
		}
		want = vd.CellNeighbors[vd.CellOffsets[i]:vd.CellOffsets[i+1]]
		if diff := cmp.Diff(want, c.NeighborIndices()); diff != "" {
			t.Errorf("c.NeighborIndices() mismatch (-want +got, cell %d):\n%s", i, diff)
		}
	}
}

func TestCell_Vertex(t *testing.T) {
	vd := mustNewDiagram(t, uniquePoints(100, 0))
	for i := range vd.Sites {
		c, err := vd.Cell(i)
		if err != nil {
			t.Fatalf("vd.Cell(%d) error = %v, want nil", i, err)
		}
		for j, idx := range c.VertexIndices() {
			got, err := c.Vertex(j)
			if err != nil {
				t.Fatalf("c.Vertex(%d) error = %v, want nil", j, err)
			}
			if got != vd.Vertices[idx] {
				t.Errorf("c.Vertex(%d) = %v, want %v", j, got, vd.Vertices[idx])
			}
		}

		if _, err := c.Vertex(-1); err == nil {
			t.Errorf("c.Vertex(-1) error = nil, want non-nil")
		}
		if _, err := c.Vertex(c.NumVertices()); err == nil {
			t.Errorf("c.Vertex(%d) error = nil, want non-nil", c.NumVertices())
		}
	}
}

func TestCell_Neighbor(t *testing.T) {
	vd := mustNewDiagram(t, uniquePoints(100, 0))
	for i := range vd.Sites {
		c, err := vd.Cell(i)
		if err != nil {
			t.Fatalf("vd.Cell(%d) error = %v, want nil", i, err)
		}
		vertices := c.VertexIndices()
		for j, nIdx := range c.NeighborIndices() {
			got, err := c.Neighbor(j)
			if err != nil {
				t.Fatalf("c.Neighbor(%d) error = %v, want nil", j, err)
			}
			if got.SiteIndex() != nIdx {
				t.Errorf("c.Neighbor(%d).SiteIndex() = %v, want %v", j, got.SiteIndex(), nIdx)
			}
			// the shared edge leaves vertex j
			if !slices.Contains(got.VertexIndices(), vertices[j]) {
				t.Errorf("cell %d neighbor %d does not share vertex %d", i, nIdx, vertices[j])
			}
		}

		if _, err := c.Neighbor(-1); err == nil {
			t.Errorf("c.Neighbor(-1) error = nil, want non-nil")
		}
		if _, err := c.Neighbor(c.NumNeighbors()); err == nil {
			t.Errorf("c.Neighbor(%d) error = nil, want non-nil", c.NumNeighbors())
		}
	}
}

func TestCell_Bounded(t *testing.T) {
	points := []ivec.Vec2{
		ivec.V(0, 0), ivec.V(100, 0), ivec.V(100, 100), ivec.V(0, 100), ivec.V(50, 50),
	}
	vd := mustNewDiagram(t, points)
	for i := range points {
		c, err := vd.Cell(i)
		if err != nil {
			t.Fatalf("vd.Cell(%d) error = %v, want nil", i, err)
		}
		if got, want := c.Bounded(), i == 4; got != want {
			t.Errorf("vd.Cell(%d).Bounded() = %v, want %v", i, got, want)
		}
	}
}

func TestCircumcenter(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c ivec.Vec2
		want    r2.Point
	}{
		{"right isosceles", ivec.V(0, 0), ivec.V(2, 0), ivec.V(0, 2), r2.Point{X: 1, Y: 1}},
		{"reversed", ivec.V(0, 2), ivec.V(2, 0), ivec.V(0, 0), r2.Point{X: 1, Y: 1}},
		{"right 3-4-5", ivec.V(0, 0), ivec.V(4, 0), ivec.V(0, 3), r2.Point{X: 2, Y: 1.5}},
		{"offset", ivec.V(10, 10), ivec.V(14, 10), ivec.V(10, 13), r2.Point{X: 12, Y: 11.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := circumcenter(tt.a, tt.b, tt.c)
			if got.Sub(tt.want).Norm() > 1e-9 {
				t.Errorf("circumcenter(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
			}
		})
	}
}

// Benchmarks

func BenchmarkNewDiagram(b *testing.B) {
	sizes := []int{1e+2, 1e+3, 1e+4}
	for _, pointsCnt := range sizes {
		b.Run(fmt.Sprintf("N%d", pointsCnt), func(b *testing.B) {
			points := uniquePoints(pointsCnt, 0)

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				_, err := NewDiagram(points)
				if err != nil {
					b.Fatalf("NewDiagram(...) error = %v, want nil", err)
				}
			}
		})
	}
}

// Helpers

func mustNewDiagram(t *testing.T, points []ivec.Vec2) *Diagram {
	t.Helper()
	vd, err := NewDiagram(points)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}
	return vd
}
