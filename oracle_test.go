// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cdt

import (
	"fmt"
	"slices"
	"testing"

	"github.com/2dChan/cdt/delaunay"
	"github.com/2dChan/cdt/ivec"
	"github.com/2dChan/cdt/utils"
	"github.com/google/go-cmp/cmp"
)

// Without constraints the mesh is the Delaunay triangulation of the inserted
// points together with the frame corners.
func TestMesh_MatchesDelaunay(t *testing.T) {
	for _, n := range []int{10, 100, 500} {
		t.Run(fmt.Sprintf("N%d", n), func(t *testing.T) {
			m := mustNewMesh(t)
			points := []ivec.Vec2{
				ivec.V(frameLo, frameLo), ivec.V(frameHi, frameLo),
				ivec.V(frameLo, frameHi), ivec.V(frameHi, frameHi),
			}
			seen := make(map[ivec.Vec2]bool)
			var hint Address
			for _, p := range utils.GenerateRandomPoints(n, int64(n), testBounds) {
				p = ivec.Quantize(p, 0)
				if seen[p] {
					continue
				}
				seen[p] = true
				points = append(points, p)

				var ok bool
				if _, hint, ok = m.InsertVertex(p, hint); !ok {
					t.Fatalf("InsertVertex(%v, %d) ok = false, want true", p, hint)
				}
			}

			dt, err := delaunay.NewTriangulation(points)
			if err != nil {
				t.Fatalf("delaunay.NewTriangulation(...) error = %v, want nil", err)
			}

			var want [][3]ivec.Vec2
			for i := range dt.Triangles {
				a, b, c := dt.TriangleVertices(i)
				want = append(want, triangleKey(a, b, c))
			}
			var got [][3]ivec.Vec2
			for f := range m.Faces() {
				got = append(got, triangleKey(f.Points[0], f.Points[1], f.Points[2]))
			}
			slices.SortFunc(want, compareTriangles)
			slices.SortFunc(got, compareTriangles)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mesh faces mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Helpers

func triangleKey(a, b, c ivec.Vec2) [3]ivec.Vec2 {
	k := [3]ivec.Vec2{a, b, c}
	slices.SortFunc(k[:], compareVec)
	return k
}

func compareVec(a, b ivec.Vec2) int {
	switch {
	case lessVec(a, b):
		return -1
	case lessVec(b, a):
		return 1
	}
	return 0
}

func compareTriangles(a, b [3]ivec.Vec2) int {
	for i := range a {
		if c := compareVec(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}
