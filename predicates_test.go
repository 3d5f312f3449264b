// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cdt

import (
	"testing"

	"github.com/2dChan/cdt/ivec"
	"github.com/2dChan/cdt/utils"
)

func TestIncircle(t *testing.T) {
	m := mustNewMesh(t)
	// a face (v0, v1, v2) wound the way the mesh winds faces
	m.size = 8
	m.verts[4] = ivec.V(0, 0)
	m.verts[5] = ivec.V(0, 100)
	m.verts[6] = ivec.V(100, 0)
	f := FaceID(8)
	m.faces[f] = faceData{edges: [3]halfEdge{{far: 4}, {far: 5}, {far: 6}}}

	tests := []struct {
		name string
		p    ivec.Vec2
		want bool
	}{
		{"center", ivec.V(50, 50), true},
		{"opposite corner", ivec.V(100, 100), false},
		{"outside", ivec.V(120, 120), false},
		{"just inside", ivec.V(98, 98), true},
		{"far away", ivec.V(frameHi, frameLo), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.verts[7] = tt.p
			if got := m.incircle(f, 7); got != tt.want {
				t.Errorf("incircle(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestCanFlip(t *testing.T) {
	m := mustNewMesh(t)
	// the bootstrap diagonal splits a square
	if !m.canFlip(24) {
		t.Errorf("canFlip(24) = false, want true")
	}
	if m.canFlip(25) {
		t.Errorf("canFlip(25) on a frame edge = true, want false")
	}

	for _, p := range utils.GenerateRandomPoints(200, 3, testBounds) {
		m.InsertPoint(p, 0)
	}
	// the quadrilateral is strictly convex iff its diagonals cross
	crosses := func(o, p, a, b ivec.Vec2) bool {
		sa := ivec.Cross(p.Sub(o), a.Sub(o))
		sb := ivec.Cross(p.Sub(o), b.Sub(o))
		return sa < 0 && sb > 0 || sa > 0 && sb < 0
	}
	for e := range m.Edges() {
		if e.Constrained {
			continue
		}
		a, b, o := m.EdgeVertices(e.ID)
		_, _, p := m.EdgeVertices(e.Twin)
		if got, want := m.canFlip(e.ID), crosses(o, p, a, b); got != want {
			t.Errorf("canFlip(%d) = %v for %v %v %v %v, want %v", e.ID, got, a, b, o, p, want)
		}
	}
}
