// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cdt

import "github.com/2dChan/cdt/ivec"

// incircle reports whether vertex v lies strictly inside the circumcircle
// of face f.
//
// Quantized differences reach 2^16, so the squared lengths and the cross
// terms each reach 2^33 and their products 2^66; the sum is accumulated in
// 128 bits.
func (m *Mesh) incircle(f FaceID, v VertexID) bool {
	fd := &m.faces[f]
	p := m.verts[v]
	a := m.verts[fd.edges[0].far].Sub(p)
	b := m.verts[fd.edges[1].far].Sub(p)
	c := m.verts[fd.edges[2].far].Sub(p)

	aa := ivec.Dot(a, a)
	bb := ivec.Dot(b, b)
	cc := ivec.Dot(c, c)
	bc := ivec.Cross(b, c)
	ca := ivec.Cross(c, a)
	ab := ivec.Cross(a, b)

	return ivec.Mul(aa, bc).Add(ivec.Mul(bb, ca)).Add(ivec.Mul(cc, ab)).Sign() < 0
}

// canFlip reports whether e is unconstrained and the quadrilateral formed by
// its two faces is strictly convex, so that swapping the diagonal yields two
// valid triangles.
func (m *Mesh) canFlip(e EdgeID) bool {
	h := m.he(e)
	if h.constrained {
		return false
	}
	o := m.pos(e)
	a := m.pos(e.Next()).Sub(o)
	t := h.twin
	b := m.pos(t).Sub(o)
	c := m.pos(t.Next()).Sub(o)
	return ivec.Cross(a, b) < 0 && ivec.Cross(b, c) < 0
}

// illegal reports whether e is unconstrained and the apex across it lies
// inside the circumcircle of e's face.
func (m *Mesh) illegal(e EdgeID) bool {
	h := m.he(e)
	if h.constrained {
		return false
	}
	return m.incircle(e.Face(), m.far(h.twin))
}
