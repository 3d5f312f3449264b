// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cdt

import (
	"github.com/2dChan/cdt/ivec"
	"go.uber.org/zap"
)

// classify reports where the quantized point q lies within the face of e,
// which must claim q. The result is the face address when q is strictly
// inside, the address of the edge q lies on, or, when q coincides with a
// corner, the face's first edge together with that corner's vertex.
func (m *Mesh) classify(q ivec.Vec2, e EdgeID) (Address, VertexID, bool) {
	n := EdgeID(e &^ 3)
	a := m.pos(n).Sub(q)
	b := m.pos(n + 1).Sub(q)
	c := m.pos(n + 2).Sub(q)

	var bits int
	if ivec.Cross(b, c) < 0 {
		bits |= 1
	}
	if ivec.Cross(c, a) < 0 {
		bits |= 2
	}
	if ivec.Cross(a, b) < 0 {
		bits |= 4
	}

	switch bits {
	case 4 + 2 + 1:
		return n.Face().Address(), 0, false
	case 2 + 1:
		return Address(n + 2), 0, false
	case 4 + 1:
		return Address(n + 1), 0, false
	case 4 + 2:
		return Address(n), 0, false
	}

	switch {
	case a.IsZero():
		return Address(n), m.far(n), true
	case b.IsZero():
		return Address(n), m.far(n + 1), true
	case c.IsZero():
		return Address(n), m.far(n + 2), true
	}
	panic(&InvariantError{Face: n.Face(), Rule: "point claimed by a face it is not inside"})
}

// insertAt adds the quantized point q at the node located by e. It returns
// the vertex at q, an address of a face incident to it, and false when the
// arena is full or q lies on the frame. Nothing is mutated on failure.
func (m *Mesh) insertAt(q ivec.Vec2, e EdgeID) (VertexID, Address, bool) {
	if e == 0 {
		m.log.Debug("cdt: point outside the frame", zap.Int64("x", q.X), zap.Int64("y", q.Y))
		return 0, NilAddress, false
	}

	node, v, exists := m.classify(q, e)
	if exists {
		return v, node, true
	}

	if m.size >= m.limit {
		m.log.Debug("cdt: capacity exhausted", zap.Int("capacity", m.limit),
			zap.Int64("x", q.X), zap.Int64("y", q.Y))
		return 0, NilAddress, false
	}

	if node.IsFace() {
		v = m.splitFace(q, node.Face())
	} else {
		var ok bool
		if v, ok = m.splitEdge(q, node.Edge()); !ok {
			m.log.Debug("cdt: point on the frame", zap.Int64("x", q.X), zap.Int64("y", q.Y))
			return 0, NilAddress, false
		}
	}
	return v, node, true
}

// allocVertex appends a vertex at q and returns it with its two faces.
func (m *Mesh) allocVertex(q ivec.Vec2) (VertexID, FaceID, FaceID) {
	v := VertexID(m.size)
	m.size++
	m.verts[v] = q
	return v, FaceID(facesPerVert * int(v)), FaceID(facesPerVert*int(v) + 1)
}

// splitFace inserts q strictly inside f. Face f = (p0, p1, p2) becomes
// (v, p1, p2) and the new faces are (p0, v, p2) and (p0, p1, v); the outer
// edges keep their twins and constraint flags.
func (m *Mesh) splitFace(q ivec.Vec2, f FaceID) VertexID {
	v, fa, fb := m.allocVertex(q)
	u := &m.faces[f]
	old := *u

	m.faces[fa] = faceData{
		edges: [3]halfEdge{
			{far: old.edges[0].far, twin: f.Edge(1)},
			{far: v, twin: old.edges[1].twin, constrained: old.edges[1].constrained},
			{far: old.edges[2].far, twin: fb.Edge(1)},
		},
		info: old.info,
	}
	if t := old.edges[1].twin; t != 0 {
		m.he(t).twin = fa.Edge(1)
	}

	m.faces[fb] = faceData{
		edges: [3]halfEdge{
			{far: old.edges[0].far, twin: f.Edge(2)},
			{far: old.edges[1].far, twin: fa.Edge(2)},
			{far: v, twin: old.edges[2].twin, constrained: old.edges[2].constrained},
		},
		info: old.info,
	}
	if t := old.edges[2].twin; t != 0 {
		m.he(t).twin = fb.Edge(2)
	}

	u.edges[0].far = v
	u.edges[1] = halfEdge{far: old.edges[1].far, twin: fa.Edge(0)}
	u.edges[2] = halfEdge{far: old.edges[2].far, twin: fb.Edge(0)}

	m.mustValid(f, fa, fb)

	m.flip(f.Edge(0))
	m.flip(fa.Edge(1))
	m.flip(fb.Edge(2))
	return v
}

// splitEdge inserts q on edge e, splitting both faces that share it. Both
// halves of the split edge inherit its constraint flag. It fails before any
// mutation when e lies on the frame.
func (m *Mesh) splitEdge(q ivec.Vec2, e EdgeID) (VertexID, bool) {
	ue, ve := e, m.twin(e)
	if ve == 0 {
		return 0, false
	}
	if ve < ue {
		ue, ve = ve, ue
	}

	v, fx, fy := m.allocVertex(q)
	xn, yn := fx.Edge(0), fy.Edge(0)

	u1, u2 := ue.Next(), ue.Prev()
	v1, v2 := ve.Next(), ve.Prev()

	// face u = (o, a, b) becomes (o, a, v), face x = (o, v, b)
	hu, hu1 := m.he(ue), m.he(u1)
	m.faces[fx] = faceData{
		edges: [3]halfEdge{
			{far: hu.far, twin: yn, constrained: hu.constrained},
			{far: v, twin: hu1.twin, constrained: hu1.constrained},
			{far: m.far(u2), twin: u1},
		},
		info: m.faces[ue.Face()].info,
	}
	if hu1.twin != 0 {
		m.he(hu1.twin).twin = xn + 1
	}
	hu1.twin = xn + 2
	hu1.constrained = false
	m.he(u2).far = v

	// face w = (o', b, a) becomes (o', v, a), face y = (o', b, v)
	hv, hv2 := m.he(ve), m.he(v2)
	m.faces[fy] = faceData{
		edges: [3]halfEdge{
			{far: hv.far, twin: xn, constrained: hv.constrained},
			{far: m.far(v1), twin: v2},
			{far: v, twin: hv2.twin, constrained: hv2.constrained},
		},
		info: m.faces[ve.Face()].info,
	}
	if hv2.twin != 0 {
		m.he(hv2.twin).twin = yn + 2
	}
	hv2.twin = yn + 1
	hv2.constrained = false
	m.he(v1).far = v

	m.mustValid(ue.Face(), ve.Face(), fx, fy)

	m.flip(u2)
	m.flip(xn + 1)
	m.flip(v1)
	m.flip(yn + 2)
	return v, true
}

// insertPoint locates and inserts the quantized point q.
func (m *Mesh) insertPoint(q ivec.Vec2, hint Address) (VertexID, Address, bool) {
	return m.insertAt(q, m.walk(q, 1, hint))
}

// InsertVertex inserts p, given in user coordinates, and returns the vertex
// at its quantized position together with the address of a face incident to
// it. If a vertex already exists there it is returned and the mesh is left
// untouched. It reports false when the mesh is full or p is outside the
// frame; the mesh is then unchanged.
func (m *Mesh) InsertVertex(p ivec.Vec2, hint Address) (VertexID, Address, bool) {
	return m.insertPoint(ivec.Quantize(p, m.q), hint)
}

// InsertPoint inserts p, given in user coordinates. It reports false only
// when the point could not be added, in which case the mesh is unchanged.
func (m *Mesh) InsertPoint(p ivec.Vec2, hint Address) bool {
	_, _, ok := m.InsertVertex(p, hint)
	return ok
}
