// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cdt

// swap replaces the diagonal e of the quadrilateral formed by e's face and
// its twin's face with the other diagonal. e must be unconstrained.
//
// With faces A = (oa, x, y) at corners (e, a1, a2) and B = (ob, y, x) at
// corners (t, b1, b2), the result is A = (oa, ob, y) and B = (ob, oa, x).
// The outer edges at a2 and b2 move to the other face, taking their twin
// links and constraint flags with them, and a2-b2 becomes the new diagonal.
func (m *Mesh) swap(e EdgeID) {
	t := m.twin(e)
	a1, a2 := e.Next(), e.Prev()
	b1, b2 := t.Next(), t.Prev()

	ae, be := m.he(e), m.he(t)
	ha2, hb2 := m.he(a2), m.he(b2)

	m.he(a1).far = be.far
	m.he(b1).far = ae.far

	u2, v2 := ha2.twin, hb2.twin

	ae.twin = v2
	if v2 != 0 {
		m.he(v2).twin = e
	}
	be.twin = u2
	if u2 != 0 {
		m.he(u2).twin = t
	}

	ae.constrained, hb2.constrained = hb2.constrained, false
	be.constrained, ha2.constrained = ha2.constrained, false

	ha2.twin = b2
	hb2.twin = a2

	m.mustValid(e.Face(), t.Face())
}

// flip swaps e if that restores the Delaunay condition across it, then keeps
// re-checking the outer edges of every swapped pair until none of them
// needs a swap. It reports whether e itself was swapped.
func (m *Mesh) flip(e EdgeID) bool {
	if !m.illegal(e) {
		return false
	}

	pending := append(m.flips[:0], e)
	for len(pending) > 0 {
		e := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if !m.illegal(e) {
			continue
		}
		t := m.twin(e)
		a1, b1 := e.Next(), t.Next()
		m.swap(e)
		// popped in the order e, a1, t, b1
		pending = append(pending, b1, t, a1, e)
	}
	m.flips = pending
	return true
}

// force swaps e without consulting the Delaunay condition and remembers both
// faces for legalize.
func (m *Mesh) force(e EdgeID) {
	t := m.twin(e)
	m.swap(e)
	m.dirty = append(m.dirty, e.Face(), t.Face())
}

// legalize re-checks every edge of the faces touched by force since the last
// call. Constrained edges are skipped, so the result is a constrained
// Delaunay triangulation again.
func (m *Mesh) legalize() {
	for len(m.dirty) > 0 {
		f := m.dirty[len(m.dirty)-1]
		m.dirty = m.dirty[:len(m.dirty)-1]
		for c := range 3 {
			m.flip(f.Edge(c))
		}
	}
}
