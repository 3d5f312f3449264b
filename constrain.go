// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cdt

import (
	"github.com/2dChan/cdt/ivec"
	"go.uber.org/zap"
)

// splitOffsets are tried in order around a rounded constraint intersection.
var splitOffsets = [...]ivec.Vec2{
	{X: 0, Y: 0},
	{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
	{X: 1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1},
}

// constrainEdge marks e and its twin as constrained, then tries to undo
// some of the flips that were needed to bring e into the mesh.
func (m *Mesh) constrainEdge(e EdgeID) {
	t := m.twin(e)
	m.he(e).constrained = true
	m.he(t).constrained = true

	m.flip(e.Prev())
	m.flip(t.Prev())
}

// cornerAt returns the corner of the face of e whose vertex is at q.
func (m *Mesh) cornerAt(q ivec.Vec2, e EdgeID) (EdgeID, bool) {
	n := EdgeID(e &^ 3)
	for c := range EdgeID(3) {
		if m.pos(n+c) == q {
			return n + c, true
		}
	}
	return 0, false
}

// insertEdge inserts the quantized segment p-q as a chain of constrained
// edges, inserting both endpoints first. Unconstrained edges crossing the
// segment are flipped out of the way; a crossed constraint is split and both
// halves of the segment are inserted recursively.
func (m *Mesh) insertEdge(p, q ivec.Vec2, hint Address) bool {
	_, pn, ok := m.insertPoint(p, hint)
	if !ok {
		return false
	}
	if p == q {
		return true
	}
	if _, _, ok := m.insertPoint(q, pn); !ok {
		return false
	}

	// flips made while inserting q may have moved p's faces
	e := m.walk(p, 1, pn)
	for {
		d := q.Sub(p)
		if d.IsZero() {
			return true
		}
		if e == 0 {
			return false
		}

		k, ok := m.cornerAt(p, e)
		if !ok {
			panic(&InvariantError{Face: e.Face(), Rule: "walk returned a face not incident to the segment start"})
		}
		// k is the edge opposite p; j1 and j2 are the edges at p's sides
		j1, j2 := k.Next(), k.Prev()
		a := m.pos(j1).Sub(p)
		b := m.pos(j2).Sub(p)

		ca, cb := ivec.Cross(a, d), ivec.Cross(b, d)
		switch {
		case ca >= 0 || cb < 0:
			// the segment leaves p outside this face's wedge
			e = m.twin(j2)
		case cb == 0:
			// the segment runs along p-b
			m.constrainEdge(j1)
			next := m.twin(j1)
			p = p.Add(b)
			e = m.walk(p, 1, next.Address())
		default:
			if c, blocked := m.clearCrossing(p, d, k); blocked {
				return m.splitConstraint(p, q, c, Address(e))
			}
		}
	}
}

// clearCrossing removes every edge crossing the segment from p along d,
// starting with k and ending at the first vertex on the segment. If one of
// them is constrained it returns that edge before anything is flipped.
//
// Crossing edges are kept in a queue: an edge whose quadrilateral is not
// convex goes to the back, and a swapped diagonal that still crosses the
// segment is queued again. Some edge in the queue is always flippable.
func (m *Mesh) clearCrossing(p, d ivec.Vec2, k EdgeID) (EdgeID, bool) {
	var queue []EdgeID
	for e := k; ; {
		h := m.he(e)
		if h.constrained {
			return e, true
		}
		queue = append(queue, e)
		co := ivec.Cross(m.pos(h.twin).Sub(p), d)
		if co == 0 {
			break
		}
		if co < 0 {
			e = h.twin.Prev()
		} else {
			e = h.twin.Next()
		}
	}

	stalled := 0
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if !m.canFlip(e) {
			if stalled > len(queue) {
				panic(&InvariantError{Face: e.Face(), Rule: "no edge crossing the segment can be flipped"})
			}
			stalled++
			queue = append(queue, e)
			continue
		}
		stalled = 0

		t := m.twin(e)
		a2, b2 := e.Prev(), t.Prev()
		m.force(e)
		// the outer edges at a2 and b2 moved to t and e
		for i, x := range queue {
			switch x {
			case a2:
				queue[i] = t
			case b2:
				queue[i] = e
			}
		}
		// a2 is the new diagonal
		u := ivec.Cross(m.pos(a2.Next()).Sub(p), d)
		w := ivec.Cross(m.pos(a2.Prev()).Sub(p), d)
		if u < 0 && w > 0 || u > 0 && w < 0 {
			queue = append(queue, a2)
		}
	}
	return 0, false
}

// splittable reports whether x lies strictly inside the quadrilateral formed
// by the two faces of e, so that splitting e at x keeps every face wound
// consistently.
func (m *Mesh) splittable(x ivec.Vec2, e EdgeID) bool {
	for _, s := range [2]EdgeID{e, m.twin(e)} {
		o := m.pos(s)
		a := m.pos(s.Next()).Sub(o)
		b := m.pos(s.Prev()).Sub(o)
		xo := x.Sub(o)
		if ivec.Cross(a, xo) >= 0 || ivec.Cross(xo, b) >= 0 {
			return false
		}
	}
	return true
}

// splitConstraint handles a segment from p to q that crosses the constrained
// edge c. It splits c with a new vertex next to the intersection, or reuses
// an endpoint of c when no grid point near the intersection can split it,
// then inserts the segment through that vertex.
func (m *Mesh) splitConstraint(p, q ivec.Vec2, c EdgeID, hint Address) bool {
	d := q.Sub(p)
	a := m.pos(c.Next()).Sub(p)
	b := m.pos(c.Prev()).Sub(p)
	r, ok := ivec.IntersectEdge(d, a, b)
	if !ok {
		panic(&InvariantError{Face: c.Face(), Rule: "crossed constraint does not intersect the segment"})
	}

	var x ivec.Vec2
	switch {
	case r == a || r == b:
		x = p.Add(r)
	default:
		found := false
		for _, off := range splitOffsets {
			y := r.Add(off)
			if y.IsZero() || y == d || !m.splittable(p.Add(y), c) {
				continue
			}
			x, found = p.Add(y), true
			break
		}
		if !found {
			ra, rb := r.Sub(a), r.Sub(b)
			if ivec.Dot(ra, ra) <= ivec.Dot(rb, rb) {
				x = p.Add(a)
			} else {
				x = p.Add(b)
			}
			m.log.Debug("cdt: constraint routed through existing vertex",
				zap.Int64("x", x.X), zap.Int64("y", x.Y))
			break
		}
		if m.size >= m.limit {
			m.log.Debug("cdt: capacity exhausted", zap.Int("capacity", m.limit),
				zap.Int64("x", x.X), zap.Int64("y", x.Y))
			return false
		}
		if _, ok := m.splitEdge(x, c); !ok {
			return false
		}
		// x lies next to c rather than on it, so the edges at x are not
		// Delaunay by construction
		m.markAround(x, Address(c))
		m.log.Debug("cdt: split constraint", zap.Int64("x", x.X), zap.Int64("y", x.Y))
	}
	return m.insertEdge(p, x, hint) && m.insertEdge(x, q, hint)
}

// markAround queues every face incident to the vertex at q for legalize.
func (m *Mesh) markAround(q ivec.Vec2, hint Address) {
	_, a, ok := m.insertPoint(q, hint)
	if !ok {
		panic(&InvariantError{Face: hint.Face(), Rule: "split vertex is missing"})
	}
	start := a.Face()
	k, ok := m.cornerAt(q, start.Edge(0))
	if !ok {
		panic(&InvariantError{Face: start, Rule: "face does not contain the split vertex"})
	}

	out := k.Next()
	for range m.NumFaces() {
		m.dirty = append(m.dirty, out.Face())
		in := m.twin(out)
		if in == 0 || in.Face() == start {
			return
		}
		// leave through the other edge at q
		if m.pos(in.Next()) == q {
			out = in.Prev()
		} else {
			out = in.Next()
		}
	}
	panic(&InvariantError{Face: start, Rule: "faces around the split vertex do not close"})
}

// InsertEdge inserts the segment p-q, given in user coordinates, as a
// constrained edge. Both endpoints are inserted if missing. Existing
// constraints crossed by the segment are split at the intersection, so the
// segment may end up as several constrained sub-edges. It reports false if
// any required vertex could not be added.
func (m *Mesh) InsertEdge(p, q ivec.Vec2, hint Address) bool {
	ok := m.insertEdge(ivec.Quantize(p, m.q), ivec.Quantize(q, m.q), hint)
	m.legalize()
	return ok
}
