// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cdt

import "github.com/2dChan/cdt/ivec"

// walk finds the face that claims p, starting from the face of hint.
// Vertices are multiplied by scale before being compared with p, so the same
// walk serves quantized and user coordinates. The result is an edge of the
// claiming face or 0 when p lies outside the frame.
//
// Each step keeps the invariant that p is inside edge e of the current face,
// with p1 and p2 the endpoints of e relative to p.
func (m *Mesh) walk(p ivec.Vec2, scale int64, hint Address) EdgeID {
	e := EdgeID(hint &^ 3)
	if e < EdgeID(firstFace)<<2 || int(e) >= 8*m.size {
		e = EdgeID(8*m.size - 4)
	}

	rel := func(e EdgeID) ivec.Vec2 {
		return m.pos(e).Mul(scale).Sub(p)
	}

	p1 := rel(e.Next())
	p2 := rel(e.Prev())

	// make sure we are inside e
	if !ivec.Inside(p1, p2) {
		e = m.twin(e)
		p1, p2 = p2, p1
	}

	for e != 0 {
		p0 := rel(e)

		in1 := ivec.Inside(p2, p0)
		in2 := ivec.Inside(p0, p1)

		switch {
		case in1 && in2:
			return e
		case in1:
			// exit through the edge at e.Prev()
			e, p2 = m.twin(e.Prev()), p0
		case in2:
			// exit through the edge at e.Next()
			e, p1 = m.twin(e.Next()), p0
		default:
			// p is outside both: exit through e.Next(), then spin around p1
			// until p is inside the edge after it as well
			e, p1 = m.twin(e.Next()), p0
			for {
				if e == 0 {
					return 0
				}
				p0 = rel(e)
				if ivec.Inside(p0, p1) {
					break
				}
				e, p2 = m.twin(e.Prev()), p0
			}
			if ivec.Inside(p2, p0) {
				return e
			}
			e, p1 = m.twin(e.Next()), p0
		}
	}
	return 0
}

// Locate returns the face address of the triangle containing p, given in
// user coordinates, or NilAddress when p lies outside the frame. Points on
// an edge or a vertex are assigned to exactly one of the touching faces.
// hint may be any address from an earlier call; nearby hints make the walk
// shorter.
func (m *Mesh) Locate(p ivec.Vec2, hint Address) Address {
	e := m.walk(p, m.scale, hint)
	if e == 0 {
		return NilAddress
	}
	return e.Face().Address()
}
