// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cdt

import (
	"errors"
	"fmt"

	"github.com/2dChan/cdt/ivec"
)

// InvariantError reports a face that breaks a structural invariant of the
// mesh. It always indicates a bug in the mesh, never bad input.
type InvariantError struct {
	Face FaceID
	Rule string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("cdt: face %d: %s", e.Face, e.Rule)
}

func (m *Mesh) checkFace(f FaceID) error {
	fd := &m.faces[f]
	bad := func(format string, args ...any) error {
		return &InvariantError{Face: f, Rule: fmt.Sprintf(format, args...)}
	}

	for i := range 3 {
		h := fd.edges[i]
		n := fd.edges[(i+1)%3]
		if h.far == n.far {
			return bad("corners %d and %d share vertex %d", i, (i+1)%3, h.far)
		}
		if int(h.far) >= m.size {
			return bad("corner %d references unallocated vertex %d", i, h.far)
		}
		if h.twin != 0 && h.twin == n.twin {
			return bad("corners %d and %d share twin %d", i, (i+1)%3, h.twin)
		}

		e := f.Edge(i)
		if h.twin == 0 {
			if !h.constrained {
				return bad("edge %d has no twin but is not constrained", e)
			}
			continue
		}
		if !m.liveFace(h.twin.Face()) || h.twin.Corner() == 3 {
			return bad("edge %d has dead twin %d", e, h.twin)
		}
		t := m.he(h.twin)
		if t.twin != e {
			return bad("twin of twin of edge %d is %d", e, t.twin)
		}
		if t.constrained != h.constrained {
			return bad("edge %d and twin %d disagree on constraint", e, h.twin)
		}
		if m.far(e.Next()) != m.far(h.twin.Prev()) || m.far(e.Prev()) != m.far(h.twin.Next()) {
			return bad("edge %d and twin %d have different endpoints", e, h.twin)
		}
	}

	a := m.verts[fd.edges[0].far]
	b := m.verts[fd.edges[1].far]
	c := m.verts[fd.edges[2].far]
	if ivec.Cross(b.Sub(a), c.Sub(a)) >= 0 ||
		ivec.Cross(c.Sub(b), a.Sub(b)) >= 0 ||
		ivec.Cross(a.Sub(c), b.Sub(c)) >= 0 {
		return bad("vertices %v %v %v are not wound consistently", a, b, c)
	}
	return nil
}

// mustValid panics if validation is enabled and any of faces is broken.
func (m *Mesh) mustValid(faces ...FaceID) {
	if !m.validate {
		return
	}
	for _, f := range faces {
		if err := m.checkFace(f); err != nil {
			panic(err)
		}
	}
}

// Validate checks every live face for structural invariants and every
// unconstrained edge for the local Delaunay condition.
func (m *Mesh) Validate() error {
	var errs []error
	for f := firstFace; m.liveFace(f); f++ {
		if err := m.checkFace(f); err != nil {
			errs = append(errs, err)
			continue
		}
		for c := range 3 {
			e := f.Edge(c)
			h := m.he(e)
			if h.constrained {
				continue
			}
			if m.incircle(f, m.far(h.twin)) {
				errs = append(errs, &InvariantError{
					Face: f,
					Rule: fmt.Sprintf("vertex %d across edge %d is inside the circumcircle", m.far(h.twin), e),
				})
			}
		}
	}
	return errors.Join(errs...)
}
