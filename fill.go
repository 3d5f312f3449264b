// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cdt

// Fill sets the region tag of the face at a to info and spreads it to every
// face reachable without crossing a constrained edge. Faces that already
// carry info stop the spread. Only tags change; the topology is untouched.
func (m *Mesh) Fill(a Address, info uint16) {
	f := a.Face()
	if !m.liveFace(f) || m.faces[f].info == info {
		return
	}
	m.faces[f].info = info

	stack := append(m.fills[:0], f)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, h := range m.faces[f].edges {
			if h.constrained {
				continue
			}
			g := h.twin.Face()
			if m.faces[g].info != info {
				m.faces[g].info = info
				stack = append(stack, g)
			}
		}
	}
	m.fills = stack
}
