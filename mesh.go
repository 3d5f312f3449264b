// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package cdt implements an incremental constrained Delaunay triangulation
// over a fixed-capacity set of 2D integer points.
//
// The mesh lives in a flat append-only arena. Every vertex owns two faces and
// every face owns three half-edges, so vertices, faces and edges are all
// addressed by small integers and never move or get freed until Reset.
package cdt

import (
	"fmt"
	"iter"

	"github.com/2dChan/cdt/ivec"
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

const (
	// MaxVertices is the hard vertex limit imposed by 13-bit vertex
	// references, frame vertices included.
	MaxVertices = 8 * 1024

	frameVertices = 4
	facesPerVert  = 2
	// faces 0..5 are padding owned by frame vertices 0..2
	firstFace FaceID = 6

	frameLo = -1 << 15
	frameHi = 1<<15 - 1
)

type (
	VertexID uint16
	FaceID   uint16
	// EdgeID is the half-edge at corner c of face f, numbered 4*f + c.
	// The edge at corner c is the one opposite the face's c-th vertex.
	EdgeID uint16
	// Address is the single identifier space shared by faces and edges:
	// 4*f + c (c < 3) names an edge, 4*f + 3 names face f and 0 is nil.
	Address uint16
)

// NilAddress is returned by lookups that fall outside the triangulated domain.
const NilAddress Address = 0

// Address returns the face address of f.
func (f FaceID) Address() Address {
	return Address(f)<<2 | 3
}

// Edge returns the half-edge at corner c (0..2) of f.
func (f FaceID) Edge(c int) EdgeID {
	if c < 0 || c > 2 {
		panic("Edge: corner out of range")
	}
	return EdgeID(f)<<2 | EdgeID(c)
}

func (e EdgeID) Face() FaceID {
	return FaceID(e >> 2)
}

func (e EdgeID) Corner() int {
	return int(e & 3)
}

// Next returns the next half-edge of the same face.
func (e EdgeID) Next() EdgeID {
	if e&3 < 2 {
		return e + 1
	}
	return e - 2
}

// Prev returns the previous half-edge of the same face.
func (e EdgeID) Prev() EdgeID {
	if e&3 > 0 {
		return e - 1
	}
	return e + 2
}

func (e EdgeID) Address() Address {
	return Address(e)
}

func (a Address) IsFace() bool {
	return a != NilAddress && a&3 == 3
}

func (a Address) IsEdge() bool {
	return a != NilAddress && a&3 != 3
}

// Face returns the face a refers to, whether a is a face or an edge address.
func (a Address) Face() FaceID {
	return FaceID(a >> 2)
}

// Edge returns the edge a refers to. For a face address it returns the
// face's first edge.
func (a Address) Edge() EdgeID {
	if a&3 == 3 {
		return EdgeID(a &^ 3)
	}
	return EdgeID(a)
}

type halfEdge struct {
	// far is the vertex opposite the edge
	far         VertexID
	twin        EdgeID
	constrained bool
}

type faceData struct {
	edges [3]halfEdge
	info  uint16
}

// Mesh is a constrained Delaunay triangulation. It is not safe for
// concurrent use.
type Mesh struct {
	log      *zap.Logger
	q        uint
	scale    int64
	limit    int
	validate bool

	// size is the number of allocated vertices; vertex v owns faces 2v and 2v+1
	size  int
	verts []ivec.Vec2
	faces []faceData

	flips []EdgeID
	fills []FaceID
	// dirty holds faces swapped without the Delaunay check
	dirty []FaceID
}

// New creates a mesh and resets it to the bootstrap frame.
func New(setters ...Option) (*Mesh, error) {
	opts := Options{
		Quantization: 0,
		Capacity:     MaxVertices,
		Logger:       zap.NewNop(),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	limit := min(opts.Capacity, MaxVertices)
	m := &Mesh{
		log:      opts.Logger,
		q:        opts.Quantization,
		scale:    1 << opts.Quantization,
		limit:    limit,
		validate: opts.Validate,
		verts:    make([]ivec.Vec2, limit),
		faces:    make([]faceData, facesPerVert*limit),
	}
	m.Reset()
	return m, nil
}

// Reset drops every inserted vertex and restores the two bootstrap
// triangles spanning the whole quantized coordinate range. The frame edges
// are constrained and have no twin.
func (m *Mesh) Reset() {
	m.size = frameVertices
	m.dirty = m.dirty[:0]

	m.verts[0] = ivec.V(frameLo, frameLo)
	m.verts[1] = ivec.V(frameHi, frameLo)
	m.verts[2] = ivec.V(frameLo, frameHi)
	m.verts[3] = ivec.V(frameHi, frameHi)

	pad := faceData{edges: [3]halfEdge{{constrained: true}, {constrained: true}, {constrained: true}}}
	for f := range firstFace {
		m.faces[f] = pad
	}

	// face 6 is (v0, v2, v1), face 7 is (v3, v1, v2); they share v1-v2
	m.faces[6] = faceData{edges: [3]halfEdge{
		{far: 0, twin: FaceID(7).Edge(0)},
		{far: 2, constrained: true},
		{far: 1, constrained: true},
	}}
	m.faces[7] = faceData{edges: [3]halfEdge{
		{far: 3, twin: FaceID(6).Edge(0)},
		{far: 1, constrained: true},
		{far: 2, constrained: true},
	}}

	m.log.Debug("cdt: reset", zap.Int("capacity", m.limit), zap.Uint("quantization", m.q))
}

func (m *Mesh) he(e EdgeID) *halfEdge {
	return &m.faces[e>>2].edges[e&3]
}

func (m *Mesh) far(e EdgeID) VertexID {
	return m.faces[e>>2].edges[e&3].far
}

func (m *Mesh) twin(e EdgeID) EdgeID {
	return m.faces[e>>2].edges[e&3].twin
}

// pos returns the quantized position of the vertex opposite e.
func (m *Mesh) pos(e EdgeID) ivec.Vec2 {
	return m.verts[m.far(e)]
}

func (m *Mesh) user(v VertexID) ivec.Vec2 {
	return m.verts[v].Mul(m.scale)
}

// IsFrame reports whether v is one of the four bootstrap frame vertices.
func IsFrame(v VertexID) bool {
	return v < frameVertices
}

func (m *Mesh) liveFace(f FaceID) bool {
	return f >= firstFace && int(f) < facesPerVert*m.size
}

// NumVertices returns the number of allocated vertices, frame included.
func (m *Mesh) NumVertices() int {
	return m.size
}

// NumFaces returns the number of live triangles.
func (m *Mesh) NumFaces() int {
	return facesPerVert*m.size - int(firstFace)
}

// Capacity returns the maximum number of vertices, frame included.
func (m *Mesh) Capacity() int {
	return m.limit
}

// Quantization returns the right shift applied to user coordinates.
func (m *Mesh) Quantization() uint {
	return m.q
}

// Vertex returns the position of v in user coordinates.
func (m *Mesh) Vertex(v VertexID) (ivec.Vec2, error) {
	if int(v) >= m.size {
		return ivec.Vec2{}, fmt.Errorf("Vertex: id %d out of range [0 %d)", v, m.size)
	}
	return m.user(v), nil
}

// Bounds returns the bounding rectangle of all inserted vertices in user
// coordinates. It is empty when nothing but the frame exists.
func (m *Mesh) Bounds() r2.Rect {
	b := r2.EmptyRect()
	for v := frameVertices; v < m.size; v++ {
		b = b.AddPoint(m.user(VertexID(v)).R2())
	}
	return b
}

// Info returns the region tag of f. It panics if f is not a live face.
func (m *Mesh) Info(f FaceID) uint16 {
	if !m.liveFace(f) {
		panic("Info: face id out of range")
	}
	return m.faces[f].info
}

// SetInfo sets the region tag of f. It panics if f is not a live face.
func (m *Mesh) SetInfo(f FaceID, info uint16) {
	if !m.liveFace(f) {
		panic("SetInfo: face id out of range")
	}
	m.faces[f].info = info
}

// EdgeVertices returns, in user coordinates, the endpoints of e as seen from
// inside its face (a on the left, b on the right) and the opposite vertex o.
func (m *Mesh) EdgeVertices(e EdgeID) (a, b, o ivec.Vec2) {
	return m.user(m.far(e.Next())), m.user(m.far(e.Prev())), m.user(m.far(e))
}

// Face is a read-only copy of a mesh triangle in user coordinates.
type Face struct {
	ID       FaceID
	Vertices [3]VertexID
	Points   [3]ivec.Vec2
	// Twins holds, per corner, the neighbouring half-edge across the edge
	// opposite that corner, or 0 on the frame.
	Twins       [3]EdgeID
	Constrained [3]bool
	Info        uint16
}

// Edge is a read-only copy of a half-edge in user coordinates. U and V are
// the endpoints as seen from inside the owning face.
type Edge struct {
	ID          EdgeID
	Twin        EdgeID
	Vertices    [2]VertexID
	U, V        ivec.Vec2
	Primary     bool
	Constrained bool
}

// Face returns a copy of face f.
func (m *Mesh) Face(f FaceID) (Face, error) {
	if !m.liveFace(f) {
		return Face{}, fmt.Errorf("Face: id %d out of range [%d %d)", f, firstFace, facesPerVert*m.size)
	}
	return m.face(f), nil
}

func (m *Mesh) face(f FaceID) Face {
	fd := &m.faces[f]
	r := Face{ID: f, Info: fd.info}
	for i, h := range fd.edges {
		r.Vertices[i] = h.far
		r.Points[i] = m.user(h.far)
		r.Twins[i] = h.twin
		r.Constrained[i] = h.constrained
	}
	return r
}

// Edge returns a copy of half-edge e.
func (m *Mesh) Edge(e EdgeID) (Edge, error) {
	if e.Corner() == 3 || !m.liveFace(e.Face()) {
		return Edge{}, fmt.Errorf("Edge: id %d is not a live half-edge", e)
	}
	return m.edge(e), nil
}

func (m *Mesh) edge(e EdgeID) Edge {
	h := m.he(e)
	u, v := m.far(e.Next()), m.far(e.Prev())
	return Edge{
		ID:          e,
		Twin:        h.twin,
		Vertices:    [2]VertexID{u, v},
		U:           m.user(u),
		V:           m.user(v),
		Primary:     h.twin < e,
		Constrained: h.constrained,
	}
}

// Faces iterates over all live faces, the bootstrap padding excluded.
func (m *Mesh) Faces() iter.Seq[Face] {
	return func(yield func(Face) bool) {
		for f := firstFace; int(f) < facesPerVert*m.size; f++ {
			if !yield(m.face(f)) {
				return
			}
		}
	}
}

// Edges iterates over all live half-edges. Every undirected edge appears
// twice, once with Primary set; frame edges appear once, always primary.
func (m *Mesh) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for f := firstFace; int(f) < facesPerVert*m.size; f++ {
			for c := range 3 {
				if !yield(m.edge(f.Edge(c))) {
					return
				}
			}
		}
	}
}
