// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package render draws a cdt.Mesh as an SVG image.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/2dChan/cdt"
	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"
)

const (
	defaultWidth  = 1000
	defaultHeight = 1000
	// viewport margin as a fraction of the mesh bounds
	defaultMargin = 0.05

	backgroundStyle = "fill:rgb(255,255,255)"
	constraintStyle = "stroke:rgb(0,0,0);stroke-width:2"
	vertexStyle     = "fill:rgb(0,0,255)"
	faceStrokeStyle = "stroke:rgb(170,170,170);stroke-width:1;stroke-opacity:1.0"
)

// DefaultPalette fills faces by region tag, indexed by tag modulo its
// length. Tag 0 is unfilled.
var DefaultPalette = []string{
	"rgb(255,255,255)",
	"rgb(166,206,227)",
	"rgb(178,223,138)",
	"rgb(251,154,153)",
	"rgb(253,191,111)",
	"rgb(202,178,214)",
}

type Options struct {
	Width, Height int

	// Viewport is the drawn area in user coordinates. When empty, the mesh
	// bounds plus a margin are used.
	Viewport r2.Rect

	// Frame draws the faces touching the bootstrap frame vertices.
	Frame    bool
	Vertices bool
	Palette  []string
}

type Option func(*Options) error

func WithSize(width, height int) Option {
	return func(o *Options) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("render: invalid size %dx%d", width, height)
		}
		o.Width, o.Height = width, height
		return nil
	}
}

func WithViewport(r r2.Rect) Option {
	return func(o *Options) error {
		if r.IsEmpty() || r.Size().X == 0 || r.Size().Y == 0 {
			return fmt.Errorf("render: degenerate viewport %v", r)
		}
		o.Viewport = r
		return nil
	}
}

func WithFrame(show bool) Option {
	return func(o *Options) error {
		o.Frame = show
		return nil
	}
}

func WithVertices(show bool) Option {
	return func(o *Options) error {
		o.Vertices = show
		return nil
	}
}

func WithPalette(palette []string) Option {
	return func(o *Options) error {
		if len(palette) == 0 {
			return errors.New("render: empty palette")
		}
		o.Palette = palette
		return nil
	}
}

// errWriter keeps the first write error, since svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// WriteSVG draws the faces of m filled by region tag, its constrained edges
// and optionally its vertices.
func WriteSVG(w io.Writer, m *cdt.Mesh, setters ...Option) error {
	opts := Options{
		Width:    defaultWidth,
		Height:   defaultHeight,
		Vertices: true,
		Palette:  DefaultPalette,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return err
		}
	}

	view := opts.Viewport
	if view.IsEmpty() {
		view = m.Bounds()
		if view.IsEmpty() {
			return errors.New("render: empty mesh and no viewport")
		}
		size := view.Size()
		view = view.ExpandedByMargin(defaultMargin * max(size.X, size.Y, 1))
	}
	toScreen := screenTransform(view, opts.Width, opts.Height)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, backgroundStyle)

	xPoints := make([]int, 0, 3)
	yPoints := make([]int, 0, 3)
	for f := range m.Faces() {
		if !opts.Frame && touchesFrame(f.Vertices) {
			continue
		}
		xPoints, yPoints = xPoints[:0], yPoints[:0]
		for _, p := range f.Points {
			x, y := toScreen(p.R2())
			xPoints = append(xPoints, x)
			yPoints = append(yPoints, y)
		}
		fill := opts.Palette[int(f.Info)%len(opts.Palette)]
		canvas.Polygon(xPoints, yPoints, "fill:"+fill+";"+faceStrokeStyle)
	}

	for e := range m.Edges() {
		if !e.Constrained || !e.Primary || e.Twin == 0 {
			continue
		}
		x1, y1 := toScreen(e.U.R2())
		x2, y2 := toScreen(e.V.R2())
		canvas.Line(x1, y1, x2, y2, constraintStyle)
	}

	if opts.Vertices {
		for v := range m.NumVertices() {
			if cdt.IsFrame(cdt.VertexID(v)) {
				continue
			}
			p, err := m.Vertex(cdt.VertexID(v))
			if err != nil {
				return err
			}
			x, y := toScreen(p.R2())
			canvas.Circle(x, y, 3, vertexStyle)
		}
	}
	canvas.End()

	return ew.err
}

// screenTransform maps view onto a width x height image with y pointing
// down.
func screenTransform(view r2.Rect, width, height int) func(r2.Point) (int, int) {
	lo, size := view.Lo(), view.Size()
	return func(p r2.Point) (int, int) {
		x := (p.X - lo.X) / size.X * float64(width)
		y := (1 - (p.Y-lo.Y)/size.Y) * float64(height)
		return int(x), int(y)
	}
}

func touchesFrame(vs [3]cdt.VertexID) bool {
	for _, v := range vs {
		if cdt.IsFrame(v) {
			return true
		}
	}
	return false
}
