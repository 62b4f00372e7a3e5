// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const (
	edgeStyle   = "fill:none;stroke:rgb(170,170,170);stroke-width:1"
	beachStyle  = "fill:none;stroke:rgb(0,0,200);stroke-width:1.5"
	sweepStyle  = "stroke:rgb(200,0,0);stroke-width:1;stroke-dasharray:4,4"
	circleStyle = "fill:none;stroke:rgb(0,160,0);stroke-width:1;stroke-opacity:0.6"
	siteStyle   = "fill:rgb(255,0,0)"
	borderStyle = "fill:none;stroke:rgb(0,0,0);stroke-width:1"
)

// Style controls how a snapshot is drawn.
type Style struct {
	// Width is the image width in pixels. The height follows the aspect
	// ratio of the bounds.
	Width int
	// Inset shrinks every cell by this many units before it is filled.
	Inset float64
	// SiteRadius is the radius of site markers in pixels.
	SiteRadius int
}

// DefaultStyle is used by callers with no preference.
var DefaultStyle = Style{Width: 1000, Inset: 0, SiteRadius: 2}

type projection struct {
	bounds r2.Rect
	scale  float64
	w, h   int
}

func newProjection(bounds r2.Rect, width int) projection {
	scale := float64(width) / bounds.X.Length()
	return projection{
		bounds: bounds,
		scale:  scale,
		w:      width,
		h:      int(math.Ceil(bounds.Y.Length() * scale)),
	}
}

func (p projection) xy(q r2.Point) (float64, float64) {
	return (q.X - p.bounds.X.Lo) * p.scale, (q.Y - p.bounds.Y.Lo) * p.scale
}

func (p projection) ints(pts []r2.Point) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, q := range pts {
		x, y := p.xy(q)
		xs[i], ys[i] = int(math.Round(x)), int(math.Round(y))
	}
	return xs, ys
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(b []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(b)
	ew.err = err
	return n, err
}

// SVG writes snap to w as an SVG document.
func SVG(w io.Writer, snap Snapshot, style Style) error {
	if style.Width <= 0 {
		return errors.Errorf("render: width %d is not positive", style.Width)
	}
	p := newProjection(snap.Bounds, style.Width)
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(p.w, p.h)
	canvas.Rect(0, 0, p.w, p.h, "fill:rgb(255,255,255)")

	for _, c := range snap.Cells {
		poly := c.Polygon
		if style.Inset > 0 {
			if poly = Inset(poly, style.Inset); poly == nil {
				continue
			}
		}
		xs, ys := p.ints(poly)
		canvas.Polygon(xs, ys, fillStyle(Hue(c.Site)))
	}
	for _, e := range snap.Edges {
		x1, y1 := p.xy(e.Start)
		x2, y2 := p.xy(e.End)
		canvas.Line(int(math.Round(x1)), int(math.Round(y1)), int(math.Round(x2)), int(math.Round(y2)), edgeStyle)
	}
	for _, b := range snap.Beach {
		xs, ys := p.ints(b)
		canvas.Polyline(xs, ys, beachStyle)
	}
	for _, c := range snap.Circles {
		x, y := p.xy(c.Center)
		canvas.Circle(int(math.Round(x)), int(math.Round(y)), int(math.Round(c.Radius*p.scale)), circleStyle)
	}
	if snap.SweepY != nil {
		_, y := p.xy(r2.Point{Y: *snap.SweepY})
		canvas.Line(0, int(math.Round(y)), p.w, int(math.Round(y)), sweepStyle)
	}
	for _, s := range snap.Sites {
		x, y := p.xy(s)
		canvas.Circle(int(math.Round(x)), int(math.Round(y)), style.SiteRadius, siteStyle)
	}
	canvas.Rect(0, 0, p.w, p.h, borderStyle)
	canvas.End()
	return ew.err
}

func fillStyle(c color.RGBA) string {
	return fmt.Sprintf("fill:rgb(%d,%d,%d);stroke:rgb(255,255,255);stroke-width:1", c.R, c.G, c.B)
}
