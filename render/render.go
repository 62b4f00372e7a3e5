// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package render draws snapshots of a sweep in progress or of a finished
// diagram. Snapshots are plain geometry in the sweep's coordinates; the SVG and
// PNG writers map them onto an image with y pointing down.
package render

import (
	"image/color"
	"math"

	voronoi "github.com/etillison3350/FortunesAlgorithm"
	"github.com/etillison3350/FortunesAlgorithm/dcel"
	"github.com/etillison3350/FortunesAlgorithm/geom"
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// arcSegments is the number of line segments used per beach-line arc.
const arcSegments = 32

// Shape is a closed polygon belonging to the site with index Site.
type Shape struct {
	Site    int
	Polygon []r2.Point
}

// Snapshot is everything drawn for one frame.
type Snapshot struct {
	Bounds r2.Rect
	Sites  []r2.Point
	Cells  []Shape
	Edges  []geom.Line
	Beach  [][]r2.Point
	// Circles are the pending circle events.
	Circles []geom.Circle
	SweepY  *float64
}

// Capture takes a snapshot of s. Cells are the faces with a site whose
// boundary is entirely straight. When sweepY is nil the y of the next event is
// used for the beach line.
func Capture(s *voronoi.Sweep, sweepY *float64) (Snapshot, error) {
	snap := Snapshot{
		Bounds: s.Bounds(),
		Sites:  s.Points(),
	}
	if sweepY == nil {
		if ev := s.NextEvent(); ev != nil {
			y := ev.Point().Y
			sweepY = &y
		}
	}
	snap.SweepY = sweepY

	index := make(map[r2.Point]int, len(snap.Sites))
	for i, p := range snap.Sites {
		index[p] = i
	}

	g := s.Graph()
	seen := make(map[dcel.EdgeID]bool)
	for _, f := range s.Faces() {
		cycle, err := g.FaceEdges(g.Boundary(f))
		if err != nil {
			return Snapshot{}, errors.Wrapf(err, "Capture: face %d", f)
		}

		straight := true
		poly := make([]r2.Point, 0, len(cycle))
		for _, e := range cycle {
			poly = append(poly, g.Point(g.Origin(e)))
			if g.IsParabola(e) {
				straight = false
				continue
			}
			key := min(e, g.Twin(e))
			if seen[key] {
				continue
			}
			seen[key] = true
			snap.Edges = append(snap.Edges, geom.Line{
				Start: g.Point(g.Origin(e)),
				End:   g.Point(g.Origin(g.Twin(e))),
			})
		}

		p, ok := g.Site(f)
		if !ok || !straight {
			continue
		}
		if i, ok := index[p]; ok {
			snap.Cells = append(snap.Cells, Shape{Site: i, Polygon: poly})
		}
	}

	for _, ev := range s.PendingEvents() {
		if ce, ok := ev.(*voronoi.CircleEvent); ok {
			snap.Circles = append(snap.Circles, geom.Circle{Center: ce.Center, Radius: ce.Radius})
		}
	}
	if sweepY != nil {
		snap.Beach = BeachLine(s, *sweepY)
	}
	return snap, nil
}

// FromDiagram takes a snapshot of a finished diagram.
func FromDiagram(d *voronoi.Diagram) Snapshot {
	snap := Snapshot{
		Bounds: d.Bounds,
		Sites:  d.Sites,
		Cells:  make([]Shape, 0, d.NumCells()),
	}
	for i := range d.NumCells() {
		c, _ := d.Cell(i)
		snap.Cells = append(snap.Cells, Shape{Site: i, Polygon: c.Polygon()})
	}
	return snap
}

// BeachLine samples the beach line of s at sweep height sweepY. Every arc
// becomes a polyline between its breakpoints, and every straight beach edge a
// segment clamped to the bounds. The result is empty once s is done.
func BeachLine(s *voronoi.Sweep, sweepY float64) [][]r2.Point {
	tr := s.Dump(&sweepY)
	bounds := s.Bounds()

	var out [][]r2.Point
	for k, b := range tr.Beach {
		switch b.Role {
		case voronoi.RoleArc:
			hi := bounds.X.Hi
			if k > 0 && tr.Beach[k-1].Breakpoint != nil {
				hi = *tr.Beach[k-1].Breakpoint
			}
			lo := bounds.X.Lo
			if b.Breakpoint != nil {
				lo = *b.Breakpoint
			}
			if arc := sampleArc(b.Focus, sweepY, lo, hi, bounds); len(arc) > 1 {
				out = append(out, arc)
			}
		case voronoi.RoleEdge:
			if k+1 >= len(tr.Beach) {
				continue
			}
			out = append(out, []r2.Point{
				bounds.ClampPoint(b.Origin),
				bounds.ClampPoint(tr.Beach[k+1].Origin),
			})
		}
	}
	return out
}

func sampleArc(focus r2.Point, h, lo, hi float64, bounds r2.Rect) []r2.Point {
	lo = math.Max(lo, bounds.X.Lo)
	hi = math.Min(hi, bounds.X.Hi)
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return nil
	}
	if focus.Y == h {
		// A fresh arc is a vertical spike up from its site.
		return []r2.Point{focus, {X: focus.X, Y: bounds.Y.Lo}}
	}

	pts := make([]r2.Point, 0, arcSegments+1)
	for i := range arcSegments + 1 {
		x := hi - (hi-lo)*float64(i)/arcSegments
		p := r2.Point{X: x, Y: geom.ParabolaY(x, focus, h)}
		if !geom.IsFinite(p) {
			continue
		}
		pts = append(pts, bounds.ClampPoint(p))
	}
	return pts
}

// Hue returns the fill color of the cell of site i. Colors are spread around
// the hue circle by the golden angle, so neighbors in input order differ.
func Hue(i int) color.RGBA {
	h := math.Mod(float64(i)*0.618033988749895, 1)
	r, g, b := colorful.Hsv(h*360, 0.45, 0.95).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
