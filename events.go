// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"fmt"
	"math"

	"github.com/etillison3350/FortunesAlgorithm/dcel"
	"github.com/etillison3350/FortunesAlgorithm/geom"
	"github.com/golang/geo/r2"
)

// Event is a queued sweep event. Point is the position at which it fires.
type Event interface {
	Point() r2.Point
	fmt.Stringer
}

// SiteEvent inserts the arc of one input point into the beach line.
type SiteEvent struct {
	Site  r2.Point
	Index int
}

func (e *SiteEvent) Point() r2.Point { return e.Site }

func (e *SiteEvent) String() string {
	return fmt.Sprintf("site #%d at %v", e.Index, e.Site)
}

// CircleEvent removes the arc Mid from the beach line when the sweep reaches
// the bottom of the circle through its neighbors' defining features.
type CircleEvent struct {
	Mid     dcel.EdgeID
	Center  r2.Point
	Radius  float64
	trigger r2.Point
}

func (e *CircleEvent) Point() r2.Point { return e.trigger }

func (e *CircleEvent) String() string {
	return fmt.Sprintf("circle at %v (center %v, radius %g, arc %d)", e.trigger, e.Center, e.Radius, e.Mid)
}

// newCircleEvent builds the candidate event for the arc mid. The circle is
// fitted to whatever defines mid and its neighbors: a vertex when only one of
// the three is an arc, a border line and two foci, or three foci.
func newCircleEvent(g dcel.View, mid dcel.EdgeID) *CircleEvent {
	var foci []r2.Point
	non := dcel.NoEdge
	for _, e := range [3]dcel.EdgeID{g.Prev(mid), mid, g.Next(mid)} {
		if f, ok := g.Focus(e); ok {
			foci = append(foci, f)
		} else {
			non = e
		}
	}

	var c r2.Point
	switch {
	case len(foci) == 0:
		c = r2.Point{X: math.NaN(), Y: math.NaN()}
	case len(foci) == 1:
		c = g.Point(g.Origin(non))
	case len(foci) == 2 && g.IsHorizontal(non):
		y := g.Point(g.Origin(non)).Y
		c = r2.Point{X: geom.CircleCenterX(foci[0], foci[1], y), Y: y}
	case len(foci) == 2:
		x := g.Point(g.Origin(non)).X
		c = r2.Point{X: x, Y: geom.CircleCenterY(foci[0], foci[1], x)}
	default:
		c = geom.Circumcenter(foci[0], foci[1], foci[2])
	}

	r := math.NaN()
	if len(foci) > 0 {
		r = c.Sub(foci[0]).Norm()
	}
	return &CircleEvent{
		Mid:     mid,
		Center:  c,
		Radius:  r,
		trigger: r2.Point{X: c.X, Y: c.Y - r},
	}
}

// canGenerateEvent reports whether the neighborhood of mid can converge: at
// least one neighbor must be an arc, and two neighboring arcs must not share a
// focus.
func canGenerateEvent(g dcel.View, mid dcel.EdgeID) bool {
	pf, pok := g.Focus(g.Prev(mid))
	nf, nok := g.Focus(g.Next(mid))
	if !pok && !nok {
		return false
	}
	return !pok || !nok || pf != nf
}

// isValidEvent filters candidates that would never fire correctly: any
// non-finite geometry, and circles whose breakpoints diverge instead of
// converging on the middle arc.
func isValidEvent(g dcel.View, ce *CircleEvent) bool {
	if !geom.IsFinite(ce.Center) || math.IsNaN(ce.Radius) || math.IsInf(ce.Radius, 0) {
		return false
	}
	prev, next := g.Prev(ce.Mid), g.Next(ce.Mid)
	pf, pok := g.Focus(prev)
	nf, nok := g.Focus(next)
	if !pok && !nok {
		return false
	}
	mf, mok := g.Focus(ce.Mid)
	if !mok {
		return true
	}

	c, r := ce.Center, ce.Radius
	p := pf
	if !pok {
		if g.IsHorizontal(prev) {
			p = r2.Point{X: c.X + r, Y: c.Y}
		} else {
			p = r2.Point{X: c.X, Y: c.Y + r}
		}
	}
	n := nf
	if !nok {
		if g.IsHorizontal(next) {
			n = r2.Point{X: c.X - r, Y: c.Y}
		} else {
			n = r2.Point{X: c.X, Y: c.Y + r}
		}
	}
	return (p.Y-n.Y)*(mf.X-p.X)-(p.X-n.X)*(mf.Y-p.Y) <= 0
}

// breakpointX returns the x where the beach-line pieces l and r meet at sweep
// height h. l comes first in boundary order and lies at the greater x.
func breakpointX(g dcel.View, l, r dcel.EdgeID, h float64) float64 {
	lf, lok := g.Focus(l)
	rf, rok := g.Focus(r)
	lo, ro := g.Point(g.Origin(l)), g.Point(g.Origin(r))
	switch {
	case lok && rok:
		return geom.ParabolasIntersectionX(lf, rf, h)
	case lok:
		if !g.IsHorizontal(r) {
			return ro.X
		}
		if x := geom.ParabolaHorizontalX(lf, ro.Y, h, true); !math.IsNaN(x) {
			return x
		}
		return ro.X
	case rok:
		if !g.IsHorizontal(l) {
			return lo.X
		}
		if x := geom.ParabolaHorizontalX(rf, lo.Y, h, false); !math.IsNaN(x) {
			return x
		}
		return lo.X
	}
	return ro.X
}
