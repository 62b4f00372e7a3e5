// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package voronoi computes Voronoi diagrams of points in a rectangle with
// Fortune's sweep-line algorithm.
//
// The sweep runs in screen coordinates: the top border sits at the minimum y
// and events fire in order of decreasing y. A Sweep can be driven one event at
// a time, which exposes the evolving DCEL, beach line and event queue for
// visualization, or run to completion and flattened into a Diagram.
package voronoi

import (
	"context"
	"fmt"
	"math"

	"github.com/etillison3350/FortunesAlgorithm/dcel"
	"github.com/etillison3350/FortunesAlgorithm/geom"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrInvalidInput reports points or bounds the sweep cannot start from.
var ErrInvalidInput = errors.New("voronoi: invalid input")

// ValidationError lists the structural violations found after a step.
type ValidationError struct {
	Violations []dcel.Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "voronoi: dcel validation failed"
	}
	return fmt.Sprintf("voronoi: dcel validation failed with %d violations, first: %v",
		len(e.Violations), e.Violations[0])
}

func (e *ValidationError) Unwrap() error { return dcel.ErrInvariant }

// Sweep is one run of Fortune's algorithm over a fixed set of points. It is
// not safe for concurrent use.
type Sweep struct {
	opts   Options
	logger *zap.Logger
	bounds r2.Rect
	points []r2.Point
	index  map[r2.Point]int

	g     *dcel.Tracker
	top   dcel.EdgeID
	left  dcel.EdgeID
	right dcel.EdgeID
	beach dcel.FaceID
	inf   dcel.FaceID

	queue     eventQueue
	topPoints map[dcel.FaceID]dcel.EdgeID
	steps     int
	err       error
}

// New prepares a sweep over points clipped to bounds. The bounds become a
// rectangle of four border edges and every point is queued as a site event.
func New(points []r2.Point, bounds r2.Rect, setters ...Option) (*Sweep, error) {
	opts := defaultOptions()
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	index, err := checkInput(points, bounds)
	if err != nil {
		return nil, err
	}

	g, top := dcel.NewTracker(bounds.Lo())
	right := g.Subdivide(top, r2.Point{X: bounds.X.Hi, Y: bounds.Y.Lo})
	bottom := g.Subdivide(right, bounds.Hi())
	left := g.Subdivide(bottom, r2.Point{X: bounds.X.Lo, Y: bounds.Y.Hi})
	g.SetHorizontal(top, true)
	g.SetHorizontal(bottom, true)

	s := &Sweep{
		opts:      opts,
		logger:    opts.Logger,
		bounds:    bounds,
		points:    append([]r2.Point(nil), points...),
		index:     index,
		g:         g,
		top:       top,
		left:      left,
		right:     right,
		beach:     g.Face(top),
		inf:       g.Face(g.Twin(top)),
		topPoints: make(map[dcel.FaceID]dcel.EdgeID),
	}
	for i, p := range points {
		s.queue.push(&SiteEvent{Site: p, Index: i})
	}
	s.logger.Debug("sweep created",
		zap.Int("sites", len(points)),
		zap.Float64s("bounds", []float64{bounds.X.Lo, bounds.Y.Lo, bounds.X.Hi, bounds.Y.Hi}))
	return s, nil
}

func checkInput(points []r2.Point, bounds r2.Rect) (map[r2.Point]int, error) {
	for _, v := range []float64{bounds.X.Lo, bounds.X.Hi, bounds.Y.Lo, bounds.Y.Hi} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrap(ErrInvalidInput, "New: bounds must be finite")
		}
	}
	if bounds.X.Length() <= 0 || bounds.Y.Length() <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "New: bounds %v have no area", bounds)
	}
	if len(points) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "New: no points")
	}

	index := make(map[r2.Point]int, len(points))
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, errors.Wrapf(ErrInvalidInput, "New: point %d is not finite", i)
		}
		if !bounds.InteriorContainsPoint(p) {
			return nil, errors.Wrapf(ErrInvalidInput, "New: point %d %v is not strictly inside %v", i, p, bounds)
		}
		if j, ok := index[p]; ok {
			return nil, errors.Wrapf(ErrInvalidInput, "New: point %d duplicates point %d", i, j)
		}
		index[p] = i
	}
	return index, nil
}

// Step pops and handles the next event and returns it. When the queue runs
// empty the diagram is finalized as part of the same step. Step returns nil
// and no error once the sweep is done. After a failed step the sweep is
// broken and every later call returns the same error.
func (s *Sweep) Step() (Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.queue.Len() == 0 {
		return nil, nil
	}

	ev := s.queue.pop()
	var err error
	switch ev := ev.(type) {
	case *SiteEvent:
		err = s.handleSite(ev)
	case *CircleEvent:
		err = s.handleCircle(ev)
	}
	if err == nil && s.queue.Len() == 0 {
		err = s.finish(ev)
	}
	if err == nil && s.opts.Validate {
		if vs := s.g.Validate(s.g.Faces()); len(vs) > 0 {
			err = &ValidationError{Violations: vs}
		}
	}
	s.steps++
	if err != nil {
		s.err = errors.WithMessagef(err, "step %d (%v)", s.steps, ev)
		s.logger.Error("sweep step failed", zap.Int("step", s.steps), zap.Error(s.err))
		return ev, s.err
	}

	s.logger.Debug("sweep step",
		zap.Int("step", s.steps),
		zap.Stringer("event", ev),
		zap.Int("pending", s.queue.Len()),
		zap.Int("faces", s.g.NumFaces()))
	return ev, nil
}

// Run steps until the queue is empty or ctx is done.
func (s *Sweep) Run(ctx context.Context) error {
	for s.HasEvents() {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "Run")
		}
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return s.err
}

func (s *Sweep) handleSite(ev *SiteEvent) error {
	p := ev.Site
	for edge := s.g.Next(s.top); edge != s.top; edge = s.g.Next(edge) {
		if !(breakpointX(s.g, edge, s.g.Next(edge), p.Y) < p.X) {
			continue
		}

		s.dropCircleEvents(func(ce *CircleEvent) bool { return ce.Mid == edge })
		// The new arc touches edge directly above the site.
		at := s.g.Point(s.g.Origin(edge))
		if f, ok := s.g.Focus(edge); ok && f.Y != p.Y {
			at = r2.Point{X: p.X, Y: geom.ParabolaY(p.X, f, p.Y)}
		}
		next := s.g.Subdivide(edge, at)
		mid := s.g.Subdivide(edge, at)
		arc, err := s.g.SplitFaceWithParabola(p, next, mid)
		if err != nil {
			return errors.Wrapf(err, "insert arc of %v", p)
		}
		s.g.SetSite(s.g.Face(s.g.Twin(arc)), p)
		if s.g.IsParabola(mid) {
			if err := s.g.ConvertToNonParEdge(mid); err != nil {
				return err
			}
		}
		s.addCircleEvent(ev, s.g.Prev(arc))
		s.addCircleEvent(ev, s.g.Next(arc))
		return nil
	}
	return errors.Wrapf(dcel.ErrInvariant, "no beach line piece above site %v", p)
}

func (s *Sweep) handleCircle(ce *CircleEvent) error {
	mid := ce.Mid
	s.dropCircleEvents(func(x *CircleEvent) bool {
		return s.g.Prev(x.Mid) == mid || s.g.Next(x.Mid) == mid
	})

	prev, next := s.g.Prev(mid), s.g.Next(mid)
	nextOrigin := s.g.Point(s.g.Origin(next))
	twin := s.g.Twin(mid)
	twinNext, twinPrev := s.g.Next(twin), s.g.Prev(twin)
	fixed := s.g.Twin(prev)
	moving := s.g.Next(s.g.Twin(next))
	if moving == twin {
		moving = s.g.Next(moving)
	}

	if _, err := s.g.Collapse(mid); err != nil {
		return errors.Wrapf(err, "remove arc %d", mid)
	}
	if _, err := s.g.RipVertex(ce.Center, fixed, moving); err != nil {
		return errors.Wrapf(err, "remove arc %d", mid)
	}
	if !s.g.IsParabola(next) {
		s.g.SetPoint(s.g.Origin(fixed), nextOrigin)
	}

	if prev != s.left && prev != s.right {
		s.addCircleEvent(ce, prev)
	}
	if next != s.left && next != s.right {
		s.addCircleEvent(ce, next)
	}

	if ce.Center.Y > s.topY() {
		return nil
	}
	if _, err := s.splitTop(twinPrev, false); err != nil {
		return err
	}
	if _, err := s.splitTop(twinNext, true); err != nil {
		return err
	}
	s.g.ClearSite(s.g.Face(twinNext))
	return s.dissolveEmptyNeighbors(twinNext)
}

// dissolveEmptyNeighbors walks the face of start and dissolves every edge
// separating it from a siteless face other than the outer one.
func (s *Sweep) dissolveEmptyNeighbors(start dcel.EdgeID) error {
	outside := s.g.Face(s.g.Twin(s.top))
	edge := start
	for range 2 * s.g.NumEdges() {
		opp := s.g.Face(s.g.Twin(edge))
		if _, ok := s.g.Site(opp); opp != outside && opp != dcel.NoFace && !ok {
			if _, err := s.g.Dissolve(edge); err != nil {
				return errors.Wrapf(err, "dissolve above top border at edge %d", edge)
			}
			for n := 0; s.g.Face(edge) == dcel.NoFace; n++ {
				if n > s.g.NumEdges() {
					return errors.Wrap(dcel.ErrInvariant, "no live edge after dissolve")
				}
				edge = s.g.Next(edge)
			}
		} else {
			edge = s.g.Next(edge)
		}
		if edge == start {
			return nil
		}
	}
	return errors.Wrapf(dcel.ErrInvariant, "face walk from edge %d does not return", start)
}

func (s *Sweep) addCircleEvent(gen Event, mid dcel.EdgeID) {
	if !canGenerateEvent(s.g, mid) {
		return
	}
	ce := newCircleEvent(s.g, mid)
	if !isValidEvent(s.g, ce) {
		return
	}
	s.queue.push(ce)
	s.logger.Debug("circle event queued", zap.Stringer("by", gen), zap.Stringer("event", ce))
}

func (s *Sweep) dropCircleEvents(pred func(*CircleEvent) bool) {
	n := s.queue.removeIf(func(ev Event) bool {
		ce, ok := ev.(*CircleEvent)
		return ok && pred(ce)
	})
	if n > 0 {
		s.logger.Debug("circle events dropped", zap.Int("count", n))
	}
}

func (s *Sweep) topY() float64 {
	return s.g.Point(s.g.Origin(s.top)).Y
}

// HasEvents reports whether any event is still queued.
func (s *Sweep) HasEvents() bool { return s.queue.Len() > 0 }

// NextEvent returns the event the next Step will handle, or nil.
func (s *Sweep) NextEvent() Event { return s.queue.peek() }

// PendingEvents returns the queued events in firing order.
func (s *Sweep) PendingEvents() []Event { return s.queue.snapshot() }

// Faces returns the live faces, including the beach and outer faces while
// they exist.
func (s *Sweep) Faces() []dcel.FaceID { return s.g.Faces() }

// TopBorder returns the top border edge, or dcel.NoEdge once the sweep is done.
func (s *Sweep) TopBorder() dcel.EdgeID { return s.top }

// IsSpecialFace reports whether f is the beach or the outer face rather than
// a Voronoi cell.
func (s *Sweep) IsSpecialFace(f dcel.FaceID) bool { return f == s.beach || f == s.inf }

// Points returns the input points in input order.
func (s *Sweep) Points() []r2.Point { return append([]r2.Point(nil), s.points...) }

// Graph returns a read-only view of the DCEL.
func (s *Sweep) Graph() dcel.View { return s.g.DCEL }

// Bounds returns the clipping rectangle.
func (s *Sweep) Bounds() r2.Rect { return s.bounds }

// Done reports whether the diagram has been finalized.
func (s *Sweep) Done() bool { return s.top == dcel.NoEdge }

// Err returns the error that broke the sweep, if any.
func (s *Sweep) Err() error { return s.err }
