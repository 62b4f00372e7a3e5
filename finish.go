// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"math"

	"github.com/etillison3350/FortunesAlgorithm/dcel"
	"github.com/etillison3350/FortunesAlgorithm/geom"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// finish closes the diagram once no events remain. The arcs still on the beach
// line are flattened onto a horizontal line far below everything, so each
// breakpoint becomes a straight ray. The rays are then cut at the top border,
// and everything outside the bounds is dissolved into a single outer face.
func (s *Sweep) finish(last Event) error {
	var arcs []dcel.EdgeID
	for e := s.g.Next(s.right); e != s.left; e = s.g.Next(e) {
		if !s.g.IsParabola(e) {
			return errors.Wrapf(dcel.ErrInvariant, "finish: beach edge %d is not an arc", e)
		}
		if len(arcs) > s.g.NumEdges() {
			return errors.Wrap(dcel.ErrInvariant, "finish: beach line does not reach the left border")
		}
		arcs = append(arcs, e)
	}
	if len(arcs) == 0 {
		return errors.Wrap(dcel.ErrInvariant, "finish: empty beach line")
	}

	y, err := s.lowestY(last)
	if err != nil {
		return err
	}
	y -= s.bounds.X.Length() + s.bounds.Y.Length()

	s.g.SetPoint(s.g.Origin(arcs[0]), r2.Point{X: s.g.Point(s.g.Origin(s.right)).X, Y: y})
	for i := 1; i < len(arcs); i++ {
		a, _ := s.g.Focus(arcs[i-1])
		c, _ := s.g.Focus(arcs[i])
		s.g.SetPoint(s.g.Origin(arcs[i]), r2.Point{X: geom.CircleCenterX(a, c, y), Y: y})
	}
	tail := arcs[len(arcs)-1]
	s.g.SetPoint(s.g.Origin(s.g.Twin(tail)), r2.Point{X: s.g.Point(s.g.Origin(s.left)).X, Y: y})

	if _, err := s.splitTop(s.g.Next(s.g.Twin(arcs[0])), true); err != nil {
		return err
	}
	for _, a := range arcs {
		if _, err := s.splitTop(s.g.Prev(s.g.Twin(a)), false); err != nil {
			return err
		}
	}
	for _, a := range arcs {
		s.g.ClearSite(s.g.Face(s.g.Twin(a)))
	}

	if _, err := s.g.Dissolve(s.top); err != nil {
		return errors.Wrap(err, "finish: dissolve top border")
	}
	s.top = dcel.NoEdge

	var outer dcel.FaceID
	for _, a := range arcs {
		if outer, err = s.g.Dissolve(a); err != nil {
			return errors.Wrapf(err, "finish: dissolve arc %d", a)
		}
	}
	if err := s.dissolveOutside(outer); err != nil {
		return err
	}
	if err := s.collapseShortEdges(); err != nil {
		return err
	}

	s.logger.Debug("sweep finished",
		zap.Int("arcs", len(arcs)),
		zap.Int("faces", s.g.NumFaces()))
	return nil
}

func (s *Sweep) lowestY(last Event) (float64, error) {
	y := math.Min(last.Point().Y, s.bounds.Y.Lo)
	for _, f := range s.g.Faces() {
		cycle, err := s.g.FaceEdges(s.g.Boundary(f))
		if err != nil {
			return 0, errors.Wrapf(err, "finish: face %d", f)
		}
		for _, e := range cycle {
			y = math.Min(y, s.g.Point(s.g.Origin(e)).Y)
		}
	}
	return y, nil
}

// dissolveOutside walks the outer face and dissolves every edge that still
// separates it from a siteless face.
func (s *Sweep) dissolveOutside(outer dcel.FaceID) error {
	start := s.g.Boundary(outer)
	edge := start
	for range 2 * s.g.NumEdges() {
		if edge == s.g.Prev(start) {
			return nil
		}
		if _, ok := s.g.Site(s.g.Face(s.g.Twin(edge))); ok {
			edge = s.g.Next(edge)
			continue
		}
		f, err := s.g.Dissolve(edge)
		if err != nil {
			return errors.Wrapf(err, "finish: dissolve outside edge %d", edge)
		}
		start = s.g.Boundary(f)
		edge = start
	}
	return errors.Wrap(dcel.ErrInvariant, "finish: outer face walk does not end")
}

// collapseShortEdges merges the endpoints of every edge shorter than the
// tolerance derived from the bounds diagonal.
func (s *Sweep) collapseShortEdges() error {
	tol := s.opts.Eps * math.Hypot(s.bounds.X.Length(), s.bounds.Y.Length())
	for range s.g.NumEdges() {
		e, ok, err := s.findShortEdge(tol)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, err := s.g.Collapse(e); err != nil {
			return errors.Wrapf(err, "finish: collapse short edge %d", e)
		}
		s.logger.Debug("short edge collapsed", zap.Int("edge", int(e)))
	}
	return errors.Wrap(dcel.ErrInvariant, "finish: short edges keep appearing")
}

func (s *Sweep) findShortEdge(tol float64) (dcel.EdgeID, bool, error) {
	for _, f := range s.g.Faces() {
		cycle, err := s.g.FaceEdges(s.g.Boundary(f))
		if err != nil {
			return dcel.NoEdge, false, errors.Wrapf(err, "finish: face %d", f)
		}
		for _, e := range cycle {
			a, b := s.g.Origin(e), s.g.Origin(s.g.Twin(e))
			if a != b && s.g.Point(a).Sub(s.g.Point(b)).Norm() <= tol {
				return e, true, nil
			}
		}
	}
	return dcel.NoEdge, false, nil
}
