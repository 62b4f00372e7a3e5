// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"github.com/etillison3350/FortunesAlgorithm/dcel"
	"github.com/etillison3350/FortunesAlgorithm/geom"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// splitTop cuts e where it crosses the top border line. The cut point is
// remembered per adjacent face until a second crossing of the same face shows
// up, at which point the two are joined with a straight edge along the border.
// right selects which side of e counts as the left face. It reports whether e
// crossed the line at all.
func (s *Sweep) splitTop(e dcel.EdgeID, right bool) (bool, error) {
	ty := s.topY()
	a := s.g.Point(s.g.Origin(e))
	b := s.g.Point(s.g.Origin(s.g.Next(e)))
	if (a.Y > ty) == (b.Y > ty) {
		return false, nil
	}

	lf, rf := s.g.Face(s.g.Twin(e)), s.g.Face(e)
	if right {
		lf, rf = rf, lf
	}
	e2 := s.g.Subdivide(e, geom.LineHorizontalIntersection(a, b, ty))
	outside := s.g.Face(s.g.Twin(s.top))

	leftCut, rightCut := s.g.Twin(e), e2
	if right {
		leftCut, rightCut = e2, s.g.Twin(e)
	}

	if o, ok := s.topPoints[lf]; ok && lf != outside {
		delete(s.topPoints, lf)
		if err := s.joinAlongTop(o, leftCut); err != nil {
			return false, err
		}
	} else {
		s.topPoints[lf] = leftCut
	}

	if o, ok := s.topPoints[rf]; ok && rf != outside {
		delete(s.topPoints, rf)
		if err := s.joinAlongTop(rightCut, o); err != nil {
			return false, err
		}
	} else {
		s.topPoints[rf] = rightCut
	}

	s.logger.Debug("edge split at top border", zap.Int("edge", int(e)), zap.Bool("right", right))
	return true, nil
}

// joinAlongTop splits a face between two cut points. The new face inherits
// the site of the old one.
func (s *Sweep) joinAlongTop(e1, e2 dcel.EdgeID) error {
	te, err := s.g.SplitFaceBetween(e1, e2)
	if err != nil {
		return errors.Wrap(err, "join cuts along top border")
	}
	nf := s.g.Face(s.g.Twin(te))
	if p, ok := s.g.Site(s.g.Face(te)); ok {
		s.g.SetSite(nf, p)
	} else {
		s.g.ClearSite(nf)
	}
	return nil
}
