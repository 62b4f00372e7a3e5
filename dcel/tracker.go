// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dcel

import (
	"slices"

	"github.com/golang/geo/r2"
)

// Tracker is a DCEL that keeps the list of live faces current. The primitives
// that create or destroy faces are shadowed here; calling them on the embedded
// DCEL directly leaves the list stale.
type Tracker struct {
	*DCEL
	faces []FaceID
}

// NewTracker returns a tracked DCEL holding a single self-loop at p, along with
// the loop's edge. Its face list is [inner, outer].
func NewTracker(p r2.Point) (*Tracker, EdgeID) {
	d, e := New(p)
	return &Tracker{
		DCEL:  d,
		faces: []FaceID{d.Face(e), d.Face(d.Twin(e))},
	}, e
}

// Faces returns a snapshot of the live faces in creation order.
func (t *Tracker) Faces() []FaceID {
	return slices.Clone(t.faces)
}

// NumFaces returns the number of live faces.
func (t *Tracker) NumFaces() int {
	return len(t.faces)
}

// SplitFaceBetween is DCEL.SplitFaceBetween, recording the new face.
func (t *Tracker) SplitFaceBetween(e1, e2 EdgeID) (EdgeID, error) {
	s, err := t.DCEL.SplitFaceBetween(e1, e2)
	if err != nil {
		return NoEdge, err
	}
	t.faces = append(t.faces, t.Face(t.Twin(s)))
	return s, nil
}

// SplitFaceWithParabola is DCEL.SplitFaceWithParabola, recording the new face.
func (t *Tracker) SplitFaceWithParabola(focus r2.Point, e1, e2 EdgeID) (EdgeID, error) {
	s, err := t.DCEL.SplitFaceWithParabola(focus, e1, e2)
	if err != nil {
		return NoEdge, err
	}
	t.faces = append(t.faces, t.Face(t.Twin(s)))
	return s, nil
}

// Dissolve is DCEL.Dissolve, dropping whichever face did not survive.
func (t *Tracker) Dissolve(e EdgeID) (FaceID, error) {
	a, b := t.Face(e), t.Face(t.Twin(e))
	joined, err := t.DCEL.Dissolve(e)
	if err != nil {
		return NoFace, err
	}
	gone := a
	if joined == a {
		gone = b
	}
	if i := slices.Index(t.faces, gone); i >= 0 {
		t.faces = slices.Delete(t.faces, i, i+1)
	}
	return joined, nil
}
