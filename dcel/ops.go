// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dcel

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Subdivide splits e and its twin at a new vertex placed at p and returns the
// new half-edge that follows e. The new pair copies kind, focus and faces from
// e; straight edges also keep their horizontal flag.
func (d *DCEL) Subdivide(e EdgeID, p r2.Point) EdgeID {
	t := d.edges[e].twin
	o := d.newEdgePair(d.edges[e].kind, d.edges[e].focus)
	ot := d.edges[o].twin

	d.setOrigin(ot, d.edges[t].origin)
	v := d.newVertex(p)
	d.setOrigin(t, v)
	d.setOrigin(o, v)
	d.insertSuccessor(e, o)
	d.insertPredecessor(t, ot)

	if d.edges[e].kind == Straight {
		d.edges[o].horizontal = d.edges[e].horizontal
		d.edges[ot].horizontal = d.edges[t].horizontal
	}
	d.setFace(o, d.edges[e].face)
	d.setFace(ot, d.edges[t].face)
	return o
}

// Collapse removes e and its twin, merging the twin's origin into e's origin,
// and returns the surviving vertex.
func (d *DCEL) Collapse(e EdgeID) (VertexID, error) {
	if err := d.checkEdge(e); err != nil {
		return NoVertex, err
	}
	cv := d.edges[e].origin
	t := d.edges[e].twin
	gone := d.edges[t].origin

	around, err := d.VertexEdges(gone)
	if err != nil {
		return NoVertex, errors.Wrapf(err, "Collapse: edge %d", e)
	}
	for _, x := range around {
		d.setOrigin(x, cv)
	}

	n, tn := d.edges[e].next, d.edges[t].next
	if f := d.edges[n].face; f != NoFace {
		d.faces[f].boundary = n
	}
	if f := d.edges[tn].face; f != NoFace {
		d.faces[f].boundary = tn
	}
	d.unlink(e)
	d.unlink(t)

	d.vertices[cv].incident = n
	if gone != cv {
		d.vertices[gone].incident = NoEdge
	}
	return cv, nil
}

// Dissolve removes e and merges the two faces it separates into e's face,
// together with every edge left dangling by the merge. It returns the joined
// face.
func (d *DCEL) Dissolve(e EdgeID) (FaceID, error) {
	if err := d.checkEdge(e); err != nil {
		return NoFace, err
	}
	t := d.edges[e].twin
	joined, gone := d.edges[e].face, d.edges[t].face
	if joined == gone {
		return NoFace, errors.Wrapf(ErrInvalidArgument, "Dissolve: edge %d has face %d on both sides", e, joined)
	}

	cycle, err := d.FaceEdges(t)
	if err != nil {
		return NoFace, errors.Wrapf(err, "Dissolve: edge %d", e)
	}
	d.faces[gone].boundary = NoEdge
	d.faces[gone].live = false
	for _, x := range cycle {
		d.edges[x].face = joined
	}

	if _, err := d.peel(e, t); err != nil {
		return NoFace, err
	}
	last, err := d.peel(t, e)
	if err != nil {
		return NoFace, err
	}

	f := d.edges[last].face
	d.faces[f].boundary = last
	return f, nil
}

// peel walks forward from e1 and backward from e2 while the two walks retrace
// the same edge from both sides, detaching everything passed. It reconnects
// the survivors and returns the backward survivor.
func (d *DCEL) peel(e1, e2 EdgeID) (EdgeID, error) {
	for range len(d.edges) {
		d.edges[e1].face = NoFace
		d.edges[e2].face = NoFace
		e1 = d.edges[e1].next
		e2 = d.edges[e2].prev
		if e1 != d.edges[e2].twin {
			d.setNext(e2, e1)
			d.vertices[d.edges[e1].origin].incident = e1
			return e2, nil
		}
	}
	return NoEdge, errors.Wrap(ErrInvariant, "Dissolve: dangling chain does not end")
}

// SplitFaceBetween connects the origins of e1 and e2, which must bound the same
// face, with a new straight edge pair. The returned edge runs from e2's origin
// to e1's origin and keeps the old face; its twin bounds a new face.
func (d *DCEL) SplitFaceBetween(e1, e2 EdgeID) (EdgeID, error) {
	return d.splitFace(e1, e2, Straight, r2.Point{})
}

// SplitFaceWithParabola is SplitFaceBetween with a parabola edge pair for the
// arc of focus.
func (d *DCEL) SplitFaceWithParabola(focus r2.Point, e1, e2 EdgeID) (EdgeID, error) {
	return d.splitFace(e1, e2, Parabola, focus)
}

func (d *DCEL) splitFace(e1, e2 EdgeID, kind Kind, focus r2.Point) (EdgeID, error) {
	if err := d.checkEdge(e1); err != nil {
		return NoEdge, err
	}
	if err := d.checkEdge(e2); err != nil {
		return NoEdge, err
	}
	if d.edges[e1].face != d.edges[e2].face {
		return NoEdge, errors.Wrapf(ErrInvalidArgument,
			"SplitFaceBetween: edges %d and %d bound different faces %d and %d",
			e1, e2, d.edges[e1].face, d.edges[e2].face)
	}

	s := d.newEdgePair(kind, focus)
	st := d.edges[s].twin
	d.setOrigin(st, d.edges[e1].origin)
	d.setOrigin(s, d.edges[e2].origin)

	d.setNext(d.edges[e1].prev, st)
	d.setNext(d.edges[e2].prev, s)
	d.setPrev(e1, s)
	d.setPrev(e2, st)

	d.setFace(s, d.edges[e1].face)
	cycle, err := d.FaceEdges(st)
	if err != nil {
		return NoEdge, errors.Wrapf(err, "SplitFaceBetween: edges %d and %d", e1, e2)
	}
	nf := d.newFace()
	for _, x := range cycle {
		d.setFace(x, nf)
	}
	return s, nil
}

// RipVertex splits the common origin of fixed and moving in two. fixed keeps
// the old vertex; moving, and the edges reached from it before fixed, move to
// a new vertex at p. A new straight edge joins the two vertices; the returned
// half of it points into the old vertex and lies in fixed's face.
func (d *DCEL) RipVertex(p r2.Point, fixed, moving EdgeID) (EdgeID, error) {
	if err := d.checkEdge(fixed); err != nil {
		return NoEdge, err
	}
	if err := d.checkEdge(moving); err != nil {
		return NoEdge, err
	}
	if d.edges[fixed].origin != d.edges[moving].origin {
		return NoEdge, errors.Wrapf(ErrInvalidArgument,
			"RipVertex: edges %d and %d have different origins", fixed, moving)
	}

	ne := d.newEdgePair(Straight, r2.Point{})
	nt := d.edges[ne].twin
	nv := d.newVertex(p)

	d.setOrigin(moving, nv)
	d.setOrigin(nt, d.edges[fixed].origin)
	d.insertPredecessor(fixed, ne)
	d.insertPredecessor(moving, nt)
	d.setFace(ne, d.edges[fixed].face)
	d.setFace(nt, d.edges[moving].face)

	around, err := d.VertexEdges(nv)
	if err != nil {
		return NoEdge, errors.Wrapf(err, "RipVertex: edges %d and %d", fixed, moving)
	}
	for _, x := range around {
		d.setOrigin(x, nv)
	}
	return ne, nil
}

// ConvertToNonParEdge turns the parabola pair of e into a straight pair in
// place. All links are kept.
func (d *DCEL) ConvertToNonParEdge(e EdgeID) error {
	if err := d.checkEdge(e); err != nil {
		return err
	}
	if d.edges[e].kind != Parabola {
		return errors.Wrapf(ErrInvalidArgument, "ConvertToNonParEdge: edge %d is not a parabola", e)
	}
	for _, x := range []EdgeID{e, d.edges[e].twin} {
		d.edges[x].kind = Straight
		d.edges[x].focus = r2.Point{}
		d.edges[x].horizontal = false
	}
	return nil
}
