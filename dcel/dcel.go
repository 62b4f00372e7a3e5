// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package dcel implements a doubly-connected edge list over arena-allocated
// vertices, half-edges and faces addressed by integer handles.
//
// Half-edges come in twin pairs and carry a kind tag: straight, or parabolic
// with a focus. Entities are never freed. A collapsed vertex loses its incident
// edge and a dissolved face is marked dead, but their handles stay valid for
// the lifetime of the DCEL.
package dcel

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument reports a violated precondition of a primitive.
	ErrInvalidArgument = errors.New("dcel: invalid argument")
	// ErrInvariant reports a broken structural invariant, which indicates a bug
	// in the editing logic rather than bad input.
	ErrInvariant = errors.New("dcel: invariant violated")
)

// VertexID is a handle to a vertex.
type VertexID int

// EdgeID is a handle to a half-edge.
type EdgeID int

// FaceID is a handle to a face.
type FaceID int

const (
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
	NoFace   FaceID   = -1
)

// Kind tags a half-edge as straight or parabolic.
type Kind uint8

const (
	Straight Kind = iota
	Parabola
)

func (k Kind) String() string {
	switch k {
	case Straight:
		return "straight"
	case Parabola:
		return "parabola"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

type vertex struct {
	p        r2.Point
	incident EdgeID
}

type edge struct {
	origin     VertexID
	twin       EdgeID
	next       EdgeID
	prev       EdgeID
	face       FaceID
	horizontal bool
	kind       Kind
	focus      r2.Point
}

type face struct {
	boundary EdgeID
	site     r2.Point
	hasSite  bool
	live     bool
}

// View is the read-only surface of a DCEL.
type View interface {
	Origin(e EdgeID) VertexID
	Twin(e EdgeID) EdgeID
	Next(e EdgeID) EdgeID
	Prev(e EdgeID) EdgeID
	Face(e EdgeID) FaceID
	Kind(e EdgeID) Kind
	IsParabola(e EdgeID) bool
	Focus(e EdgeID) (r2.Point, bool)
	IsHorizontal(e EdgeID) bool
	Point(v VertexID) r2.Point
	Incident(v VertexID) EdgeID
	Boundary(f FaceID) EdgeID
	Site(f FaceID) (r2.Point, bool)
	IsLive(f FaceID) bool
	FaceEdges(e EdgeID) ([]EdgeID, error)
	VertexEdges(v VertexID) ([]EdgeID, error)
	Degree(v VertexID) (int, error)
}

// DCEL is the arena holding every vertex, half-edge and face.
type DCEL struct {
	vertices []vertex
	edges    []edge
	faces    []face
}

var _ View = (*DCEL)(nil)

// New returns a DCEL consisting of a single self-loop at p. The loop's edge is
// returned; it bounds the inner face and its twin bounds the outer face.
func New(p r2.Point) (*DCEL, EdgeID) {
	d := &DCEL{}
	e := d.newEdgePair(Straight, r2.Point{})
	t := d.edges[e].twin
	d.setNext(e, e)
	d.setNext(t, t)
	v := d.newVertex(p)
	d.setOrigin(e, v)
	d.setOrigin(t, v)
	d.setFace(e, d.newFace())
	d.setFace(t, d.newFace())
	return d, e
}

// NumVertices returns the number of vertices ever allocated.
func (d *DCEL) NumVertices() int { return len(d.vertices) }

// NumEdges returns the number of half-edges ever allocated.
func (d *DCEL) NumEdges() int { return len(d.edges) }

func (d *DCEL) Origin(e EdgeID) VertexID { return d.edges[e].origin }
func (d *DCEL) Twin(e EdgeID) EdgeID     { return d.edges[e].twin }
func (d *DCEL) Next(e EdgeID) EdgeID     { return d.edges[e].next }
func (d *DCEL) Prev(e EdgeID) EdgeID     { return d.edges[e].prev }
func (d *DCEL) Face(e EdgeID) FaceID     { return d.edges[e].face }
func (d *DCEL) Kind(e EdgeID) Kind       { return d.edges[e].kind }

// IsParabola reports whether e is a beach-line arc.
func (d *DCEL) IsParabola(e EdgeID) bool { return d.edges[e].kind == Parabola }

// Focus returns the focus of a parabola edge.
func (d *DCEL) Focus(e EdgeID) (r2.Point, bool) {
	if d.edges[e].kind != Parabola {
		return r2.Point{}, false
	}
	return d.edges[e].focus, true
}

// IsHorizontal reports whether e is flagged as a horizontal border.
func (d *DCEL) IsHorizontal(e EdgeID) bool { return d.edges[e].horizontal }

// SetHorizontal flags e and its twin as horizontal or not.
func (d *DCEL) SetHorizontal(e EdgeID, h bool) {
	d.edges[e].horizontal = h
	d.edges[d.edges[e].twin].horizontal = h
}

// Point returns the position of v.
func (d *DCEL) Point(v VertexID) r2.Point { return d.vertices[v].p }

// SetPoint moves v to p without changing topology.
func (d *DCEL) SetPoint(v VertexID, p r2.Point) { d.vertices[v].p = p }

// Incident returns an edge with origin v, or NoEdge once v has been collapsed.
func (d *DCEL) Incident(v VertexID) EdgeID { return d.vertices[v].incident }

// Boundary returns an edge on the boundary of f, or NoEdge once f is dead.
func (d *DCEL) Boundary(f FaceID) EdgeID { return d.faces[f].boundary }

// Site returns the point contained in f, if any.
func (d *DCEL) Site(f FaceID) (r2.Point, bool) {
	return d.faces[f].site, d.faces[f].hasSite
}

// SetSite records p as the point contained in f.
func (d *DCEL) SetSite(f FaceID, p r2.Point) {
	d.faces[f].site = p
	d.faces[f].hasSite = true
}

// ClearSite removes the contained point of f.
func (d *DCEL) ClearSite(f FaceID) {
	d.faces[f].site = r2.Point{}
	d.faces[f].hasSite = false
}

// IsLive reports whether f has not been dissolved.
func (d *DCEL) IsLive(f FaceID) bool { return d.faces[f].live }

// FaceEdges returns the boundary cycle of e's face starting at e.
func (d *DCEL) FaceEdges(e EdgeID) ([]EdgeID, error) {
	var out []EdgeID
	it := e
	for {
		out = append(out, it)
		it = d.edges[it].next
		if it == e {
			return out, nil
		}
		if it == NoEdge || len(out) > len(d.edges) {
			return nil, errors.Wrapf(ErrInvariant, "face cycle from edge %d does not close", e)
		}
	}
}

// VertexEdges returns the edges with origin v, starting at its incident edge
// and following Twin then Next.
func (d *DCEL) VertexEdges(v VertexID) ([]EdgeID, error) {
	start := d.vertices[v].incident
	if start == NoEdge {
		return nil, errors.Wrapf(ErrInvalidArgument, "vertex %d has no incident edge", v)
	}
	var out []EdgeID
	it := start
	for {
		out = append(out, it)
		tw := d.edges[it].twin
		if tw == NoEdge {
			return nil, errors.Wrapf(ErrInvariant, "edge %d around vertex %d has no twin", it, v)
		}
		it = d.edges[tw].next
		if it == start {
			return out, nil
		}
		if it == NoEdge || len(out) > len(d.edges) {
			return nil, errors.Wrapf(ErrInvariant, "too many edges around vertex %d", v)
		}
	}
}

// Degree returns the number of edges with origin v.
func (d *DCEL) Degree(v VertexID) (int, error) {
	around, err := d.VertexEdges(v)
	if err != nil {
		return 0, err
	}
	return len(around), nil
}

func (d *DCEL) checkEdge(e EdgeID) error {
	if e < 0 || int(e) >= len(d.edges) {
		return errors.Wrapf(ErrInvalidArgument, "edge %d out of range [0 %d)", e, len(d.edges))
	}
	return nil
}

func (d *DCEL) newVertex(p r2.Point) VertexID {
	d.vertices = append(d.vertices, vertex{p: p, incident: NoEdge})
	return VertexID(len(d.vertices) - 1)
}

func (d *DCEL) newFace() FaceID {
	d.faces = append(d.faces, face{boundary: NoEdge, live: true})
	return FaceID(len(d.faces) - 1)
}

func (d *DCEL) newEdgePair(kind Kind, focus r2.Point) EdgeID {
	e := EdgeID(len(d.edges))
	half := edge{origin: NoVertex, next: NoEdge, prev: NoEdge, face: NoFace, kind: kind, focus: focus}
	a, b := half, half
	a.twin, b.twin = e+1, e
	d.edges = append(d.edges, a, b)
	return e
}

func (d *DCEL) setOrigin(e EdgeID, v VertexID) {
	d.edges[e].origin = v
	d.vertices[v].incident = e
}

func (d *DCEL) setNext(e, n EdgeID) {
	d.edges[e].next = n
	d.edges[n].prev = e
}

func (d *DCEL) setPrev(e, p EdgeID) {
	d.edges[e].prev = p
	d.edges[p].next = e
}

func (d *DCEL) setFace(e EdgeID, f FaceID) {
	d.edges[e].face = f
	d.faces[f].boundary = e
}

func (d *DCEL) insertSuccessor(e, s EdgeID) {
	d.setNext(s, d.edges[e].next)
	d.setNext(e, s)
}

func (d *DCEL) insertPredecessor(e, p EdgeID) {
	d.setPrev(p, d.edges[e].prev)
	d.setPrev(e, p)
}

func (d *DCEL) unlink(e EdgeID) {
	d.setNext(d.edges[e].prev, d.edges[e].next)
}
