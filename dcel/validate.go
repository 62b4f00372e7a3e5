// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dcel

import (
	"fmt"
)

// ViolationKind classifies a failed structural check.
type ViolationKind uint8

const (
	TwinMismatch ViolationKind = iota + 1
	NextPrevMismatch
	FaceMismatch
	OriginMismatch
	DeadFace
	MissingTwin
	OpenCycle
	EulerMismatch
)

var violationNames = map[ViolationKind]string{
	TwinMismatch:     "twin mismatch",
	NextPrevMismatch: "next/prev mismatch",
	FaceMismatch:     "face mismatch",
	OriginMismatch:   "origin mismatch",
	DeadFace:         "dead face",
	MissingTwin:      "missing twin",
	OpenCycle:        "open cycle",
	EulerMismatch:    "euler mismatch",
}

func (k ViolationKind) String() string {
	if s, ok := violationNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ViolationKind(%d)", k)
}

// Violation is one failed check found by Validate.
type Violation struct {
	Kind   ViolationKind
	Edge   EdgeID
	Vertex VertexID
	Face   FaceID
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%v: %s (edge %d, vertex %d, face %d)", v.Kind, v.Detail, v.Edge, v.Vertex, v.Face)
}

// Validate checks the part of the DCEL reachable from faces: twin symmetry,
// next/prev symmetry, face membership of every boundary edge, origins around
// every vertex and the Euler characteristic V - E/2 + F == 2.
func (d *DCEL) Validate(faces []FaceID) []Violation {
	var out []Violation
	add := func(kind ViolationKind, e EdgeID, v VertexID, f FaceID, format string, args ...any) {
		out = append(out, Violation{Kind: kind, Edge: e, Vertex: v, Face: f, Detail: fmt.Sprintf(format, args...)})
	}

	seen := make(map[EdgeID]bool)
	verts := make(map[VertexID]bool)
	for _, f := range faces {
		if !d.faces[f].live || d.faces[f].boundary == NoEdge {
			add(DeadFace, NoEdge, NoVertex, f, "face in list has no boundary")
			continue
		}
		cycle, err := d.FaceEdges(d.faces[f].boundary)
		if err != nil {
			add(OpenCycle, d.faces[f].boundary, NoVertex, f, "%v", err)
			continue
		}
		for _, e := range cycle {
			seen[e] = true
			verts[d.edges[e].origin] = true
			if d.edges[e].face != f {
				add(FaceMismatch, e, NoVertex, f, "edge has face %d", d.edges[e].face)
			}
			switch next := d.edges[e].next; {
			case next == NoEdge:
				add(NextPrevMismatch, e, NoVertex, f, "edge has no next")
			case d.edges[next].prev != e:
				add(NextPrevMismatch, e, NoVertex, f, "next.prev is %d", d.edges[next].prev)
			}
			switch prev := d.edges[e].prev; {
			case prev == NoEdge:
				add(NextPrevMismatch, e, NoVertex, f, "edge has no prev")
			case d.edges[prev].next != e:
				add(NextPrevMismatch, e, NoVertex, f, "prev.next is %d", d.edges[prev].next)
			}
			switch twin := d.edges[e].twin; {
			case twin == NoEdge:
				add(TwinMismatch, e, NoVertex, f, "edge has no twin")
			case d.edges[twin].twin != e:
				add(TwinMismatch, e, NoVertex, f, "twin.twin is %d", d.edges[twin].twin)
			}
		}
	}

	for e := range seen {
		if tw := d.edges[e].twin; tw != NoEdge && !seen[tw] {
			add(MissingTwin, e, NoVertex, d.edges[e].face, "twin %d is not on any listed face", d.edges[e].twin)
		}
	}

	for v := range verts {
		if v == NoVertex {
			add(OriginMismatch, NoEdge, v, NoFace, "edge without origin")
			continue
		}
		around, err := d.VertexEdges(v)
		if err != nil {
			add(OpenCycle, d.vertices[v].incident, v, NoFace, "%v", err)
			continue
		}
		for _, e := range around {
			if d.edges[e].origin != v {
				add(OriginMismatch, e, v, NoFace, "edge has origin %d", d.edges[e].origin)
			}
		}
	}

	if chi := len(verts) - len(seen)/2 + len(faces); chi != 2 {
		add(EulerMismatch, NoEdge, NoVertex, NoFace, "V - E/2 + F = %d - %d + %d = %d",
			len(verts), len(seen)/2, len(faces), chi)
	}
	return out
}
