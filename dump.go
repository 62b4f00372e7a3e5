// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"fmt"
	"strings"

	"github.com/etillison3350/FortunesAlgorithm/dcel"
	"github.com/golang/geo/r2"
)

// Role names the part a beach-line edge or face plays in the sweep.
type Role string

const (
	RoleTopBorder   Role = "top border"
	RoleLeftBorder  Role = "left border"
	RoleRightBorder Role = "right border"
	RoleArc         Role = "arc"
	RoleEdge        Role = "edge"
	RoleBeach       Role = "beach line"
	RoleOutside     Role = "outside"
	RoleCell        Role = "cell"
	RoleEmpty       Role = "empty"
)

// BeachEntry is one edge on the beach face boundary.
type BeachEntry struct {
	Edge   dcel.EdgeID
	Role   Role
	Origin r2.Point
	Focus  r2.Point
	// Breakpoint is the x where this edge meets the next one at the sweep
	// height. It is set only when a height was given.
	Breakpoint *float64
}

// EventEntry is one pending circle event.
type EventEntry struct {
	Event *CircleEvent
	Prev  dcel.EdgeID
	Next  dcel.EdgeID
}

// FaceEntry is one live face.
type FaceEntry struct {
	Face dcel.FaceID
	Role Role
	Site r2.Point
}

// Trace is a snapshot of the sweep state.
type Trace struct {
	SweepY *float64
	Beach  []BeachEntry
	Events []EventEntry
	Faces  []FaceEntry
}

// Dump captures the beach line, the pending circle events and the live faces.
// When sweepY is non-nil each beach edge also gets its breakpoint at that
// height. The beach line is empty once the sweep is done.
func (s *Sweep) Dump(sweepY *float64) Trace {
	tr := Trace{SweepY: sweepY}

	if !s.Done() {
		e := s.top
		for range s.g.NumEdges() {
			be := BeachEntry{
				Edge:   e,
				Role:   s.edgeRole(e),
				Origin: s.g.Point(s.g.Origin(e)),
			}
			be.Focus, _ = s.g.Focus(e)
			if sweepY != nil && e != s.left {
				x := breakpointX(s.g, e, s.g.Next(e), *sweepY)
				be.Breakpoint = &x
			}
			tr.Beach = append(tr.Beach, be)
			if e = s.g.Next(e); e == s.top {
				break
			}
		}
	}

	for _, ev := range s.queue.snapshot() {
		if ce, ok := ev.(*CircleEvent); ok {
			tr.Events = append(tr.Events, EventEntry{Event: ce, Prev: s.g.Prev(ce.Mid), Next: s.g.Next(ce.Mid)})
		}
	}

	outside := s.inf
	if !s.Done() {
		outside = s.g.Face(s.g.Twin(s.top))
	}
	for _, f := range s.g.Faces() {
		fe := FaceEntry{Face: f, Role: RoleEmpty}
		switch p, ok := s.g.Site(f); {
		case f == s.beach && !s.Done():
			fe.Role = RoleBeach
		case f == outside || (f == s.beach && s.Done()):
			fe.Role = RoleOutside
		case ok:
			fe.Role, fe.Site = RoleCell, p
		}
		tr.Faces = append(tr.Faces, fe)
	}
	return tr
}

func (s *Sweep) edgeRole(e dcel.EdgeID) Role {
	switch {
	case e == s.top:
		return RoleTopBorder
	case e == s.left:
		return RoleLeftBorder
	case e == s.right:
		return RoleRightBorder
	case s.g.IsParabola(e):
		return RoleArc
	}
	return RoleEdge
}

func (t Trace) String() string {
	var sb strings.Builder
	if t.SweepY != nil {
		fmt.Fprintf(&sb, "sweep y = %g\n", *t.SweepY)
	}
	sb.WriteString("beach line:\n")
	for _, b := range t.Beach {
		fmt.Fprintf(&sb, "  %4d %-12s from %v", b.Edge, b.Role, b.Origin)
		if b.Role == RoleArc {
			fmt.Fprintf(&sb, " focus %v", b.Focus)
		}
		if b.Breakpoint != nil {
			fmt.Fprintf(&sb, " x = %g", *b.Breakpoint)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("circle events:\n")
	for _, e := range t.Events {
		fmt.Fprintf(&sb, "  %v prev %d mid %d next %d\n", e.Event.Point(), e.Prev, e.Event.Mid, e.Next)
	}
	sb.WriteString("faces:\n")
	for _, f := range t.Faces {
		fmt.Fprintf(&sb, "  %4d %s", f.Face, f.Role)
		if f.Role == RoleCell {
			fmt.Fprintf(&sb, " %v", f.Site)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
