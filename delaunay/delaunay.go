// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunay triangulates planar point sets by lifting them onto a
// paraboloid and keeping the lower faces of the convex hull.
package delaunay

import (
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
	"github.com/pkg/errors"
)

const (
	defaultEps = 1e-12
	// flatTol is the smallest downward tilt, relative to the face normal, of a
	// face kept as a triangle.
	flatTol = 1e-9
)

type Triangulation struct {
	Vertices []r2.Point
	// NOTE: Sorted CCW with y pointing up.
	Triangles [][3]int
	// NOTE: Sorted CCW per vertex; fans of hull vertices start next to the outside.
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
}

func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

// Edges returns every triangulation edge once, as an ordered vertex pair with
// the smaller index first, sorted.
func (dt *Triangulation) Edges() [][2]int {
	var out [][2]int
	for _, t := range dt.Triangles {
		for j := range 3 {
			a, b := t[j], t[(j+1)%3]
			out = append(out, [2]int{min(a, b), max(a, b)})
		}
	}
	slices.SortFunc(out, func(x, y [2]int) int {
		if x[0] != y[0] {
			return x[0] - y[0]
		}
		return x[1] - y[1]
	})
	return slices.Compact(out)
}

type TriangulationOptions struct {
	Eps float64
}

type TriangulationOption func(*TriangulationOptions) error

func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 {
			return errors.New("WithEps: eps must be positive")
		}
		o.Eps = eps
		return nil
	}
}

func NewTriangulation(vertices []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := len(vertices)
	if numVertices < 3 {
		return nil,
			errors.New("delaunay: insufficient vertices for triangulation (minimum 3 required)")
	}
	seen := make(map[r2.Point]struct{}, numVertices)
	for i, p := range vertices {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, errors.Errorf("delaunay: vertex %d is not finite", i)
		}
		if _, ok := seen[p]; ok {
			return nil, errors.Errorf("delaunay: vertex %d is a duplicate", i)
		}
		seen[p] = struct{}{}
	}

	dt := &Triangulation{
		Vertices:                vertices,
		Triangles:               lowerHull(vertices, opts.Eps),
		IncidentTriangleOffsets: make([]int, numVertices+1),
	}
	if len(dt.Triangles) == 0 {
		return nil, errors.New("delaunay: all vertices are collinear")
	}

	for _, t := range dt.Triangles {
		for _, v := range t {
			dt.IncidentTriangleOffsets[v+1]++
		}
	}
	for i := range numVertices {
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}
	dt.IncidentTriangleIndices = make([]int, dt.IncidentTriangleOffsets[numVertices])
	nxt := make([]int, numVertices)
	copy(nxt, dt.IncidentTriangleOffsets[:numVertices])
	for i, t := range dt.Triangles {
		for _, v := range t {
			dt.IncidentTriangleIndices[nxt[v]] = i
			nxt[v]++
		}
	}

	for i := range numVertices {
		sortIncidentTriangleIndicesCCW(i, dt.IncidentTriangles(i), dt.Triangles, dt.Vertices)
	}

	return dt, nil
}

// lowerHull returns the CCW triangles of the lower convex hull of the lifted
// vertices. Three vertices need no hull.
func lowerHull(vertices []r2.Point, eps float64) [][3]int {
	if len(vertices) == 3 {
		t := [3]int{0, 1, 2}
		if !sortTriangleVerticesCCW(&t, vertices) {
			return nil
		}
		return [][3]int{t}
	}

	lifted := lift(vertices)
	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, eps)

	var inside r3.Vector
	for _, v := range lifted {
		inside = inside.Add(v)
	}
	inside = inside.Mul(1 / float64(len(lifted)))

	var tris [][3]int
	for i := 0; i+2 < len(ch.Indices); i += 3 {
		t := [3]int{ch.Indices[i], ch.Indices[i+1], ch.Indices[i+2]}
		if !isLowerFace(t, lifted, inside) {
			continue
		}
		if !sortTriangleVerticesCCW(&t, vertices) {
			continue
		}
		tris = append(tris, t)
	}
	return tris
}

// lift maps vertices into the unit square around their center and onto the
// paraboloid z = x² + y².
func lift(vertices []r2.Point) []r3.Vector {
	box := r2.EmptyRect()
	for _, p := range vertices {
		box = box.AddPoint(p)
	}
	c := box.Center()
	scale := math.Max(box.X.Length(), box.Y.Length())
	if scale == 0 {
		scale = 1
	}
	out := make([]r3.Vector, len(vertices))
	for i, p := range vertices {
		x, y := (p.X-c.X)/scale, (p.Y-c.Y)/scale
		out[i] = r3.Vector{X: x, Y: y, Z: x*x + y*y}
	}
	return out
}

func isLowerFace(t [3]int, lifted []r3.Vector, inside r3.Vector) bool {
	a, b, c := lifted[t[0]], lifted[t[1]], lifted[t[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Dot(inside.Sub(a)) > 0 {
		n = n.Mul(-1)
	}
	return n.Z < -flatTol*n.Norm()
}

// sortTriangleVerticesCCW orders t counter-clockwise and reports whether the
// triangle has any area.
func sortTriangleVerticesCCW(t *[3]int, v []r2.Point) bool {
	p0, p1, p2 := v[t[0]], v[t[1]], v[t[2]]
	cross := p1.Sub(p0).Cross(p2.Sub(p0))
	if cross < 0 {
		t[1], t[2] = t[2], t[1]
	}
	return cross != 0
}

func sortIncidentTriangleIndicesCCW(vIdx int, incidentTris []int, tris [][3]int, v []r2.Point) {
	n := len(incidentTris)
	if n < 2 {
		return
	}
	angle := func(tIdx int) float64 {
		t := tris[tIdx]
		c := v[t[0]].Add(v[t[1]]).Add(v[t[2]]).Mul(1.0 / 3).Sub(v[vIdx])
		return math.Atan2(c.Y, c.X)
	}
	slices.SortFunc(incidentTris, func(a, b int) int {
		return cmpFloat(angle(a), angle(b))
	})

	gap, at := -1.0, 0
	for i := range n {
		d := angle(incidentTris[(i+1)%n]) - angle(incidentTris[i])
		if d < 0 {
			d += 2 * math.Pi
		}
		if d > gap {
			gap, at = d, (i+1)%n
		}
	}
	rotated := append(slices.Clone(incidentTris[at:]), incidentTris[:at]...)
	copy(incidentTris, rotated)
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}
