// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"fmt"
	"math"
	"testing"

	"github.com/etillison3350/FortunesAlgorithm/delaunay"
	"github.com/etillison3350/FortunesAlgorithm/utils"
	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Diagram

func TestNewDiagram_WithEps(t *testing.T) {
	points := utils.GenerateRandomPoints(10, testBounds, 0)
	tests := []struct {
		name    string
		eps     float64
		wantErr bool
	}{
		{"eps positive small", 1e-6, false},
		{"eps zero", 0, true},
		{"eps negative", -0.01, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDiagram(points, testBounds, WithEps(tt.eps))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewDiagram(..., WithEps(%v)) error = %v, wantErr %v", tt.eps, err, tt.wantErr)
			}
		})
	}
}

func TestNewDiagram_Properties(t *testing.T) {
	diagonal := make([]r2.Point, 9)
	for i := range diagonal {
		diagonal[i] = r2.Point{X: 10 * float64(i+1), Y: 6 * float64(i+1)}
	}
	tests := []struct {
		name   string
		points []r2.Point
	}{
		{"two", utils.GenerateRandomPoints(2, testBounds, 1)},
		{"small", utils.GenerateRandomPoints(10, testBounds, 2)},
		{"medium", utils.GenerateRandomPoints(300, testBounds, 3)},
		{"grid", utils.GenerateGridPoints(5, 3, testBounds)},
		{"square grid", utils.GenerateGridPoints(6, 6, testBounds)},
		{"row", utils.GenerateGridPoints(7, 1, testBounds)},
		{"column", utils.GenerateGridPoints(1, 7, testBounds)},
		{"diagonal", diagonal},
		{"same height", []r2.Point{{X: 25, Y: 25}, {X: 35, Y: 5}, {X: 45, Y: 25}, {X: 65, Y: 25}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vd, err := NewDiagram(tt.points, testBounds, WithValidation(true))
			if err != nil {
				t.Fatalf("NewDiagram(...) error = %v, want nil", err)
			}
			checkDiagram(t, vd)
		})
	}
}

func TestNewDiagram_Bounds(t *testing.T) {
	tall := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 100})
	wide := r2.RectFromPoints(r2.Point{X: -1000, Y: -3}, r2.Point{X: 1000, Y: 3})
	square := r2.RectFromPoints(r2.Point{X: -5, Y: -5}, r2.Point{X: 15, Y: 15})
	negative := r2.RectFromPoints(r2.Point{X: -50, Y: -80}, r2.Point{X: -10, Y: -20})
	tests := []struct {
		name   string
		bounds r2.Rect
		points []r2.Point
	}{
		{"tall", tall, utils.GenerateRandomPoints(100, tall, 1013)},
		{"tall grid", tall, utils.GenerateGridPoints(3, 12, tall)},
		{"wide seed 23", wide, utils.GenerateRandomPoints(100, wide, 23)},
		{"wide seed 55", wide, utils.GenerateRandomPoints(100, wide, 55)},
		{"square", square, utils.GenerateRandomPoints(60, square, 7)},
		{"square two", square, []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}},
		{"square three", square, []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}}},
		{"negative", negative, utils.GenerateRandomPoints(80, negative, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vd, err := NewDiagram(tt.points, tt.bounds, WithValidation(true))
			if err != nil {
				t.Fatalf("NewDiagram(...) error = %v, want nil", err)
			}
			checkDiagram(t, vd)
		})
	}
}

func TestNewDiagram_SquareThreeSites(t *testing.T) {
	square := r2.RectFromPoints(r2.Point{X: -5, Y: -5}, r2.Point{X: 15, Y: 15})
	points := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}}
	vd, err := NewDiagram(points, square, WithValidation(true))
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}

	want := r2.Point{X: 5, Y: 3.75}
	found := false
	for _, v := range vd.Vertices {
		if v.Sub(want).Norm() < 1e-6 {
			found = true
		}
	}
	if !found {
		t.Errorf("vd.Vertices = %v, want to contain %v", vd.Vertices, want)
	}

	// Every vertex off the border lies on a bisector of the sites.
	for _, v := range vd.Vertices {
		if onBorder(square, v) {
			continue
		}
		if v.Sub(want).Norm() < 1e-6 {
			continue
		}
		t.Errorf("vertex %v is neither on the border nor the circumcenter", v)
	}
}

func TestDiagram_Invariants(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"minimal", 1},
		{"small", 10},
		{"medium", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vd := mustNewDiagram(t, tt.size)

			if got := len(vd.Sites); got != tt.size {
				t.Errorf("vd.Sites count = %v, want %v", got, tt.size)
			}
			if got := vd.NumCells(); got != len(vd.Sites) {
				t.Errorf("vd.NumCells() = %v, want %v", got, len(vd.Sites))
			}
			if got := len(vd.CellOffsets); got != tt.size+1 {
				t.Errorf("len(vd.CellOffsets) = %v, want %v", got, tt.size+1)
			}
			if len(vd.CellVertices) != len(vd.CellNeighbors) {
				t.Errorf("len(vd.CellVertices) = %v, len(vd.CellNeighbors) = %v, want equal",
					len(vd.CellVertices), len(vd.CellNeighbors))
			}
			checkDiagram(t, vd)
		})
	}
}

func TestNewDiagram_TwoSites(t *testing.T) {
	vd, err := NewDiagram([]r2.Point{{X: 30, Y: 30}, {X: 70, Y: 30}}, testBounds)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}
	for i := range vd.NumCells() {
		c, _ := vd.Cell(i)
		if got := c.Area(); math.Abs(got-3000) > 1e-6 {
			t.Errorf("cell %d area = %v, want 3000", i, got)
		}
		for _, p := range c.Polygon() {
			if p.X != 50 && p.X != 0 && p.X != 100 {
				t.Errorf("cell %d vertex %v is off the bisector and bounds", i, p)
			}
		}
	}
}

func TestNewDiagram_ThreeSites(t *testing.T) {
	points := []r2.Point{{X: 20, Y: 40}, {X: 80, Y: 40}, {X: 50, Y: 10}}
	vd, err := NewDiagram(points, testBounds, WithValidation(true))
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}

	// Circumcenter of the three sites.
	want := r2.Point{X: 50, Y: 40}
	found := false
	for _, v := range vd.Vertices {
		if v.Sub(want).Norm() < 1e-6 {
			found = true
		}
	}
	if !found {
		t.Errorf("vd.Vertices = %v, want to contain %v", vd.Vertices, want)
	}

	for i := range vd.NumCells() {
		c, _ := vd.Cell(i)
		got := map[int]bool{}
		for _, n := range c.NeighborIndices() {
			if n >= 0 {
				got[n] = true
			}
		}
		if len(got) != 2 || got[i] {
			t.Errorf("cell %d neighbors = %v, want the two other cells", i, c.NeighborIndices())
		}
	}
}

func TestNewDiagram_Determinism(t *testing.T) {
	points := utils.GenerateRandomPoints(200, testBounds, 11)
	a, err := NewDiagram(points, testBounds)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}
	b, err := NewDiagram(points, testBounds)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff(a, b, cmpopts.IgnoreUnexported(Diagram{})); diff != "" {
		t.Errorf("NewDiagram(...) is not deterministic (-first +second):\n%s", diff)
	}
}

func TestNewDiagram_DelaunayDual(t *testing.T) {
	points := utils.GenerateRandomPoints(200, testBounds, 5)
	vd, err := NewDiagram(points, testBounds)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}
	dt, err := delaunay.NewTriangulation(points)
	if err != nil {
		t.Fatalf("delaunay.NewTriangulation(...) error = %v, want nil", err)
	}

	edges := make(map[[2]int]bool)
	for _, e := range dt.Edges() {
		edges[e] = true
	}
	// Clipping may hide Delaunay edges between hull sites but never adds any.
	for i := range vd.NumCells() {
		c, _ := vd.Cell(i)
		for _, n := range c.NeighborIndices() {
			if n < 0 {
				continue
			}
			if !edges[[2]int{min(i, n), max(i, n)}] {
				t.Errorf("cells %d and %d are neighbors but not a Delaunay edge", i, n)
			}
		}
	}
}

func TestDiagram_Cell(t *testing.T) {
	vd := mustNewDiagram(t, 10)
	for _, i := range []int{-1, vd.NumCells()} {
		if _, err := vd.Cell(i); err == nil {
			t.Errorf("vd.Cell(%d) error = nil, want non-nil", i)
		}
	}
}

func TestDiagram_Relax(t *testing.T) {
	vd := mustNewDiagram(t, 50)
	before := centroidDistance(t, vd)
	if err := vd.Relax(5); err != nil {
		t.Fatalf("vd.Relax(5) error = %v, want nil", err)
	}
	checkDiagram(t, vd)
	if after := centroidDistance(t, vd); after >= before {
		t.Errorf("site to centroid distance after Relax = %v, want below %v", after, before)
	}
}

// Benchmarks

func BenchmarkNewDiagram(b *testing.B) {
	sizes := []int{1e+2, 1e+3, 1e+4}
	for _, pointsCnt := range sizes {
		b.Run(fmt.Sprintf("N%d", pointsCnt), func(b *testing.B) {
			points := utils.GenerateRandomPoints(pointsCnt, testBounds, 0)

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				_, err := NewDiagram(points, testBounds)
				if err != nil {
					b.Fatalf("NewDiagram(...) error = %v, want nil", err)
				}
			}
		})
	}
}

// Helpers

func mustNewDiagram(t *testing.T, n int) *Diagram {
	t.Helper()
	points := utils.GenerateRandomPoints(n, testBounds, 0)
	vd, err := NewDiagram(points, testBounds)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}
	return vd
}

// checkDiagram verifies that the cells tile the bounds and that every cell
// vertex is closest to its own site.
func checkDiagram(t *testing.T, vd *Diagram) {
	t.Helper()
	const eps = 1e-6

	total := vd.Bounds.X.Length() * vd.Bounds.Y.Length()
	if got := vd.Area(); math.Abs(got-total) > eps*total {
		t.Errorf("vd.Area() = %v, want %v", got, total)
	}

	for i := range vd.NumCells() {
		c, err := vd.Cell(i)
		if err != nil {
			t.Fatalf("vd.Cell(%d) error = %v, want nil", i, err)
		}
		if c.Area() <= 0 {
			t.Errorf("cell %d area = %v, want positive", i, c.Area())
		}

		site := c.Site()
		poly := c.Polygon()
		for j, p := range poly {
			if !vd.Bounds.ExpandedByMargin(eps).ContainsPoint(p) {
				t.Errorf("cell %d vertex %v outside bounds", i, p)
			}
			d := p.Sub(site).Norm()
			for k, q := range vd.Sites {
				if k != i && p.Sub(q).Norm() < d-eps*math.Max(1, d) {
					t.Errorf("cell %d vertex %v is closer to site %d than to its own", i, p, k)
				}
			}
			n := poly[(j+1)%len(poly)]
			if p.Sub(site).Cross(n.Sub(site)) <= 0 {
				t.Errorf("cell %d vertices %d,%d not sorted in CCW around the site", i, j, (j+1)%len(poly))
			}
		}

		for _, n := range c.NeighborIndices() {
			if n < 0 {
				continue
			}
			nc, err := vd.Cell(n)
			if err != nil {
				t.Fatalf("vd.Cell(%d) error = %v, want nil", n, err)
			}
			back := false
			for _, m := range nc.NeighborIndices() {
				back = back || m == i
			}
			if !back {
				t.Errorf("cell %d lists %d as a neighbor but not the other way around", i, n)
			}
		}
	}
}

func onBorder(b r2.Rect, p r2.Point) bool {
	const eps = 1e-9
	return math.Abs(p.X-b.X.Lo) < eps || math.Abs(p.X-b.X.Hi) < eps ||
		math.Abs(p.Y-b.Y.Lo) < eps || math.Abs(p.Y-b.Y.Hi) < eps
}

func centroidDistance(t *testing.T, vd *Diagram) float64 {
	t.Helper()
	var sum float64
	for i := range vd.NumCells() {
		c, err := vd.Cell(i)
		if err != nil {
			t.Fatalf("vd.Cell(%d) error = %v, want nil", i, err)
		}
		sum += c.Centroid().Sub(c.Site()).Norm()
	}
	return sum
}
