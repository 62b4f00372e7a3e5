// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"container/heap"
	"math"
	"slices"

	"github.com/etillison3350/FortunesAlgorithm/geom"
	"github.com/golang/geo/r2"
)

type collapse struct {
	edge    int
	radius  float64
	version int
}

type collapseHeap []collapse

func (h collapseHeap) Len() int           { return len(h) }
func (h collapseHeap) Less(i, j int) bool { return h[i].radius < h[j].radius }
func (h collapseHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *collapseHeap) Push(x any) {
	*h = append(*h, x.(collapse))
}

func (h *collapseHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Inset returns poly shrunk by d. Edges that vanish before the offset reaches
// d are dropped, smallest first, and the remaining offset lines are
// intersected in order. The result keeps the orientation of poly. It is nil
// when fewer than three edges survive.
func Inset(poly []r2.Point, d float64) []r2.Point {
	n := len(poly)
	if n < 3 {
		return nil
	}
	if d <= 0 {
		return slices.Clone(poly)
	}

	cw := polygonArea(poly) < 0
	pts := slices.Clone(poly)
	if cw {
		slices.Reverse(pts)
	}

	lines := make([]geom.Line, n)
	for i := range n {
		lines[i] = geom.Line{Start: pts[i], End: pts[(i+1)%n]}
	}
	prev := make([]int, n)
	next := make([]int, n)
	version := make([]int, n)
	for i := range n {
		prev[i] = (i + n - 1) % n
		next[i] = (i + 1) % n
	}

	radius := func(i int) float64 {
		c := geom.CircleTangentToLines(lines[prev[i]], lines[i], lines[next[i]])
		if math.IsNaN(c.Radius) {
			return math.Inf(1)
		}
		return c.Radius
	}

	h := make(collapseHeap, 0, n)
	for i := range n {
		h = append(h, collapse{edge: i, radius: radius(i)})
	}
	heap.Init(&h)

	alive := n
	for h.Len() > 0 && alive >= 3 {
		c := heap.Pop(&h).(collapse)
		if c.version != version[c.edge] {
			continue
		}
		if c.radius >= d {
			break
		}
		p, q := prev[c.edge], next[c.edge]
		next[p], prev[q] = q, p
		version[c.edge] = -1
		alive--
		if alive < 3 {
			break
		}
		for _, e := range [2]int{p, q} {
			version[e]++
			heap.Push(&h, collapse{edge: e, radius: radius(e), version: version[e]})
		}
	}
	if alive < 3 {
		return nil
	}

	start := 0
	for version[start] < 0 {
		start++
	}
	out := make([]r2.Point, 0, alive)
	for e := start; ; {
		out = append(out, geom.OffsetIntersection(lines[prev[e]], lines[e], -d))
		if e = next[e]; e == start {
			break
		}
	}
	if cw {
		slices.Reverse(out)
	}
	return out
}

func polygonArea(pts []r2.Point) float64 {
	var sum float64
	for i, p := range pts {
		sum += p.Cross(pts[(i+1)%len(pts)])
	}
	return sum / 2
}
