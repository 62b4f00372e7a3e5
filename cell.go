// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Cell represents a Voronoi cell. It is a view structure for accessing a cell in a Diagram.
// The cell's index corresponds to the index of its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

// SiteIndex returns the index of the site in the Diagram's Sites.
func (c Cell) SiteIndex() int {
	return c.idx
}

// Site returns the site point of the cell.
func (c Cell) Site() r2.Point {
	return c.d.Sites[c.idx]
}

// NumVertices returns the number of vertices in the cell.
// This equals the number of neighbors.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// VertexIndices returns the indices of the vertices that form the cell in the Diagram's Vertices,
// sorted in counter-clockwise order with y pointing up.
func (c Cell) VertexIndices() []int {
	return c.d.CellVertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Vertex returns the vertex at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, errors.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[c.d.CellVertices[start+i]], nil
}

// Polygon returns the cell's vertices in order.
func (c Cell) Polygon() []r2.Point {
	idx := c.VertexIndices()
	out := make([]r2.Point, len(idx))
	for i, v := range idx {
		out[i] = c.d.Vertices[v]
	}
	return out
}

// NumNeighbors returns the number of neighbor slots of the cell, border edges included.
// This equals the number of vertices.
func (c Cell) NumNeighbors() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// NeighborIndices returns, for every edge of the cell, the index of the cell across it
// or -1 for an edge on the bounds.
func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Neighbor returns the neighboring cell across edge i.
// It returns an error if the index is out of range or the edge lies on the bounds.
func (c Cell) Neighbor(i int) (Cell, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, errors.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	n := c.d.CellNeighbors[start+i]
	if n < 0 {
		return Cell{}, errors.Errorf("Neighbor: edge %d of cell %d lies on the bounds", i, c.idx)
	}
	return c.d.Cell(n)
}

// Area returns the area of the cell.
func (c Cell) Area() float64 {
	return signedArea(c.Polygon())
}

// Centroid returns the center of mass of the cell.
func (c Cell) Centroid() r2.Point {
	pts := c.Polygon()
	var a, cx, cy float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		w := p.Cross(q)
		a += w
		cx += (p.X + q.X) * w
		cy += (p.Y + q.Y) * w
	}
	if a == 0 {
		return c.Site()
	}
	return r2.Point{X: cx / (3 * a), Y: cy / (3 * a)}
}
