// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"context"

	"github.com/etillison3350/FortunesAlgorithm/dcel"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Diagram is a finished Voronoi diagram flattened into index arrays. Cell i
// belongs to Sites[i].
type Diagram struct {
	Bounds   r2.Rect
	Sites    []r2.Point
	Vertices []r2.Point

	// NOTE: Sorted CCW per cell with y pointing up.
	CellVertices []int
	// NOTE: Entry j of a cell is the cell across the edge from vertex j to
	// vertex j+1, or -1 where that edge lies on the bounds.
	CellNeighbors []int
	CellOffsets   []int

	setters []Option
}

// NewDiagram runs a full sweep over points inside bounds.
func NewDiagram(points []r2.Point, bounds r2.Rect, setters ...Option) (*Diagram, error) {
	s, err := New(points, bounds, setters...)
	if err != nil {
		return nil, err
	}
	if err := s.Run(context.Background()); err != nil {
		return nil, err
	}
	d, err := s.Diagram()
	if err != nil {
		return nil, err
	}
	d.setters = setters
	return d, nil
}

// Diagram flattens a finished sweep.
func (s *Sweep) Diagram() (*Diagram, error) {
	if !s.Done() {
		return nil, errors.New("Diagram: sweep is not done")
	}

	cells := make([][]dcel.EdgeID, len(s.points))
	for _, f := range s.g.Faces() {
		p, ok := s.g.Site(f)
		if !ok {
			continue
		}
		i, ok := s.index[p]
		if !ok {
			return nil, errors.Wrapf(dcel.ErrInvariant, "Diagram: face %d holds unknown site %v", f, p)
		}
		if cells[i] != nil {
			return nil, errors.Wrapf(dcel.ErrInvariant, "Diagram: site %d has two faces", i)
		}
		cycle, err := s.g.FaceEdges(s.g.Boundary(f))
		if err != nil {
			return nil, errors.Wrapf(err, "Diagram: face %d", f)
		}
		cells[i] = cycle
	}

	d := &Diagram{
		Bounds:      s.bounds,
		Sites:       s.Points(),
		CellOffsets: make([]int, len(s.points)+1),
	}
	vertexIndex := make(map[dcel.VertexID]int)
	for i, cycle := range cells {
		if cycle == nil {
			return nil, errors.Wrapf(dcel.ErrInvariant, "Diagram: site %d has no face", i)
		}
		for _, c := range s.orientCCW(cycle) {
			vi, ok := vertexIndex[c.v]
			if !ok {
				vi = len(d.Vertices)
				vertexIndex[c.v] = vi
				d.Vertices = append(d.Vertices, s.g.Point(c.v))
			}
			d.CellVertices = append(d.CellVertices, vi)
			d.CellNeighbors = append(d.CellNeighbors, s.cellAcross(c.e))
		}
		d.CellOffsets[i+1] = len(d.CellVertices)
	}
	return d, nil
}

type corner struct {
	v dcel.VertexID
	e dcel.EdgeID
}

// orientCCW pairs every vertex of a face cycle with the edge leaving it and
// reverses the walk if the cycle turns clockwise.
func (s *Sweep) orientCCW(cycle []dcel.EdgeID) []corner {
	n := len(cycle)
	out := make([]corner, n)
	pts := make([]r2.Point, n)
	for i, e := range cycle {
		out[i] = corner{v: s.g.Origin(e), e: e}
		pts[i] = s.g.Point(out[i].v)
	}
	if signedArea(pts) >= 0 {
		return out
	}
	for k := range n {
		e := cycle[n-1-k]
		out[k] = corner{v: s.g.Origin(s.g.Twin(e)), e: e}
	}
	return out
}

func (s *Sweep) cellAcross(e dcel.EdgeID) int {
	p, ok := s.g.Site(s.g.Face(s.g.Twin(e)))
	if !ok {
		return -1
	}
	if i, ok := s.index[p]; ok {
		return i
	}
	return -1
}

// NumCells returns the number of cells, which equals the number of sites.
func (d *Diagram) NumCells() int {
	return len(d.Sites)
}

// Cell returns the cell at the specified index.
// It returns an error if the index is out of range.
func (d *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= d.NumCells() {
		return Cell{}, errors.Errorf("Cell: index %d out of range [0 %d)", i, d.NumCells())
	}
	return Cell{idx: i, d: d}, nil
}

// Area returns the summed area of all cells.
func (d *Diagram) Area() float64 {
	var sum float64
	for i := range d.NumCells() {
		sum += Cell{idx: i, d: d}.Area()
	}
	return sum
}

// Relax applies steps rounds of Lloyd relaxation, moving every site to the
// centroid of its cell and recomputing the diagram.
func (d *Diagram) Relax(steps int) error {
	for range steps {
		sites := make([]r2.Point, d.NumCells())
		for i := range sites {
			sites[i] = Cell{idx: i, d: d}.Centroid()
		}
		nd, err := NewDiagram(sites, d.Bounds, d.setters...)
		if err != nil {
			return errors.WithMessage(err, "Relax")
		}
		*d = *nd
	}
	return nil
}

func signedArea(pts []r2.Point) float64 {
	var sum float64
	for i, p := range pts {
		sum += p.Cross(pts[(i+1)%len(pts)])
	}
	return sum / 2
}
