// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package export converts finished diagrams into interchange formats.
package export

import (
	"io"

	voronoi "github.com/etillison3350/FortunesAlgorithm"
	"github.com/golang/geo/r2"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// Feature property keys.
const (
	PropSite      = "site"
	PropSiteX     = "site_x"
	PropSiteY     = "site_y"
	PropNeighbors = "neighbors"
	PropArea      = "area"
)

// FeatureCollection returns one Polygon feature per cell, in site order. Rings
// are closed and wound counter-clockwise with y pointing up. Neighbors on the
// bounds are listed as -1.
func FeatureCollection(d *voronoi.Diagram) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for i := range d.NumCells() {
		c, err := d.Cell(i)
		if err != nil {
			return nil, errors.Wrap(err, "FeatureCollection")
		}
		poly := c.Polygon()
		if len(poly) < 3 {
			return nil, errors.Errorf("FeatureCollection: cell %d has %d vertices", i, len(poly))
		}

		f := geojson.NewPolygonFeature([][][]float64{ring(poly)})
		site := c.Site()
		f.SetProperty(PropSite, i)
		f.SetProperty(PropSiteX, site.X)
		f.SetProperty(PropSiteY, site.Y)
		f.SetProperty(PropNeighbors, append([]int(nil), c.NeighborIndices()...))
		f.SetProperty(PropArea, c.Area())
		fc.AddFeature(f)
	}
	return fc, nil
}

// Marshal encodes the diagram as a GeoJSON FeatureCollection.
func Marshal(d *voronoi.Diagram) ([]byte, error) {
	fc, err := FeatureCollection(d)
	if err != nil {
		return nil, err
	}
	b, err := fc.MarshalJSON()
	return b, errors.Wrap(err, "Marshal")
}

// Write encodes the diagram to w.
func Write(w io.Writer, d *voronoi.Diagram) error {
	b, err := Marshal(d)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return errors.Wrap(err, "Write")
}

func ring(poly []r2.Point) [][]float64 {
	out := make([][]float64, 0, len(poly)+1)
	for _, p := range poly {
		out = append(out, []float64{p.X, p.Y})
	}
	return append(out, []float64{poly[0].X, poly[0].Y})
}
