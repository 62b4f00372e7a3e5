// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating point sets for Voronoi diagrams.

package utils

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// margin keeps generated points off the bounds, as a fraction of each side.
const margin = 1e-3

// GenerateRandomPoints generates random points strictly inside bounds.
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, bounds r2.Rect, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	sites := make([]r2.Point, cnt)

	for i := range cnt {
		sites[i] = r2.Point{
			X: inside(bounds.X.Lo, bounds.X.Length(), random.Float64()),
			Y: inside(bounds.Y.Lo, bounds.Y.Length(), random.Float64()),
		}
	}

	return sites
}

// GenerateGridPoints generates a cols by rows lattice centered in bounds, one
// point per grid cell. Lattices are full of collinear and cocircular points.
func GenerateGridPoints(cols, rows int, bounds r2.Rect) []r2.Point {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	dx := bounds.X.Length() / float64(cols)
	dy := bounds.Y.Length() / float64(rows)
	sites := make([]r2.Point, 0, cols*rows)
	for j := range rows {
		for i := range cols {
			sites = append(sites, r2.Point{
				X: bounds.X.Lo + (float64(i)+0.5)*dx,
				Y: bounds.Y.Lo + (float64(j)+0.5)*dy,
			})
		}
	}
	return sites
}

func inside(lo, length, f float64) float64 {
	return lo + (margin+f*(1-2*margin))*length
}
