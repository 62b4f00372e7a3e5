// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"image/color"

	"github.com/golang/geo/r2"
	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dkit"
)

var (
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	edgeColor = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	beachCol  = color.RGBA{B: 200, A: 255}
	sweepCol  = color.RGBA{R: 200, A: 255}
	circleCol = color.RGBA{G: 160, A: 150}
	siteCol   = color.RGBA{R: 255, A: 255}
)

// paint draws snap onto any draw2d backend.
func paint(gc draw2d.GraphicContext, p projection, snap Snapshot, style Style) {
	gc.SetFillColor(white)
	draw2dkit.Rectangle(gc, 0, 0, float64(p.w), float64(p.h))
	gc.Fill()

	gc.SetLineWidth(1)
	gc.SetStrokeColor(white)
	for _, c := range snap.Cells {
		poly := c.Polygon
		if style.Inset > 0 {
			if poly = Inset(poly, style.Inset); poly == nil {
				continue
			}
		}
		gc.SetFillColor(Hue(c.Site))
		p.path(gc, poly)
		gc.Close()
		gc.FillStroke()
	}

	gc.SetStrokeColor(edgeColor)
	for _, e := range snap.Edges {
		p.path(gc, []r2.Point{e.Start, e.End})
		gc.Stroke()
	}

	gc.SetLineWidth(1.5)
	gc.SetStrokeColor(beachCol)
	for _, b := range snap.Beach {
		p.path(gc, b)
		gc.Stroke()
	}

	gc.SetLineWidth(1)
	gc.SetStrokeColor(circleCol)
	for _, c := range snap.Circles {
		x, y := p.xy(c.Center)
		gc.BeginPath()
		draw2dkit.Circle(gc, x, y, c.Radius*p.scale)
		gc.Stroke()
	}

	if snap.SweepY != nil {
		_, y := p.xy(r2.Point{Y: *snap.SweepY})
		gc.SetStrokeColor(sweepCol)
		gc.BeginPath()
		gc.MoveTo(0, y)
		gc.LineTo(float64(p.w), y)
		gc.Stroke()
	}

	gc.SetFillColor(siteCol)
	for _, s := range snap.Sites {
		x, y := p.xy(s)
		gc.BeginPath()
		draw2dkit.Circle(gc, x, y, float64(style.SiteRadius))
		gc.Fill()
	}
}

func (p projection) path(gc draw2d.GraphicContext, pts []r2.Point) {
	gc.BeginPath()
	for i, q := range pts {
		x, y := p.xy(q)
		if i == 0 {
			gc.MoveTo(x, y)
		} else {
			gc.LineTo(x, y)
		}
	}
}
