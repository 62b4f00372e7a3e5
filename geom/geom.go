// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package geom provides the closed-form planar formulas used by the sweep:
// beach-line parabolas under a moving directrix, circle centers and offset lines.
//
// Functions never fail. Degenerate input propagates NaN or ±Inf to the caller.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Line is a directed segment from Start to End.
type Line struct {
	Start, End r2.Point
}

// Length returns the distance between Start and End.
func (l Line) Length() float64 {
	return l.End.Sub(l.Start).Norm()
}

// Circle is a circle with a center and radius.
type Circle struct {
	Center r2.Point
	Radius float64
}

// ParabolaY returns the height at x of the parabola with the given focus and
// horizontal directrix y = h.
func ParabolaY(x float64, focus r2.Point, h float64) float64 {
	dx := x - focus.X
	return 0.5 * (dx*dx/(focus.Y-h) + focus.Y + h)
}

// ParabolasIntersectionX returns the x-coordinate of the breakpoint between the
// parabolas with foci a and b and directrix y = h. Of the two roots it picks the
// one where a's arc lies on the greater-x side, which is the order arcs appear
// along the beach face boundary.
func ParabolasIntersectionX(a, b r2.Point, h float64) float64 {
	xl, yl := a.X, a.Y
	xr, yr := b.X, b.Y
	if yl == yr {
		return 0.5 * (xl + xr)
	}

	det := math.Sqrt((yl - h) * (yr - h) * ((xl-xr)*(xl-xr) + (yl-yr)*(yl-yr)))
	nb := xr*(yl-h) - xl*(yr-h)
	return (nb + det) / (yl - yr)
}

// ParabolaHorizontalX returns the x-coordinate where the parabola with the
// given focus and directrix y = h meets the horizontal line at lineY. When
// lineLeft is true the line extends toward smaller x and the smaller root is
// returned. The result is NaN when they do not meet.
func ParabolaHorizontalX(focus r2.Point, lineY, h float64, lineLeft bool) float64 {
	det := math.Sqrt((h - focus.Y) * (h + focus.Y - 2*lineY))
	if lineLeft {
		return focus.X - det
	}
	return focus.X + det
}

// LineHorizontalIntersection returns the point where the line through a and b
// crosses the horizontal line at y.
func LineHorizontalIntersection(a, b r2.Point, y float64) r2.Point {
	return r2.Point{X: (b.X-a.X)/(b.Y-a.Y)*(y-a.Y) + a.X, Y: y}
}

// CircleCenterX returns the x-coordinate of the center of the circle through a
// and b whose center has y-coordinate cy.
func CircleCenterX(a, b r2.Point, cy float64) float64 {
	return 0.5 * ((a.Y*a.Y-b.Y*b.Y-2*cy*(a.Y-b.Y))/(a.X-b.X) + a.X + b.X)
}

// CircleCenterY returns the y-coordinate of the center of the circle through a
// and b whose center has x-coordinate cx.
func CircleCenterY(a, b r2.Point, cx float64) float64 {
	return 0.5 * ((a.X*a.X-b.X*b.X-2*cx*(a.X-b.X))/(a.Y-b.Y) + a.Y + b.Y)
}

// collinearTol bounds the sine of the angle at a below which a, b and c are
// taken as collinear.
const collinearTol = 1e-12

// Circumcenter returns the center of the circle through a, b and c. Points that
// are collinear up to rounding give a NaN center.
func Circumcenter(a, b, c r2.Point) r2.Point {
	ab, ac := b.Sub(a), c.Sub(a)
	if math.Abs(ab.Cross(ac)) <= collinearTol*ab.Norm()*ac.Norm() {
		return r2.Point{X: math.NaN(), Y: math.NaN()}
	}

	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y

	m11 := a.X*b.Y + a.Y*c.X + b.X*c.Y - a.X*c.Y - a.Y*b.X - b.Y*c.X
	m12 := a2*b.Y + a.Y*c2 + b2*c.Y - a2*c.Y - a.Y*b2 - b.Y*c2
	m13 := a2*b.X + a.X*c2 + b2*c.X - a2*c.X - a.X*b2 - b.X*c2

	return r2.Point{X: 0.5 * m12 / m11, Y: -0.5 * m13 / m11}
}

// DistanceOffLine returns the signed perpendicular distance from p to l.
// With y pointing up, points to the right of l are positive.
func DistanceOffLine(l Line, p r2.Point) float64 {
	return ((l.End.X-l.Start.X)*(l.Start.Y-p.Y) - (l.End.Y-l.Start.Y)*(l.Start.X-p.X)) / l.Length()
}

// OffsetIntersection returns the intersection of l1 and l2 after each is
// shifted by d toward the side where DistanceOffLine is positive. In screen
// coordinates, with y pointing down, that is the left side.
func OffsetIntersection(l1, l2 Line, d float64) r2.Point {
	x11, y11 := l1.Start.X, l1.Start.Y
	x12, y12 := l1.End.X, l1.End.Y
	x21, y21 := l2.Start.X, l2.Start.Y
	x22, y22 := l2.End.X, l2.End.Y
	len1 := d * l1.Length()
	len2 := d * l2.Length()

	denom := x21*y11 - x22*y11 - x21*y12 + x22*y12 - x11*y21 + x12*y21 + x11*y22 - x12*y22

	numX := len2*x11 - len2*x12 - len1*x21 + len1*x22 -
		x21*x11*y12 + x22*x11*y12 - x22*x11*y21 + x21*x11*y22 +
		x12*x21*y11 - x12*x22*y11 + x12*x22*y21 - x12*x21*y22
	numY := len2*y11 - len2*y12 - len1*y21 + len1*y22 +
		x12*y21*y11 - x22*y21*y11 - x12*y22*y11 + x21*y22*y11 -
		x11*y12*y21 + x22*y12*y21 + x11*y12*y22 - x21*y12*y22

	return r2.Point{X: numX / denom, Y: numY / denom}
}

// CircleTangentToLines returns the circle tangent to the three lines, on the
// side of each where DistanceOffLine is negative.
func CircleTangentToLines(l1, l2, l3 Line) Circle {
	x1, y1, x2, y2 := l1.Start.X, l1.Start.Y, l1.End.X, l1.End.Y
	x3, y3, x4, y4 := l2.Start.X, l2.Start.Y, l2.End.X, l2.End.Y
	x5, y5, x6, y6 := l3.Start.X, l3.Start.Y, l3.End.X, l3.End.Y
	d12, d34, d56 := l1.Length(), l2.Length(), l3.Length()

	denom := -Determinant3(x1, x3, x5, y1, y3, y5, d12, d34, d56) +
		Determinant3(x1, x3, x5, y2, y4, y6, d12, d34, d56) +
		Determinant3(x2, x4, x6, y1, y3, y5, d12, d34, d56) -
		Determinant3(x2, x4, x6, y2, y4, y6, d12, d34, d56)

	numX := -Determinant3(x1, x3, x5, x2*y1, x4*y3, x6*y5, d12, d34, d56) +
		Determinant3(x1, x3, x5, x1*y2, x3*y4, x5*y6, d12, d34, d56) +
		Determinant3(x2, x4, x6, x2*y1, x4*y3, x6*y5, d12, d34, d56) -
		Determinant3(x2, x4, x6, x1*y2, x3*y4, x5*y6, d12, d34, d56)

	numY := -Determinant3(x1*y2, x3*y4, x5*y6, y1, y3, y5, d12, d34, d56) +
		Determinant3(x1*y2, x3*y4, x5*y6, y2, y4, y6, d12, d34, d56) +
		Determinant3(x2*y1, x4*y3, x6*y5, y1, y3, y5, d12, d34, d56) -
		Determinant3(x2*y1, x4*y3, x6*y5, y2, y4, y6, d12, d34, d56)

	numRad := Determinant3(x1*y2, x3*y4, x5*y6, x1, x3, x5, y1, y3, y5) -
		Determinant3(x1*y2, x3*y4, x5*y6, x1, x3, x5, y2, y4, y6) -
		Determinant3(x1*y2, x3*y4, x5*y6, x2, x4, x6, y1, y3, y5) +
		Determinant3(x1*y2, x3*y4, x5*y6, x2, x4, x6, y2, y4, y6) -
		Determinant3(x2*y1, x4*y3, x6*y5, x1, x3, x5, y1, y3, y5) +
		Determinant3(x2*y1, x4*y3, x6*y5, x1, x3, x5, y2, y4, y6) +
		Determinant3(x2*y1, x4*y3, x6*y5, x2, x4, x6, y1, y3, y5) -
		Determinant3(x2*y1, x4*y3, x6*y5, x2, x4, x6, y2, y4, y6)

	return Circle{
		Center: r2.Point{X: numX / denom, Y: numY / denom},
		Radius: math.Abs(numRad / denom),
	}
}

// Determinant3 returns the determinant of the row-major 3x3 matrix
//
//	a b c
//	d e f
//	g h i
func Determinant3(a, b, c, d, e, f, g, h, i float64) float64 {
	return a*e*i - a*f*h - b*d*i + b*f*g + c*d*h - c*e*g
}

// IsFinite reports whether both coordinates of p are finite.
func IsFinite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
