// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestParabolaY(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		focus r2.Point
		h     float64
		want  float64
	}{
		{"apex", 0, r2.Point{X: 0, Y: 2}, 0, 1},
		{"off apex", 3, r2.Point{X: 0, Y: 2}, 0, 3.25},
		{"shifted", 5, r2.Point{X: 5, Y: 10}, 4, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParabolaY(tt.x, tt.focus, tt.h)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("ParabolaY(%v, %v, %v) mismatch (-want +got):\n%s", tt.x, tt.focus, tt.h, diff)
			}
		})
	}
}

func TestParabolaY_EquidistantFromFocusAndDirectrix(t *testing.T) {
	focus := r2.Point{X: 1.5, Y: 7}
	const h = -2.0
	for _, x := range []float64{-10, -1, 0, 1.5, 4, 20} {
		y := ParabolaY(x, focus, h)
		p := r2.Point{X: x, Y: y}
		dFocus := p.Sub(focus).Norm()
		dLine := y - h
		if math.Abs(dFocus-dLine) > 1e-9 {
			t.Errorf("ParabolaY(%v, ...) = %v: |p-focus| = %v, distance to directrix = %v", x, y, dFocus, dLine)
		}
	}
}

func TestParabolasIntersectionX(t *testing.T) {
	tests := []struct {
		name string
		a, b r2.Point
		h    float64
		want float64
	}{
		{"same height", r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}, -5, 5},
		{"same height reversed", r2.Point{X: 10, Y: 3}, r2.Point{X: 2, Y: 3}, -1, 6},
		{"higher first", r2.Point{X: 4, Y: 4}, r2.Point{X: 0, Y: 2}, 0, 2.324555320336759},
		{"lower first", r2.Point{X: 0, Y: 2}, r2.Point{X: 4, Y: 4}, 0, -10.32455532033676},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParabolasIntersectionX(tt.a, tt.b, tt.h)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("ParabolasIntersectionX(%v, %v, %v) mismatch (-want +got):\n%s", tt.a, tt.b, tt.h, diff)
			}
			ya := ParabolaY(got, tt.a, tt.h)
			yb := ParabolaY(got, tt.b, tt.h)
			if math.Abs(ya-yb) > 1e-9 {
				t.Errorf("arcs at x=%v: %v != %v", got, ya, yb)
			}
		})
	}
}

func TestParabolaHorizontalX(t *testing.T) {
	focus := r2.Point{X: 0, Y: 5}
	tests := []struct {
		name     string
		lineY    float64
		lineLeft bool
		want     float64
	}{
		{"line left", 4, true, -math.Sqrt(15)},
		{"line right", 4, false, math.Sqrt(15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParabolaHorizontalX(focus, tt.lineY, 0, tt.lineLeft)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("ParabolaHorizontalX(...) mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if got := ParabolaHorizontalX(focus, 1, 0, true); !math.IsNaN(got) {
		t.Errorf("ParabolaHorizontalX(line below apex) = %v, want NaN", got)
	}
}

func TestLineHorizontalIntersection(t *testing.T) {
	tests := []struct {
		name string
		a, b r2.Point
		y    float64
		want r2.Point
	}{
		{"diagonal", r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 10}, 5, r2.Point{X: 5, Y: 5}},
		{"vertical", r2.Point{X: 3, Y: -1}, r2.Point{X: 3, Y: 8}, 0, r2.Point{X: 3, Y: 0}},
		{"extrapolated", r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 1}, -1, r2.Point{X: -2, Y: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineHorizontalIntersection(tt.a, tt.b, tt.y)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("LineHorizontalIntersection(%v, %v, %v) mismatch (-want +got):\n%s", tt.a, tt.b, tt.y, diff)
			}
		})
	}
}

func TestCircleCenters(t *testing.T) {
	if got := CircleCenterX(r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}, 3); math.Abs(got-5) > 1e-12 {
		t.Errorf("CircleCenterX(...) = %v, want 5", got)
	}
	if got := CircleCenterY(r2.Point{X: 0, Y: 0}, r2.Point{X: 0, Y: 10}, 3); math.Abs(got-5) > 1e-12 {
		t.Errorf("CircleCenterY(...) = %v, want 5", got)
	}

	a, b := r2.Point{X: 1, Y: 2}, r2.Point{X: 4, Y: -3}
	cx := CircleCenterX(a, b, 7)
	c := r2.Point{X: cx, Y: 7}
	if math.Abs(c.Sub(a).Norm()-c.Sub(b).Norm()) > 1e-9 {
		t.Errorf("CircleCenterX(%v, %v, 7) = %v, not equidistant", a, b, cx)
	}
}

func TestCircumcenter(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r2.Point
		want    r2.Point
	}{
		{"isosceles", r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}, r2.Point{X: 5, Y: 10}, r2.Point{X: 5, Y: 3.75}},
		{"right angle", r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 0}, r2.Point{X: 0, Y: 3}, r2.Point{X: 2, Y: 1.5}},
		{"reversed order", r2.Point{X: 5, Y: 10}, r2.Point{X: 10, Y: 0}, r2.Point{X: 0, Y: 0}, r2.Point{X: 5, Y: 3.75}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Circumcenter(tt.a, tt.b, tt.c)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Circumcenter(...) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCircumcenter_Collinear(t *testing.T) {
	step := 100.0 / 7
	tests := []struct {
		name    string
		a, b, c r2.Point
	}{
		{"diagonal", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 2, Y: 2}},
		{"rounded row", r2.Point{X: 0.5 * step, Y: 30}, r2.Point{X: 1.5 * step, Y: 30}, r2.Point{X: 2.5 * step, Y: 30}},
		{"rounded slope", r2.Point{X: 0.1, Y: 0.3}, r2.Point{X: 0.2, Y: 0.6}, r2.Point{X: 0.7, Y: 2.1}},
		{"repeated", r2.Point{X: 3, Y: 4}, r2.Point{X: 3, Y: 4}, r2.Point{X: 5, Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Circumcenter(tt.a, tt.b, tt.c); IsFinite(got) {
				t.Errorf("Circumcenter(%v, %v, %v) = %v, want non-finite", tt.a, tt.b, tt.c, got)
			}
		})
	}
}

func TestDistanceOffLine(t *testing.T) {
	l := Line{Start: r2.Point{X: 0, Y: 0}, End: r2.Point{X: 10, Y: 0}}
	tests := []struct {
		name string
		p    r2.Point
		want float64
	}{
		{"above", r2.Point{X: 3, Y: 2}, -2},
		{"below", r2.Point{X: 3, Y: -2}, 2},
		{"on line", r2.Point{X: 20, Y: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceOffLine(l, tt.p)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("DistanceOffLine(%v, %v) mismatch (-want +got):\n%s", l, tt.p, diff)
			}
		})
	}
}

func TestOffsetIntersection(t *testing.T) {
	l1 := Line{Start: r2.Point{X: 0, Y: 0}, End: r2.Point{X: 10, Y: 0}}
	l2 := Line{Start: r2.Point{X: 10, Y: 0}, End: r2.Point{X: 10, Y: 10}}
	tests := []struct {
		name string
		d    float64
		want r2.Point
	}{
		{"positive", 1, r2.Point{X: 11, Y: -1}},
		{"negative", -1, r2.Point{X: 9, Y: 1}},
		{"zero", 0, r2.Point{X: 10, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OffsetIntersection(l1, l2, tt.d)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("OffsetIntersection(..., %v) mismatch (-want +got):\n%s", tt.d, diff)
			}
		})
	}
}

func TestCircleTangentToLines(t *testing.T) {
	tests := []struct {
		name       string
		l1, l2, l3 Line
		want       Circle
	}{
		{
			"square sides",
			Line{Start: r2.Point{X: 0, Y: 0}, End: r2.Point{X: 10, Y: 0}},
			Line{Start: r2.Point{X: 10, Y: 0}, End: r2.Point{X: 10, Y: 10}},
			Line{Start: r2.Point{X: 10, Y: 10}, End: r2.Point{X: 0, Y: 10}},
			Circle{Center: r2.Point{X: 5, Y: 5}, Radius: 5},
		},
		{
			"right triangle incircle",
			Line{Start: r2.Point{X: 0, Y: 0}, End: r2.Point{X: 10, Y: 0}},
			Line{Start: r2.Point{X: 10, Y: 0}, End: r2.Point{X: 0, Y: 10}},
			Line{Start: r2.Point{X: 0, Y: 10}, End: r2.Point{X: 0, Y: 0}},
			Circle{
				Center: r2.Point{X: 10 - 5*math.Sqrt2, Y: 10 - 5*math.Sqrt2},
				Radius: 10 - 5*math.Sqrt2,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CircleTangentToLines(tt.l1, tt.l2, tt.l3)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("CircleTangentToLines(...) mismatch (-want +got):\n%s", diff)
			}
			for _, l := range []Line{tt.l1, tt.l2, tt.l3} {
				d := DistanceOffLine(l, got.Center)
				if math.Abs(math.Abs(d)-got.Radius) > 1e-9 {
					t.Errorf("distance from center to %v = %v, want %v", l, d, got.Radius)
				}
			}
		})
	}
}

func TestDeterminant3(t *testing.T) {
	tests := []struct {
		name string
		m    [9]float64
		want float64
	}{
		{"identity", [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, 1},
		{"singular", [9]float64{1, 2, 3, 2, 4, 6, 7, 8, 9}, 0},
		{"general", [9]float64{2, -3, 1, 2, 0, -1, 1, 4, 5}, 49},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.m
			got := Determinant3(m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
			if got != tt.want {
				t.Errorf("Determinant3(%v) = %v, want %v", m, got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		p    r2.Point
		want bool
	}{
		{"finite", r2.Point{X: 1, Y: -2}, true},
		{"nan", r2.Point{X: math.NaN(), Y: 0}, false},
		{"inf", r2.Point{X: 0, Y: math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.p); got != tt.want {
				t.Errorf("IsFinite(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
