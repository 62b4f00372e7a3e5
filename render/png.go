// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"image"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/pkg/errors"
)

// PNG rasterizes snap.
func PNG(snap Snapshot, style Style) (*image.RGBA, error) {
	if style.Width <= 0 {
		return nil, errors.Errorf("render: width %d is not positive", style.Width)
	}
	p := newProjection(snap.Bounds, style.Width)
	m := image.NewRGBA(image.Rect(0, 0, p.w, p.h))
	paint(draw2dimg.NewGraphicContext(m), p, snap, style)
	return m, nil
}

// SavePNG rasterizes snap into the file at path.
func SavePNG(path string, snap Snapshot, style Style) error {
	m, err := PNG(snap, style)
	if err != nil {
		return err
	}
	return errors.Wrapf(draw2dimg.SaveToPngFile(path, m), "SavePNG %s", path)
}
