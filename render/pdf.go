// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"github.com/llgcode/draw2d/draw2dpdf"
	"github.com/pkg/errors"
)

// SavePDF draws snap onto a landscape A4 page in points and writes it to path.
// Style.Width is the drawing width in points; 800 fits the page.
func SavePDF(path string, snap Snapshot, style Style) error {
	if style.Width <= 0 {
		return errors.Errorf("render: width %d is not positive", style.Width)
	}
	pdf := draw2dpdf.NewPdf("L", "pt", "A4")
	paint(draw2dpdf.NewGraphicContext(pdf), newProjection(snap.Bounds, style.Width), snap, style)
	return errors.Wrapf(draw2dpdf.SaveToPdfFile(path, pdf), "SavePDF %s", path)
}
