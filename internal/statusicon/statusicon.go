// Package statusicon renders the on/off indicator icon served by the
// control server: a cursor arrow on a colored disc, green when idle and
// red while the worker is clicking.
package statusicon

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// baseSize is the canvas the shapes are authored on; other sizes are
// resampled from it.
const baseSize = 64

var (
	idleFill   = color.NRGBA{R: 34, G: 197, B: 94, A: 255}
	activeFill = color.NRGBA{R: 220, G: 38, B: 38, A: 255}
	ringFill   = color.NRGBA{R: 15, G: 23, B: 42, A: 255}
	arrowFill  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// arrowOutline is the cursor silhouette on the 64x64 canvas.
var arrowOutline = [][2]float32{
	{18, 12}, {43, 34}, {33, 34}, {38, 50}, {31, 52}, {25, 37}, {16, 45},
}

// Render produces a PNG of the indicator at the requested square size.
func Render(active bool, size int) ([]byte, error) {
	if size <= 0 {
		size = baseSize
	}

	img := image.NewNRGBA(image.Rect(0, 0, baseSize, baseSize))
	disc := idleFill
	if active {
		disc = activeFill
	}
	fillCircle(img, 32, 32, 30, ringFill)
	fillCircle(img, 32, 32, 26, disc)
	fillPolygon(img, arrowOutline, arrowFill)

	var out image.Image = img
	if size != baseSize {
		scaled := image.NewNRGBA(image.Rect(0, 0, size, size))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Over, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode status icon: %w", err)
	}
	return buf.Bytes(), nil
}

func fillCircle(dst *image.NRGBA, cx, cy, radius float32, c color.NRGBA) {
	// Four cubic Béziers approximate a circle to sub-pixel error at this
	// canvas size.
	const k = 0.5523
	r := vector.NewRasterizer(baseSize, baseSize)
	r.MoveTo(cx+radius, cy)
	r.CubeTo(cx+radius, cy+k*radius, cx+k*radius, cy+radius, cx, cy+radius)
	r.CubeTo(cx-k*radius, cy+radius, cx-radius, cy+k*radius, cx-radius, cy)
	r.CubeTo(cx-radius, cy-k*radius, cx-k*radius, cy-radius, cx, cy-radius)
	r.CubeTo(cx+k*radius, cy-radius, cx+radius, cy-k*radius, cx+radius, cy)
	r.ClosePath()
	r.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func fillPolygon(dst *image.NRGBA, points [][2]float32, c color.NRGBA) {
	if len(points) < 3 {
		return
	}
	r := vector.NewRasterizer(baseSize, baseSize)
	r.MoveTo(points[0][0], points[0][1])
	for _, p := range points[1:] {
		r.LineTo(p[0], p[1])
	}
	r.ClosePath()
	r.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}
