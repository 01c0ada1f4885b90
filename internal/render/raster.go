// Package render paints strokes onto an RGBA raster.
//
// Every stroke is painted as a chain of round-capped segments, one segment per
// consecutive point pair, composited with draw.Over. Painting a stroke
// incrementally while it is captured and painting it again during a replay go
// through the same Segment and Dot calls in the same order, so both produce the
// same pixels.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"DoodleBoard/internal/state"
)

// Blank returns a w x h raster filled with bg.
func Blank(w, h int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

// Clone copies img into a fresh raster with the same bounds.
func Clone(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

// Segment paints the line a->b with round caps of diameter width.
func Segment(dst *image.RGBA, a, b state.Point, c color.Color, width int) {
	r := radius(width)
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	length := math.Hypot(dx, dy)
	if length < 1e-6 {
		Dot(dst, a, c, width)
		return
	}

	bb := bounds(dst, a, b, r)
	if bb.Empty() {
		return
	}
	z := vector.NewRasterizer(bb.Dx(), bb.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(bb.Min.X), float64(bb.Min.Y)

	// n is the direction rotated +90 degrees; the caps sweep from n to -n.
	nx, ny := -dy/length, dx/length
	phi := math.Atan2(ny, nx)
	steps := arcSteps(r)

	ax, ay := float64(a.X)-ox, float64(a.Y)-oy
	bx, by := float64(b.X)-ox, float64(b.Y)-oy

	z.MoveTo(float32(ax+nx*r), float32(ay+ny*r))
	z.LineTo(float32(bx+nx*r), float32(by+ny*r))
	arc(z, bx, by, r, phi, phi-math.Pi, steps)
	z.LineTo(float32(ax-nx*r), float32(ay-ny*r))
	arc(z, ax, ay, r, phi-math.Pi, phi-2*math.Pi, steps)
	z.ClosePath()

	z.Draw(dst, bb, image.NewUniform(c), image.Point{})
}

// Dot paints a filled disc of diameter width centred on p.
func Dot(dst *image.RGBA, p state.Point, c color.Color, width int) {
	r := radius(width)
	bb := bounds(dst, p, p, r)
	if bb.Empty() {
		return
	}
	z := vector.NewRasterizer(bb.Dx(), bb.Dy())
	z.DrawOp = draw.Over
	cx, cy := float64(p.X)-float64(bb.Min.X), float64(p.Y)-float64(bb.Min.Y)

	z.MoveTo(float32(cx+r), float32(cy))
	arc(z, cx, cy, r, 0, 2*math.Pi, 2*arcSteps(r))
	z.ClosePath()

	z.Draw(dst, bb, image.NewUniform(c), image.Point{})
}

// StrokeSegment paints the segment ending at point i of s, the same call the
// surface makes when point i arrives.
func StrokeSegment(dst *image.RGBA, s *state.Stroke, i int) {
	if i <= 0 || i >= len(s.Points) {
		return
	}
	Segment(dst, s.Points[i-1], s.Points[i], s.RGBA(), s.Width)
}

// Stroke paints a committed stroke: a dot for a single point, otherwise its segments in order.
func Stroke(dst *image.RGBA, s *state.Stroke) {
	switch len(s.Points) {
	case 0:
		return
	case 1:
		Dot(dst, s.Points[0], s.RGBA(), s.Width)
	default:
		for i := 1; i < len(s.Points); i++ {
			StrokeSegment(dst, s, i)
		}
	}
}

// Replay paints strokes onto dst in order.
func Replay(dst *image.RGBA, strokes []state.Stroke) {
	for i := range strokes {
		Stroke(dst, &strokes[i])
	}
}

func radius(width int) float64 {
	return float64(state.ClampWidth(width)) / 2
}

func arcSteps(r float64) int {
	n := int(math.Ceil(r * math.Pi / 2))
	if n < 8 {
		return 8
	}
	if n > 64 {
		return 64
	}
	return n
}

// arc continues the current path along a circle from angle a0 to a1.
func arc(z *vector.Rasterizer, cx, cy, r, a0, a1 float64, steps int) {
	for i := 1; i <= steps; i++ {
		t := a0 + (a1-a0)*float64(i)/float64(steps)
		z.LineTo(float32(cx+r*math.Cos(t)), float32(cy+r*math.Sin(t)))
	}
}

func bounds(dst *image.RGBA, a, b state.Point, r float64) image.Rectangle {
	minX := math.Floor(math.Min(float64(a.X), float64(b.X)) - r - 1)
	minY := math.Floor(math.Min(float64(a.Y), float64(b.Y)) - r - 1)
	maxX := math.Ceil(math.Max(float64(a.X), float64(b.X)) + r + 1)
	maxY := math.Ceil(math.Max(float64(a.Y), float64(b.Y)) + r + 1)
	return image.Rect(int(minX), int(minY), int(maxX), int(maxY)).Intersect(dst.Bounds())
}
