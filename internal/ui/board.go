package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"DoodleBoard/internal/state"
	"DoodleBoard/internal/surface"
)

// CanvasWidget shows a surface's raster and feeds pointer input into it.
type CanvasWidget struct {
	widget.BaseWidget
	surface *surface.Surface
	image   *canvas.Image

	// left is set when the pointer leaves mid-drag; the rest of that drag is
	// ignored instead of starting a new stroke.
	left bool
	// other is set while a non-primary mouse button is held. Its drags never draw.
	other bool
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)
var _ desktop.Hoverable = (*CanvasWidget)(nil)

// NewCanvasWidget takes over s.OnChange to repaint itself.
func NewCanvasWidget(s *surface.Surface) *CanvasWidget {
	c := &CanvasWidget{surface: s}
	c.image = canvas.NewImageFromImage(s.Raster())
	c.image.FillMode = canvas.ImageFillStretch
	c.image.ScaleMode = canvas.ImageScalePixels
	s.OnChange = c.image.Refresh
	c.ExtendBaseWidget(c)
	return c
}

func (c *CanvasWidget) Surface() *surface.Surface { return c.surface }

// toRaster maps a widget position onto raster pixels.
func (c *CanvasWidget) toRaster(pos fyne.Position) state.Point {
	b := c.surface.Bounds()
	size := c.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return state.Point{X: pos.X, Y: pos.Y}
	}
	return state.Point{
		X: pos.X * float32(b.Dx()) / size.Width,
		Y: pos.Y * float32(b.Dy()) / size.Height,
	}
}

func (c *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		c.other = true
		return
	}
	c.left = false
	c.other = false
	c.surface.Begin(c.toRaster(e.Position))
}

func (c *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		c.other = false
		return
	}
	c.left = false
	c.surface.End()
}

// Dragged extends the stroke. Touch input has no MouseDown, so a drag that
// arrives while idle starts the stroke at the drag origin.
func (c *CanvasWidget) Dragged(e *fyne.DragEvent) {
	if c.left || c.other {
		return
	}
	if c.surface.Mode() == surface.Idle {
		start := e.Position.Subtract(e.Dragged)
		c.surface.Begin(c.toRaster(start))
	}
	c.surface.Extend(c.toRaster(e.Position))
}

func (c *CanvasWidget) DragEnd() {
	c.left = false
	c.other = false
	c.surface.End()
}

func (c *CanvasWidget) MouseIn(*desktop.MouseEvent) {}

func (c *CanvasWidget) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends the stroke when the pointer leaves the canvas.
func (c *CanvasWidget) MouseOut() {
	if c.surface.Mode() == surface.Capturing {
		c.left = true
		c.surface.End()
	}
}

func (c *CanvasWidget) MinSize() fyne.Size {
	b := c.surface.Bounds()
	return fyne.NewSize(float32(b.Dx()), float32(b.Dy()))
}

func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.image)
}
