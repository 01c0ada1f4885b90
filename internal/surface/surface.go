// Package surface is the drawing engine behind the canvas widget: it captures
// freehand strokes, paints them into a raster and keeps the undo history.
//
// A Surface is driven from a single goroutine (the UI event loop) and holds no
// locks. Snapshot hands out copies, so other goroutines only ever see those.
package surface

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"DoodleBoard/internal/render"
	"DoodleBoard/internal/state"
)

// Mode is the capture state of a Surface.
type Mode int

const (
	Idle Mode = iota
	Capturing
)

func (m Mode) String() string {
	if m == Capturing {
		return "capturing"
	}
	return "idle"
}

// Commander is the set of imperative operations the tool panel side needs.
type Commander interface {
	SetColor(c string) (string, error)
	SetLineWidth(w int) int
	Undo()
	Clear()
	Snapshot() *image.RGBA
	Tools() state.ToolSelection
}

var _ Commander = (*Surface)(nil)

// Surface owns the raster, the in-progress stroke and the committed history.
type Surface struct {
	raster     *image.RGBA
	background color.Color
	history    *state.History
	tools      state.ToolSelection
	active     *state.Stroke

	// OnChange is called after every change to the raster.
	OnChange func()
}

// New creates an empty w x h surface filled with background.
func New(w, h int, background color.Color, tools state.ToolSelection) *Surface {
	if w <= 0 || h <= 0 {
		w, h = 800, 600
	}
	tools.Width = state.ClampWidth(tools.Width)
	if c, err := state.ParseColor(tools.Color); err == nil {
		tools.Color = c
	} else {
		tools.Color = state.DefaultToolSelection().Color
	}
	return &Surface{
		raster:     render.Blank(w, h, background),
		background: background,
		history:    state.NewHistory(),
		tools:      tools,
	}
}

// Begin starts a stroke at p with the current tool selection. It is ignored
// while another stroke is being captured.
func (s *Surface) Begin(p state.Point) {
	if s.active != nil {
		return
	}
	s.active = state.NewStroke(p, s.tools)
}

// Extend appends p to the active stroke and paints only the new segment.
func (s *Surface) Extend(p state.Point) {
	if s.active == nil {
		return
	}
	s.active.Points = append(s.active.Points, p)
	render.StrokeSegment(s.raster, s.active, len(s.active.Points)-1)
	s.changed()
}

// End commits the active stroke. A tap without movement is committed as a dot.
func (s *Surface) End() {
	if s.active == nil {
		return
	}
	st := s.active
	s.active = nil
	if len(st.Points) == 1 {
		render.Dot(s.raster, st.Points[0], st.RGBA(), st.Width)
		s.changed()
	}
	s.history.Append(*st)
	log.Printf("[SURFACE] Committed stroke %s (%d points, %s, width %d)", st.ID, len(st.Points), st.Color, st.Width)
}

// Undo drops the newest stroke and repaints the rest from a blank raster. An
// in-progress stroke is committed first, so Undo then removes it.
func (s *Surface) Undo() {
	s.End()
	removed, ok := s.history.Pop()
	if !ok {
		return
	}
	s.redraw()
	log.Printf("[SURFACE] Undid stroke %s, %d remaining", removed.ID, s.history.Len())
}

// Clear empties the history and the raster. It cannot be undone.
func (s *Surface) Clear() {
	s.End()
	s.history.Reset()
	s.redraw()
	log.Println("[SURFACE] Cleared canvas")
}

// Snapshot returns a copy of the current raster.
func (s *Surface) Snapshot() *image.RGBA {
	return render.Clone(s.raster)
}

// SetColor changes the color for the next stroke and returns the normalized value.
// On an invalid color the previous one is kept.
func (s *Surface) SetColor(c string) (string, error) {
	norm, err := state.ParseColor(c)
	if err != nil {
		return s.tools.Color, err
	}
	s.tools.Color = norm
	return norm, nil
}

// SetLineWidth changes the width for the next stroke, clamped to the allowed range.
func (s *Surface) SetLineWidth(w int) int {
	s.tools.Width = state.ClampWidth(w)
	return s.tools.Width
}

func (s *Surface) Tools() state.ToolSelection { return s.tools }

func (s *Surface) Mode() Mode {
	if s.active != nil {
		return Capturing
	}
	return Idle
}

// Active returns a copy of the stroke being captured.
func (s *Surface) Active() (state.Stroke, bool) {
	if s.active == nil {
		return state.Stroke{}, false
	}
	return s.active.Clone(), true
}

func (s *Surface) Strokes() []state.Stroke { return s.history.Strokes() }

func (s *Surface) Len() int { return s.history.Len() }

func (s *Surface) Bounds() image.Rectangle { return s.raster.Bounds() }

// Raster exposes the live raster for display. The pointer stays valid for the
// life of the surface; callers must not modify it.
func (s *Surface) Raster() *image.RGBA { return s.raster }

func (s *Surface) redraw() {
	draw.Draw(s.raster, s.raster.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
	render.Replay(s.raster, s.history.Strokes())
	s.changed()
}

func (s *Surface) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}
