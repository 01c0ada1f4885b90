package state

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/colornames"
)

const (
	MinLineWidth = 1
	MaxLineWidth = 60
)

// ErrInvalidColor is returned when a color string is neither a hex code nor a known color name.
var ErrInvalidColor = errors.New("invalid color")

type Point struct{ X, Y float32 }

// Stroke is one continuous pointer gesture with the tool selection active when it started.
type Stroke struct {
	ID     string
	Points []Point
	Color  string // always lowercase #rrggbb
	Width  int
}

// NewStroke starts a stroke at p using the given selection.
func NewStroke(p Point, sel ToolSelection) *Stroke {
	return &Stroke{
		ID:     uuid.NewString(),
		Points: []Point{p},
		Color:  sel.Color,
		Width:  sel.Width,
	}
}

// Clone returns a deep copy so callers can't reach into history through the points slice.
func (s Stroke) Clone() Stroke {
	pts := make([]Point, len(s.Points))
	copy(pts, s.Points)
	s.Points = pts
	return s
}

// RGBA decodes the stroke color. Strokes only ever hold normalized colors, so a decode
// failure falls back to black.
func (s Stroke) RGBA() color.RGBA {
	c, err := DecodeColor(s.Color)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return c
}

// ToolSelection is the color and line width applied to the next stroke.
type ToolSelection struct {
	Color string
	Width int
}

// DefaultToolSelection is black at width 5.
func DefaultToolSelection() ToolSelection {
	return ToolSelection{Color: "#000000", Width: 5}
}

// ClampWidth pins w into [MinLineWidth, MaxLineWidth].
func ClampWidth(w int) int {
	if w < MinLineWidth {
		return MinLineWidth
	}
	if w > MaxLineWidth {
		return MaxLineWidth
	}
	return w
}

// ParseColor normalizes "#rgb", "#rrggbb" or a CSS color name into lowercase "#rrggbb".
func ParseColor(s string) (string, error) {
	c, err := DecodeColor(s)
	if err != nil {
		return "", err
	}
	return ColorToHex(c), nil
}

// DecodeColor parses the same inputs as ParseColor into an opaque color.RGBA.
func DecodeColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[s]; ok {
			c.A = 255
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// ColorToHex formats any color as "#rrggbb", dropping alpha.
func ColorToHex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
