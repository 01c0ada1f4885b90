// Package tools holds the behaviour of the tool panel: it turns raw widget
// input into single commands and mirrors the selected color and width for display.
package tools

import (
	"errors"
	"log"
	"math"
	"strconv"
	"strings"

	"DoodleBoard/internal/state"
)

// Commands is what the panel drives. The drawing page implements it.
type Commands interface {
	SetColor(c string) (string, error)
	SetLineWidth(w int) int
	Undo()
	Clear()
	Save()
	Post()
	ChangeProfilePic()
}

// Panel mirrors the current selection and forwards each user action exactly once.
type Panel struct {
	cmds  Commands
	color string
	width int

	// OnSync is called whenever the mirrored selection changes, so widgets can
	// show the reconciled value (e.g. a clamped width).
	OnSync func(color string, width int)
}

func NewPanel(cmds Commands, initial state.ToolSelection) *Panel {
	return &Panel{
		cmds:  cmds,
		color: initial.Color,
		width: state.ClampWidth(initial.Width),
	}
}

func (p *Panel) Color() string { return p.color }

func (p *Panel) Width() int { return p.width }

// ChooseColor forwards a color pick. Rejected colors leave the mirror unchanged.
func (p *Panel) ChooseColor(c string) {
	got, err := p.cmds.SetColor(c)
	if err != nil {
		log.Printf("[TOOLS] Ignoring color %q: %v", c, err)
		p.sync()
		return
	}
	p.color = got
	p.sync()
}

// SlideWidth handles a width slider move.
func (p *Panel) SlideWidth(v float64) {
	if math.IsNaN(v) {
		return
	}
	p.setWidth(int(math.Round(v)))
}

// EnterWidth handles the numeric width field. The leading integer is used
// ("12.7" is 12) and clamped; text that doesn't start with one is ignored.
func (p *Panel) EnterWidth(s string) {
	w, ok := leadingInt(s)
	if !ok {
		p.sync()
		return
	}
	p.setWidth(w)
}

func (p *Panel) Undo()             { p.cmds.Undo() }
func (p *Panel) Clear()            { p.cmds.Clear() }
func (p *Panel) Save()             { p.cmds.Save() }
func (p *Panel) Post()             { p.cmds.Post() }
func (p *Panel) ChangeProfilePic() { p.cmds.ChangeProfilePic() }

func (p *Panel) setWidth(w int) {
	p.width = p.cmds.SetLineWidth(state.ClampWidth(w))
	p.sync()
}

// leadingInt parses an optional sign and the digits after it. Values too large
// for an int saturate so clamping still applies.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	w, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return w, true
}

func (p *Panel) sync() {
	if p.OnSync != nil {
		p.OnSync(p.color, p.width)
	}
}
