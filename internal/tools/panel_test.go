package tools

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"DoodleBoard/internal/state"
)

// recorder implements Commands and counts every call.
type recorder struct {
	tools state.ToolSelection
	calls map[string]int
}

func newRecorder() *recorder {
	return &recorder{tools: state.DefaultToolSelection(), calls: map[string]int{}}
}

func (r *recorder) SetColor(c string) (string, error) {
	r.calls["color"]++
	norm, err := state.ParseColor(c)
	if err != nil {
		return r.tools.Color, err
	}
	r.tools.Color = norm
	return norm, nil
}

func (r *recorder) SetLineWidth(w int) int {
	r.calls["width"]++
	r.tools.Width = state.ClampWidth(w)
	return r.tools.Width
}

func (r *recorder) Undo()             { r.calls["undo"]++ }
func (r *recorder) Clear()            { r.calls["clear"]++ }
func (r *recorder) Save()             { r.calls["save"]++ }
func (r *recorder) Post()             { r.calls["post"]++ }
func (r *recorder) ChangeProfilePic() { r.calls["avatar"]++ }

func TestSliderAndFieldReconcile(t *testing.T) {
	for _, v := range []int{1, 7, 33, 60} {
		a, b := newRecorder(), newRecorder()
		slider := NewPanel(a, a.tools)
		field := NewPanel(b, b.tools)

		slider.SlideWidth(float64(v))
		field.EnterWidth(" " + strconv.Itoa(v))

		assert.Equal(t, a.tools, b.tools, "width %d", v)
		assert.Equal(t, slider.Width(), field.Width())
	}
}

func TestWidthClamped(t *testing.T) {
	r := newRecorder()
	p := NewPanel(r, r.tools)

	p.EnterWidth("0")
	assert.Equal(t, 1, p.Width())
	p.EnterWidth("61")
	assert.Equal(t, 60, p.Width())
	p.SlideWidth(-3)
	assert.Equal(t, 1, p.Width())
	p.SlideWidth(99.6)
	assert.Equal(t, 60, p.Width())
	p.SlideWidth(12.4)
	assert.Equal(t, 12, p.Width())
	assert.Equal(t, 12, r.tools.Width)

	p.EnterWidth("99999999999999999999")
	assert.Equal(t, 60, p.Width())
	p.EnterWidth("-99999999999999999999")
	assert.Equal(t, 1, p.Width())
	assert.Equal(t, 1, r.tools.Width)
}

func TestEnterWidthUsesLeadingInteger(t *testing.T) {
	r := newRecorder()
	p := NewPanel(r, r.tools)

	p.EnterWidth("12.7")
	assert.Equal(t, 12, p.Width())
	p.EnterWidth(" 20px")
	assert.Equal(t, 20, p.Width())
	p.EnterWidth("+7")
	assert.Equal(t, 7, r.tools.Width)
}

func TestEnterWidthIgnoresGarbage(t *testing.T) {
	r := newRecorder()
	p := NewPanel(r, r.tools)
	synced := 0
	p.OnSync = func(string, int) { synced++ }

	p.EnterWidth("abc")
	p.EnterWidth("")
	p.EnterWidth("-")
	assert.Equal(t, 5, p.Width())
	assert.Zero(t, r.calls["width"])
	assert.Equal(t, 3, synced, "widgets are reset to the mirrored value")
}

func TestChooseColor(t *testing.T) {
	r := newRecorder()
	p := NewPanel(r, r.tools)
	var shown string
	p.OnSync = func(c string, _ int) { shown = c }

	p.ChooseColor("#FF0000")
	assert.Equal(t, "#ff0000", p.Color())
	assert.Equal(t, "#ff0000", shown)

	p.ChooseColor("bogus")
	assert.Equal(t, "#ff0000", p.Color())
	assert.Equal(t, "#ff0000", shown)
}

func TestButtonsForwardOnce(t *testing.T) {
	r := newRecorder()
	p := NewPanel(r, r.tools)

	p.Undo()
	p.Clear()
	p.Save()
	p.Post()
	p.ChangeProfilePic()

	for _, k := range []string{"undo", "clear", "save", "post", "avatar"} {
		assert.Equal(t, 1, r.calls[k], k)
	}
}
