package surface

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DoodleBoard/internal/render"
	"DoodleBoard/internal/state"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func newSurface() *Surface {
	return New(120, 90, white, state.DefaultToolSelection())
}

func drawStroke(s *Surface, pts ...state.Point) {
	s.Begin(pts[0])
	for _, p := range pts[1:] {
		s.Extend(p)
	}
	s.End()
}

func pt(x, y float32) state.Point { return state.Point{X: x, Y: y} }

func TestStrokeScenario(t *testing.T) {
	s := newSurface()
	_, err := s.SetColor("#ff0000")
	require.NoError(t, err)
	s.SetLineWidth(5)

	s.Begin(pt(10, 10))
	assert.Equal(t, Capturing, s.Mode())
	s.Extend(pt(20, 10))
	s.Extend(pt(20, 20))
	s.End()
	assert.Equal(t, Idle, s.Mode())

	strokes := s.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, []state.Point{pt(10, 10), pt(20, 10), pt(20, 20)}, strokes[0].Points)
	assert.Equal(t, "#ff0000", strokes[0].Color)
	assert.Equal(t, 5, strokes[0].Width)
}

func TestUndoReplaysRemainingHistory(t *testing.T) {
	s := newSurface()
	paths := [][]state.Point{
		{pt(5, 5), pt(60, 40), pt(100, 10)},
		{pt(50, 50)},
		{pt(0, 89), pt(119, 0)},
		{pt(30, 70), pt(30, 71), pt(80, 80), pt(90, 20)},
	}
	widths := []int{3, 20, 1, 60}
	colors := []string{"#ff0000", "#00ff00", "#0000ff", "#808080"}

	for n := 1; n <= len(paths); n++ {
		s.Clear()
		direct := newSurface()
		for i := 0; i < n; i++ {
			s.SetColor(colors[i])
			s.SetLineWidth(widths[i])
			drawStroke(s, paths[i]...)
			if i < n-1 {
				direct.SetColor(colors[i])
				direct.SetLineWidth(widths[i])
				drawStroke(direct, paths[i]...)
			}
		}
		require.Equal(t, n, s.Len())

		s.Undo()
		assert.Equal(t, n-1, s.Len())
		assert.Equal(t, direct.Snapshot().Pix, s.Snapshot().Pix, "undo after %d strokes", n)
	}
}

func TestIncrementalMatchesReplay(t *testing.T) {
	s := newSurface()
	s.SetColor("#123456")
	s.SetLineWidth(9)
	drawStroke(s, pt(10, 10), pt(40, 60), pt(70, 20), pt(110, 80))
	s.SetColor("#abcdef")
	drawStroke(s, pt(60, 45))

	replayed := render.Blank(120, 90, white)
	render.Replay(replayed, s.Strokes())
	assert.Equal(t, replayed.Pix, s.Snapshot().Pix)
}

func TestClearRestoresBlank(t *testing.T) {
	s := newSurface()
	initial := s.Snapshot()

	drawStroke(s, pt(1, 1), pt(100, 80))
	drawStroke(s, pt(40, 40))
	require.NotEqual(t, initial.Pix, s.Snapshot().Pix)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, initial.Pix, s.Snapshot().Pix)
}

func TestUndoOnEmptyIsNoop(t *testing.T) {
	s := newSurface()
	before := s.Snapshot()
	s.Undo()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, before.Pix, s.Snapshot().Pix)
}

func TestUndoTwiceThenNoop(t *testing.T) {
	s := newSurface()
	drawStroke(s, pt(10, 10), pt(20, 20))
	drawStroke(s, pt(30, 30), pt(40, 40))

	s.Undo()
	s.Undo()
	assert.Equal(t, 0, s.Len())
	s.Undo()
	assert.Equal(t, 0, s.Len())
}

func TestBeginIgnoredWhileCapturing(t *testing.T) {
	s := newSurface()
	s.Begin(pt(1, 1))
	s.Begin(pt(50, 50))
	s.Extend(pt(2, 2))
	s.End()

	strokes := s.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, []state.Point{pt(1, 1), pt(2, 2)}, strokes[0].Points)
}

func TestExtendAndEndWithoutStroke(t *testing.T) {
	s := newSurface()
	before := s.Snapshot()
	s.Extend(pt(10, 10))
	s.End()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, before.Pix, s.Snapshot().Pix)
}

func TestTapCommitsDot(t *testing.T) {
	s := newSurface()
	s.SetColor("#0000ff")
	s.SetLineWidth(10)
	s.Begin(pt(60, 45))
	s.End()

	require.Equal(t, 1, s.Len())
	assert.Equal(t, color.RGBA{B: 255, A: 255}, s.Snapshot().RGBAAt(60, 45))
}

func TestToolChangeAppliesToNextStroke(t *testing.T) {
	s := newSurface()
	s.SetColor("#ff0000")
	s.SetLineWidth(4)
	s.Begin(pt(10, 10))
	s.SetColor("#00ff00")
	s.SetLineWidth(30)
	s.Extend(pt(20, 20))
	s.End()
	drawStroke(s, pt(50, 50), pt(60, 60))

	strokes := s.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, "#ff0000", strokes[0].Color)
	assert.Equal(t, 4, strokes[0].Width)
	assert.Equal(t, "#00ff00", strokes[1].Color)
	assert.Equal(t, 30, strokes[1].Width)
}

func TestUndoWhileCapturingDropsActiveStroke(t *testing.T) {
	s := newSurface()
	drawStroke(s, pt(10, 10), pt(20, 20))
	s.Begin(pt(50, 50))
	s.Extend(pt(70, 70))
	s.Undo()

	assert.Equal(t, Idle, s.Mode())
	require.Equal(t, 1, s.Len())

	fresh := newSurface()
	drawStroke(fresh, pt(10, 10), pt(20, 20))
	assert.Equal(t, fresh.Snapshot().Pix, s.Snapshot().Pix)
}

func TestClearWhileCapturing(t *testing.T) {
	s := newSurface()
	s.Begin(pt(5, 5))
	s.Extend(pt(50, 50))
	s.Clear()
	assert.Equal(t, Idle, s.Mode())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, newSurface().Snapshot().Pix, s.Snapshot().Pix)
}

func TestSetLineWidthClamps(t *testing.T) {
	s := newSurface()
	assert.Equal(t, 1, s.SetLineWidth(0))
	assert.Equal(t, 60, s.SetLineWidth(61))
	assert.Equal(t, 60, s.Tools().Width)
}

func TestSetColorRejectsInvalid(t *testing.T) {
	s := newSurface()
	s.SetColor("#ff0000")
	got, err := s.SetColor("#nothex")
	assert.ErrorIs(t, err, state.ErrInvalidColor)
	assert.Equal(t, "#ff0000", got)
	assert.Equal(t, "#ff0000", s.Tools().Color)
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := newSurface()
	snap := s.Snapshot()
	drawStroke(s, pt(10, 10), pt(100, 80))
	assert.Equal(t, white, snap.RGBAAt(55, 45))
	assert.NotEqual(t, snap.Pix, s.Snapshot().Pix)
}

func TestOnChangeFires(t *testing.T) {
	s := newSurface()
	n := 0
	s.OnChange = func() { n++ }
	drawStroke(s, pt(1, 1), pt(2, 2), pt(3, 3))
	assert.Equal(t, 2, n)
	s.Undo()
	assert.Equal(t, 3, n)
	s.Undo()
	assert.Equal(t, 3, n, "empty undo does not repaint")
}
