package state

// History is the ordered list of committed strokes. Undo is a pop; there is no redo.
type History struct {
	strokes []Stroke
}

func NewHistory() *History {
	return &History{strokes: make([]Stroke, 0)}
}

// Append commits s. The history keeps its own copy of the points.
func (h *History) Append(s Stroke) {
	h.strokes = append(h.strokes, s.Clone())
}

// Pop removes the most recent stroke and reports whether there was one.
func (h *History) Pop() (Stroke, bool) {
	if len(h.strokes) == 0 {
		return Stroke{}, false
	}
	last := h.strokes[len(h.strokes)-1]
	h.strokes[len(h.strokes)-1] = Stroke{}
	h.strokes = h.strokes[:len(h.strokes)-1]
	return last, true
}

func (h *History) Reset() {
	clear(h.strokes)
	h.strokes = h.strokes[:0]
}

func (h *History) Len() int {
	return len(h.strokes)
}

// Strokes returns a deep copy of the committed strokes in commit order.
func (h *History) Strokes() []Stroke {
	out := make([]Stroke, len(h.strokes))
	for i, s := range h.strokes {
		out[i] = s.Clone()
	}
	return out
}
