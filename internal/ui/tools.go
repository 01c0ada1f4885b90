package ui

import (
	"fmt"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"DoodleBoard/internal/state"
	"DoodleBoard/internal/tools"
)

// Palette is the row of quick-pick swatches.
var Palette = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},
	color.NRGBA{G: 180, A: 255},
	color.NRGBA{B: 255, A: 255},
	color.NRGBA{R: 255, G: 200, A: 255},
	color.NRGBA{R: 180, B: 255, A: 255},
	color.White,
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar holds the tool panel widgets. Every widget only talks to the Panel.
type Toolbar struct {
	panel *tools.Panel

	swatches   []*colorSwatch
	preview    *canvas.Rectangle
	colorEntry *widget.Entry
	picker     *widget.Button
	slider     *widget.Slider
	widthEntry *widget.Entry
	undo       *widget.Button
	clear      *widget.Button
	save       *widget.Button
	post       *widget.Button
	avatar     *widget.Button
	status     *widget.Label

	syncing bool
	content fyne.CanvasObject
}

// NewToolbar builds the panel widgets. win is used as the parent of the color
// picker dialog and may be nil, in which case the picker button is disabled.
func NewToolbar(panel *tools.Panel, win fyne.Window) *Toolbar {
	tb := &Toolbar{panel: panel}

	for _, c := range Palette {
		tb.swatches = append(tb.swatches, newColorSwatch(c, func(c color.Color) {
			panel.ChooseColor(state.ColorToHex(c))
		}))
	}

	tb.preview = canvas.NewRectangle(color.Black)
	tb.preview.SetMinSize(fyne.NewSize(28, 28))

	tb.colorEntry = widget.NewEntry()
	tb.colorEntry.SetPlaceHolder("#rrggbb")
	tb.colorEntry.OnSubmitted = panel.ChooseColor

	tb.picker = widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() {
		dialog.ShowColorPicker("Choose Color", "Line color", func(c color.Color) {
			panel.ChooseColor(state.ColorToHex(c))
		}, win)
	})
	if win == nil {
		tb.picker.Disable()
	}

	tb.slider = widget.NewSlider(state.MinLineWidth, state.MaxLineWidth)
	tb.slider.Step = 1
	tb.slider.OnChanged = func(v float64) {
		if tb.syncing {
			return
		}
		panel.SlideWidth(v)
	}

	tb.widthEntry = widget.NewEntry()
	tb.widthEntry.OnSubmitted = panel.EnterWidth

	tb.undo = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), panel.Undo)
	tb.clear = widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), panel.Clear)
	tb.save = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), panel.Save)
	tb.post = widget.NewButtonWithIcon("Post!", theme.MailSendIcon(), panel.Post)
	tb.avatar = widget.NewButtonWithIcon("Change Profile Pic", theme.AccountIcon(), panel.ChangeProfilePic)
	tb.status = widget.NewLabel("Ready")

	panel.OnSync = tb.sync
	tb.sync(panel.Color(), panel.Width())

	colorBox := container.NewHBox()
	for _, s := range tb.swatches {
		colorBox.Add(s)
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), tb.slider)
	entryBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(90, 35)), tb.colorEntry)
	widthBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(60, 35)), tb.widthEntry)

	tb.content = container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Color:"),
			tb.preview,
			colorBox,
			entryBox,
			tb.picker,
			widget.NewSeparator(),
			widget.NewLabel("Line Width:"),
			sliderBox,
			widthBox,
			layout.NewSpacer(),
		),
		container.NewHBox(
			tb.undo,
			tb.clear,
			widget.NewSeparator(),
			tb.save,
			tb.post,
			tb.avatar,
			layout.NewSpacer(),
			tb.status,
		),
	)
	return tb
}

func (tb *Toolbar) Object() fyne.CanvasObject { return tb.content }

// SetStatus shows msg in the status label. It may be called from any goroutine.
func (tb *Toolbar) SetStatus(msg string) {
	fyne.Do(func() {
		tb.status.SetText(msg)
	})
}

// sync pushes the panel's reconciled selection back into every widget.
func (tb *Toolbar) sync(hex string, width int) {
	tb.syncing = true
	defer func() { tb.syncing = false }()

	if c, err := state.DecodeColor(hex); err == nil {
		tb.preview.FillColor = c
		tb.preview.Refresh()
	}
	tb.colorEntry.SetText(hex)
	tb.slider.SetValue(float64(width))
	tb.widthEntry.SetText(strconv.Itoa(width))
	tb.status.SetText(fmt.Sprintf("Color %s, width %d", hex, width))
}
