package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"DoodleBoard/internal/config"
	"DoodleBoard/internal/export"
	"DoodleBoard/internal/outbox"
	"DoodleBoard/internal/page"
	"DoodleBoard/internal/session"
	"DoodleBoard/internal/surface"
	"DoodleBoard/internal/tools"
)

var _ page.Publisher = (*outbox.Outbox)(nil)

// DrawingPage is everything mounted while a user is drawing.
type DrawingPage struct {
	Page    *page.Page
	Canvas  *CanvasWidget
	Toolbar *Toolbar
	Content fyne.CanvasObject
}

// NewDrawingPage mounts a fresh, empty canvas for sess. It fails without an active session.
func NewDrawingPage(cfg *config.Config, sess *session.Session, pub page.Publisher, win fyne.Window, onLogout func()) (*DrawingPage, error) {
	s := surface.New(cfg.Width, cfg.Height, cfg.BackgroundColor(), cfg.Tools())
	p, err := page.New(sess, s, export.NewDirSaver(cfg.SaveDir, cfg.PDF), pub)
	if err != nil {
		return nil, err
	}
	board := NewCanvasWidget(s)
	panel := tools.NewPanel(p, s.Tools())
	toolbar := NewToolbar(panel, win)
	p.OnStatus = toolbar.SetStatus

	logout := widget.NewButtonWithIcon("Sign out "+sess.User, theme.LogoutIcon(), onLogout)
	header := container.NewBorder(nil, nil, nil, logout, toolbar.Object())

	return &DrawingPage{
		Page:    p,
		Canvas:  board,
		Toolbar: toolbar,
		Content: container.NewBorder(header, nil, nil, nil, container.NewCenter(board)),
	}, nil
}

// RunApp opens the window on the login screen and blocks until it closes.
func RunApp(cfg *config.Config) {
	myApp := app.New()
	myWindow := myApp.NewWindow("Doodle")
	myWindow.Resize(fyne.NewSize(float32(cfg.Width)+40, float32(cfg.Height)+140))

	pub := outbox.New(cfg.OutboxDir)
	var current *DrawingPage
	var sess *session.Session

	var showLogin func()
	showLogin = func() {
		myWindow.SetContent(NewLoginForm(func(s *session.Session) {
			dp, err := NewDrawingPage(cfg, s, pub, myWindow, func() {
				current.Page.Close()
				sess.End()
				current, sess = nil, nil
				showLogin()
			})
			if err != nil {
				log.Printf("[UI] Cannot open drawing page: %v", err)
				return
			}
			current, sess = dp, s
			myWindow.SetContent(dp.Content)
		}))
	}

	myWindow.SetOnClosed(func() {
		if current != nil {
			current.Page.Close()
		}
		sess.End()
	})

	showLogin()
	myWindow.ShowAndRun()
}
