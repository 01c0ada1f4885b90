package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"DoodleBoard/internal/session"
)

// NewLoginForm asks for a username and calls onLogin with the new session.
func NewLoginForm(onLogin func(*session.Session)) fyne.CanvasObject {
	user := widget.NewEntry()
	user.SetPlaceHolder("username")
	msg := widget.NewLabel("")

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "User", Widget: user},
		},
		SubmitText: "Sign in",
		OnSubmit: func() {
			sess, err := session.Start(user.Text)
			if err != nil {
				msg.SetText(err.Error())
				return
			}
			msg.SetText("")
			onLogin(sess)
		},
	}
	user.OnSubmitted = func(string) { form.OnSubmit() }

	return container.NewCenter(container.NewVBox(
		widget.NewLabelWithStyle("Doodle", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		form,
		msg,
	))
}
