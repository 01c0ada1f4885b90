// Package page is the drawing page: it connects the tool panel to the drawing
// surface and hands snapshots to the save and publish collaborators.
package page

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"DoodleBoard/internal/session"
	"DoodleBoard/internal/state"
	"DoodleBoard/internal/surface"
	"DoodleBoard/internal/tools"
)

// ErrNoSession is returned when the page is opened without a signed-in user.
var ErrNoSession = errors.New("drawing page requires an active session")

// Saver persists a snapshot locally.
type Saver interface {
	Save(img image.Image) ([]string, error)
}

// Publisher is the backend for posts and profile pictures.
type Publisher interface {
	Post(ctx context.Context, user string, img image.Image) (string, error)
	SetAvatar(ctx context.Context, user string, img image.Image) error
	Posts(user string) ([]string, error)
}

// Page implements tools.Commands on top of a surface.
type Page struct {
	sess    *session.Session
	surface surface.Commander
	saver   Saver
	pub     Publisher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// OnStatus receives user-facing progress and error messages. Messages for
	// post and avatar requests arrive from a background goroutine.
	OnStatus func(msg string)
}

var _ tools.Commands = (*Page)(nil)

func New(sess *session.Session, s surface.Commander, saver Saver, pub Publisher) (*Page, error) {
	if !sess.Active() {
		return nil, ErrNoSession
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Page{
		sess:    sess,
		surface: s,
		saver:   saver,
		pub:     pub,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

func (p *Page) SetColor(c string) (string, error) { return p.surface.SetColor(c) }

func (p *Page) SetLineWidth(w int) int { return p.surface.SetLineWidth(w) }

func (p *Page) Undo() { p.surface.Undo() }

func (p *Page) Clear() { p.surface.Clear() }

func (p *Page) Tools() state.ToolSelection { return p.surface.Tools() }

// Save writes the current snapshot through the Saver.
func (p *Page) Save() {
	if p.saver == nil {
		p.status("Saving is not available")
		return
	}
	paths, err := p.saver.Save(p.surface.Snapshot())
	if err != nil {
		log.Printf("[PAGE] Save failed: %v", err)
		p.status(fmt.Sprintf("Save failed: %v", err))
		return
	}
	p.status(fmt.Sprintf("Saved %s", paths[0]))
}

// Post publishes the current snapshot in the background.
func (p *Page) Post() {
	p.publish("Post", func(ctx context.Context, img image.Image) (string, error) {
		id, err := p.pub.Post(ctx, p.sess.User, img)
		if err != nil {
			return "", err
		}
		msg := "Posted doodle " + id
		if ids, err := p.pub.Posts(p.sess.User); err == nil {
			msg += fmt.Sprintf(" (%d posted)", len(ids))
		}
		return msg, nil
	})
}

// ChangeProfilePic uploads the current snapshot as the user's avatar in the background.
func (p *Page) ChangeProfilePic() {
	p.publish("Profile picture update", func(ctx context.Context, img image.Image) (string, error) {
		return "Profile picture updated", p.pub.SetAvatar(ctx, p.sess.User, img)
	})
}

// Close cancels outstanding uploads and waits for them to finish.
func (p *Page) Close() {
	p.cancel()
	p.wg.Wait()
}

// Wait blocks until every upload started so far has finished.
func (p *Page) Wait() { p.wg.Wait() }

func (p *Page) publish(what string, run func(context.Context, image.Image) (string, error)) {
	if p.pub == nil {
		p.status(what + " is not available")
		return
	}
	if !p.sess.Active() {
		p.status("Signed out")
		return
	}
	// Snapshot on the caller's goroutine; the upload only ever sees this copy.
	img := p.surface.Snapshot()
	p.status(what + "...")

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		msg, err := run(p.ctx, img)
		if err != nil {
			log.Printf("[PAGE] %s failed: %v", what, err)
			p.status(fmt.Sprintf("%s failed: %v", what, err))
			return
		}
		p.status(msg)
	}()
}

func (p *Page) status(msg string) {
	if p.OnStatus != nil {
		p.OnStatus(msg)
	}
}
