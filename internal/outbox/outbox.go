// Package outbox is a local stand-in for the doodle backend: posts and avatar
// updates are written as PNG files under a directory instead of being uploaded.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrBadUser is returned for usernames that can't be used as a directory name.
var ErrBadUser = errors.New("invalid user for outbox")

// Outbox stores posts in <dir>/posts/<user>/<id>.png and avatars in <dir>/avatars/<user>.png.
type Outbox struct {
	dir string
}

func New(dir string) *Outbox {
	return &Outbox{dir: dir}
}

// Post stores img as a new post by user and returns the post id.
func (o *Outbox) Post(ctx context.Context, user string, img image.Image) (string, error) {
	if err := checkUser(user); err != nil {
		return "", err
	}
	id := uuid.NewString()
	path := filepath.Join(o.dir, "posts", user, id+".png")
	if err := o.write(ctx, path, img); err != nil {
		return "", fmt.Errorf("posting doodle: %w", err)
	}
	log.Printf("[OUTBOX] Posted %s for %s", id, user)
	return id, nil
}

// SetAvatar replaces user's profile picture with img.
func (o *Outbox) SetAvatar(ctx context.Context, user string, img image.Image) error {
	if err := checkUser(user); err != nil {
		return err
	}
	path := filepath.Join(o.dir, "avatars", user+".png")
	if err := o.write(ctx, path, img); err != nil {
		return fmt.Errorf("updating avatar: %w", err)
	}
	log.Printf("[OUTBOX] Updated avatar for %s", user)
	return nil
}

// Posts lists the post ids stored for user.
func (o *Outbox) Posts(user string) ([]string, error) {
	if err := checkUser(user); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(o.dir, "posts", user))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".png"); ok && !e.IsDir() {
			ids = append(ids, name)
		}
	}
	return ids, nil
}

// write goes through a temp file and rename so a failed write never leaves a
// truncated image behind.
func (o *Outbox) write(ctx context.Context, path string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func checkUser(user string) error {
	if user == "" || user == "." || user == ".." || strings.ContainsAny(user, `/\`) {
		return fmt.Errorf("%w: %q", ErrBadUser, user)
	}
	return nil
}
