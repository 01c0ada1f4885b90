package session

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNoUser is returned by Start when the username is blank.
var ErrNoUser = errors.New("username required")

// Session is the signed-in user. It is passed explicitly to everything that needs it.
type Session struct {
	ID        string
	User      string
	StartedAt time.Time
	ended     bool
}

// Start opens a session for user.
func Start(user string) (*Session, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, ErrNoUser
	}
	s := &Session{
		ID:        uuid.NewString(),
		User:      user,
		StartedAt: time.Now(),
	}
	log.Printf("[SESSION] Started %s for %s", s.ID, s.User)
	return s, nil
}

// End logs the user out. Calling it twice is harmless.
func (s *Session) End() {
	if s == nil || s.ended {
		return
	}
	s.ended = true
	log.Printf("[SESSION] Ended %s after %s", s.ID, s.Duration().Round(time.Second))
}

// Duration is how long the session has been open.
func (s *Session) Duration() time.Duration {
	return time.Since(s.StartedAt)
}

// Active reports whether s is non-nil and not ended.
func (s *Session) Active() bool {
	return s != nil && !s.ended
}
