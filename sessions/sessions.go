// Package sessions keeps the per-user state of the console on the server side. The browser only
// holds the session id in a cookie.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/medidesk/console/dashboard"
	"github.com/medidesk/console/remote"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	Id                     string          `json:"id" bson:"_id"`
	Token                  *oauth2.Token   `json:"token,omitempty" bson:"token,omitempty"`
	User                   *remote.User    `json:"user,omitempty" bson:"user,omitempty"`
	UserName               string          `json:"userName,omitempty" bson:"userName,omitempty"`
	Dashboard              dashboard.State `json:"dashboard" bson:"dashboard"`
	DismissedNotifications []string        `json:"dismissedNotifications,omitempty" bson:"dismissedNotifications,omitempty"`
	CreatedTime            time.Time       `json:"createdTime" bson:"createdTime"`
	ExpirationTime         time.Time       `json:"expirationTime" bson:"expirationTime"`
}

//go:generate mockgen --build_flags=--mod=mod -source=./sessions.go -destination=./test/mock_store.go -package test MockStore

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// New returns an anonymous session which expires after the given lifetime
func New(lifetime time.Duration) *Session {
	now := time.Now()
	return &Session{
		Id:             uuid.NewString(),
		Dashboard:      dashboard.NewState(),
		CreatedTime:    now,
		ExpirationTime: now.Add(lifetime),
	}
}

// IsEstablished is true once the user has logged in or registered
func (s *Session) IsEstablished() bool {
	if s == nil {
		return false
	}
	return s.UserName != "" || s.Token != nil
}

func (s *Session) IsExpired() bool {
	return !s.ExpirationTime.IsZero() && time.Now().After(s.ExpirationTime)
}

// TokenExpired is true when the session carries a token that can no longer be used
func (s *Session) TokenExpired() bool {
	return s.Token != nil && !s.Token.Valid()
}

// Clear drops everything the user established while keeping the session id
func (s *Session) Clear() {
	s.Token = nil
	s.User = nil
	s.UserName = ""
	s.Dashboard = dashboard.NewState()
	s.DismissedNotifications = nil
}

func (s *Session) ttl() time.Duration {
	if s.ExpirationTime.IsZero() {
		return 0
	}
	ttl := time.Until(s.ExpirationTime)
	if ttl <= 0 {
		return time.Millisecond
	}
	return ttl
}

type sessionContextKey struct{}

func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// FromContext returns the session attached to the request, nil if there is none
func FromContext(ctx context.Context) *Session {
	if session, ok := ctx.Value(sessionContextKey{}).(*Session); ok {
		return session
	}
	return nil
}
