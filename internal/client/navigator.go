package client

import (
	"errors"
	"sync"
)

type View string

const (
	ViewDashboard View = "dashboard"
	ViewNew       View = "new"
	ViewHistory   View = "history"
	ViewSettings  View = "settings"
)

// PendingApprovalNotice is shown when an unapproved user tries to open the prescription form.
const PendingApprovalNotice = "Your account is pending approval by admin."

var (
	ErrPendingApproval = errors.New("account pending approval")
	ErrUnknownView     = errors.New("unknown view")
)

func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewDashboard, ViewNew, ViewHistory, ViewSettings:
		return v, nil
	}
	return "", ErrUnknownView
}

// SessionSource yields the current session, nil when logged out.
type SessionSource interface {
	Session() *Session
}

// Navigator is the view state machine. Every view is reachable from every
// other; only entering "new" is gated on approval.
type Navigator struct {
	mu       sync.Mutex
	current  View
	sessions SessionSource
}

func NewNavigator(sessions SessionSource) *Navigator {
	return &Navigator{current: ViewDashboard, sessions: sessions}
}

func (n *Navigator) Current() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Navigator) user() *User {
	session := n.sessions.Session()
	if session == nil {
		return nil
	}
	return &session.User
}

// Navigate moves to v, leaving the state unchanged when the move is refused.
func (n *Navigator) Navigate(v View) error {
	if _, err := ParseView(string(v)); err != nil {
		return err
	}
	if v == ViewNew {
		if u := n.user(); u == nil || !u.Approved {
			return ErrPendingApproval
		}
	}

	n.mu.Lock()
	n.current = v
	n.mu.Unlock()
	return nil
}

// CanView reports whether the current user may see the content of v.
// Dashboard, history and settings are admin screens.
func (n *Navigator) CanView(v View) bool {
	u := n.user()
	if u == nil {
		return false
	}
	switch v {
	case ViewNew:
		return u.Approved
	case ViewDashboard, ViewHistory, ViewSettings:
		return u.IsAdmin()
	}
	return false
}
