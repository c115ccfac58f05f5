// Package navigation resolves screen paths against the route table and
// enforces access guards.
package navigation

import (
	"context"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/notices"
)

const (
	unauthMessage = "Please login to access this page"
	loginPath     = "/login"
	homePath      = "/home"
)

// Authenticator reports whether a session token is present
type Authenticator interface {
	IsAuthenticated() bool
}

// Decision is the outcome of a guard. A denied decision names the path to
// navigate to instead.
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard decides whether a route may be entered
type Guard func(ctx context.Context) Decision

// Allow lets navigation proceed
func Allow() Decision {
	return Decision{Allow: true}
}

// RedirectTo denies navigation and sends the user to path
func RedirectTo(path string) Decision {
	return Decision{Redirect: path}
}

// AuthGuard admits signed-in users. Everyone else is sent to the login
// screen with a notice explaining why.
func AuthGuard(auth Authenticator, board *notices.Board) Guard {
	return func(ctx context.Context) Decision {
		if auth.IsAuthenticated() {
			return Allow()
		}
		board.Set(notices.UnauthRedirectToLogin, unauthMessage)
		return RedirectTo(loginPath)
	}
}

// GuestOnlyGuard admits only users who are not signed in
func GuestOnlyGuard(auth Authenticator) Guard {
	return func(ctx context.Context) Decision {
		if !auth.IsAuthenticated() {
			return Allow()
		}
		return RedirectTo(homePath)
	}
}
