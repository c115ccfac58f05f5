package navigation

import (
	"context"
	"fmt"
	"strings"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/observability"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/notices"
	apperrors "github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/errors"
)

// Route names
const (
	RouteHome           = "home"
	RouteAvailabilities = "availabilities"
	RouteLogin          = "login"
	RouteRegister       = "register"
	RouteProfile        = "profile"
	RouteForgotPassword = "forgot-password"
	RouteNotFound       = "not-found"
)

const (
	wildcard     = "**"
	maxRedirects = 8
)

// Route is one entry of the route table
type Route struct {
	Name    string
	Pattern string
	Title   string
	// Redirect, when set, makes the route an unconditional redirect
	Redirect string
	Guards   []Guard
}

// Match is a resolved navigation
type Match struct {
	Name   string
	Title  string
	Path   string
	Params map[string]string
	// Redirects lists the paths passed through on the way, in order
	Redirects []string
}

// Param returns a path parameter, empty when absent
func (m Match) Param(name string) string {
	return m.Params[name]
}

// Router matches paths against routes in table order
type Router struct {
	routes []Route
}

// NewRouter creates a router over routes
func NewRouter(routes []Route) *Router {
	return &Router{routes: routes}
}

// DefaultRoutes is the application's route table
func DefaultRoutes(auth Authenticator, board *notices.Board) []Route {
	authGuard := AuthGuard(auth, board)
	return []Route{
		{Name: RouteHome, Pattern: "", Redirect: homePath},
		{Name: RouteHome, Pattern: "home", Title: "Home"},
		{Name: RouteAvailabilities, Pattern: "availabilitites", Title: "Availabilities", Guards: []Guard{authGuard}},
		{Name: RouteAvailabilities, Pattern: "availabilities", Title: "Availabilities", Guards: []Guard{authGuard}},
		{Name: RouteLogin, Pattern: "login", Title: "Login"},
		{Name: RouteRegister, Pattern: "register", Title: "Register"},
		{Name: RouteProfile, Pattern: "users/:userId", Title: "Profile", Guards: []Guard{authGuard}},
		{Name: RouteForgotPassword, Pattern: "forgot-password", Title: "Forgot password", Guards: []Guard{GuestOnlyGuard(auth)}},
		{Name: RouteNotFound, Pattern: wildcard, Title: "404 - Page Not Found"},
	}
}

// Resolve matches path, following redirects and guard denials until a
// route admits it. Guards run on every call.
func (r *Router) Resolve(ctx context.Context, path string) (Match, error) {
	logger := observability.LoggerFromContext(ctx)
	var redirects []string

	for hop := 0; hop <= maxRedirects; hop++ {
		route, params, ok := r.match(path)
		if !ok {
			return Match{}, apperrors.NewNotFoundError(fmt.Sprintf("no route matches %q", path))
		}

		next := route.Redirect
		if next == "" {
			for _, guard := range route.Guards {
				decision := guard(ctx)
				if !decision.Allow {
					logger.Debug().Str("path", path).Str("redirect", decision.Redirect).Msg("navigation denied by guard")
					next = decision.Redirect
					break
				}
			}
		}

		if next == "" {
			return Match{
				Name:      route.Name,
				Title:     route.Title,
				Path:      "/" + cleanPath(path),
				Params:    params,
				Redirects: redirects,
			}, nil
		}

		redirects = append(redirects, "/"+cleanPath(path))
		path = next
	}

	return Match{}, apperrors.NewInternalError(fmt.Sprintf("too many redirects resolving %q", redirects[0]), nil)
}

func (r *Router) match(path string) (Route, map[string]string, bool) {
	segments := splitPath(path)
	for _, route := range r.routes {
		if route.Pattern == wildcard {
			return route, map[string]string{}, true
		}
		if params, ok := matchPattern(splitPath(route.Pattern), segments); ok {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

func matchPattern(pattern, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	params := make(map[string]string)
	for i, part := range pattern {
		if name, ok := strings.CutPrefix(part, ":"); ok {
			params[name] = segments[i]
			continue
		}
		if part != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(path string) []string {
	path = cleanPath(path)
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// cleanPath drops the query, fragment and surrounding slashes
func cleanPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.Trim(path, "/")
}
