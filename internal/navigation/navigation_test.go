package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/notices"
)

type fakeAuth struct {
	authenticated bool
}

func (f *fakeAuth) IsAuthenticated() bool {
	return f.authenticated
}

func TestAuthGuard(t *testing.T) {
	auth := &fakeAuth{}
	board := notices.New()
	guard := AuthGuard(auth, board)

	decision := guard(context.Background())
	assert.False(t, decision.Allow)
	assert.Equal(t, "/login", decision.Redirect)
	assert.Equal(t, "Please login to access this page", board.Peek(notices.UnauthRedirectToLogin))

	board.Reset(notices.UnauthRedirectToLogin)
	auth.authenticated = true
	assert.True(t, guard(context.Background()).Allow)
	assert.Empty(t, board.Peek(notices.UnauthRedirectToLogin))
}

func TestGuestOnlyGuard(t *testing.T) {
	auth := &fakeAuth{}
	guard := GuestOnlyGuard(auth)

	assert.True(t, guard(context.Background()).Allow)

	auth.authenticated = true
	assert.Equal(t, RedirectTo("/home"), guard(context.Background()))
}

func TestRouter_Resolve(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		authenticated bool
		path          string
		wantName      string
		wantPath      string
		wantRedirects []string
		wantParams    map[string]string
	}{
		{name: "empty redirects home", path: "", wantName: RouteHome, wantPath: "/home", wantRedirects: []string{"/"}},
		{name: "home", path: "/home", wantName: RouteHome, wantPath: "/home"},
		{name: "guarded slots as guest", path: "/availabilitites", wantName: RouteLogin, wantPath: "/login", wantRedirects: []string{"/availabilitites"}},
		{name: "guarded slots signed in", authenticated: true, path: "/availabilitites", wantName: RouteAvailabilities, wantPath: "/availabilitites"},
		{name: "slots alias", authenticated: true, path: "availabilities/", wantName: RouteAvailabilities, wantPath: "/availabilities"},
		{name: "profile signed in", authenticated: true, path: "/users/42?tab=appointments", wantName: RouteProfile, wantPath: "/users/42", wantParams: map[string]string{"userId": "42"}},
		{name: "profile as guest", path: "/users/42", wantName: RouteLogin, wantPath: "/login", wantRedirects: []string{"/users/42"}},
		{name: "forgot password as guest", path: "/forgot-password", wantName: RouteForgotPassword, wantPath: "/forgot-password"},
		{name: "forgot password signed in", authenticated: true, path: "/forgot-password", wantName: RouteHome, wantPath: "/home", wantRedirects: []string{"/forgot-password"}},
		{name: "unknown path", path: "/nowhere/at/all", wantName: RouteNotFound, wantPath: "/nowhere/at/all"},
		{name: "profile without id", authenticated: true, path: "/users", wantName: RouteNotFound, wantPath: "/users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{authenticated: tt.authenticated}
			router := NewRouter(DefaultRoutes(auth, notices.New()))

			match, err := router.Resolve(ctx, tt.path)
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, match.Name)
			assert.Equal(t, tt.wantPath, match.Path)
			assert.Equal(t, tt.wantRedirects, match.Redirects)
			if tt.wantParams != nil {
				assert.Equal(t, tt.wantParams, match.Params)
			}
		})
	}
}

func TestRouter_GuardsRunOnEveryResolve(t *testing.T) {
	auth := &fakeAuth{}
	board := notices.New()
	router := NewRouter(DefaultRoutes(auth, board))

	match, err := router.Resolve(context.Background(), "/users/7")
	require.NoError(t, err)
	assert.Equal(t, RouteLogin, match.Name)
	msg, ok := board.Take(notices.UnauthRedirectToLogin)
	assert.True(t, ok)
	assert.Equal(t, "Please login to access this page", msg)

	auth.authenticated = true
	match, err = router.Resolve(context.Background(), "/users/7")
	require.NoError(t, err)
	assert.Equal(t, RouteProfile, match.Name)
	assert.Equal(t, "7", match.Param("userId"))
	assert.Equal(t, "Profile", match.Title)
}

func TestRouter_RedirectLoop(t *testing.T) {
	router := NewRouter([]Route{
		{Name: "a", Pattern: "a", Redirect: "/b"},
		{Name: "b", Pattern: "b", Redirect: "/a"},
	})

	_, err := router.Resolve(context.Background(), "/a")
	assert.Error(t, err)
}

func TestRouter_NoMatch(t *testing.T) {
	router := NewRouter([]Route{{Name: "home", Pattern: "home"}})

	_, err := router.Resolve(context.Background(), "/other")
	assert.Error(t, err)
}
