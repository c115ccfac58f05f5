package notices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_TakeResets(t *testing.T) {
	b := New()
	b.Set(LogOut, "Logout successful!")

	assert.Equal(t, "Logout successful!", b.Peek(LogOut))

	msg, ok := b.Take(LogOut)
	assert.True(t, ok)
	assert.Equal(t, "Logout successful!", msg)

	_, ok = b.Take(LogOut)
	assert.False(t, ok)
	assert.Empty(t, b.Peek(LogOut))
}

func TestBoard_SetReplaces(t *testing.T) {
	var b Board
	b.Set(LogIn, "first")
	b.Set(LogIn, "second")

	assert.Equal(t, "second", b.Peek(LogIn))
	b.Reset(LogIn)
	assert.Empty(t, b.Peek(LogIn))
}

func TestBoard_Drain(t *testing.T) {
	b := New()
	b.Set(UnauthRedirectToLogin, "Please login to access this page")
	b.Set(RedirectToLogin, "Hi, Ann, please log in with your credentials")
	b.Set(LogIn, "Welcome back, ann@x.com")

	got := b.Drain(RedirectToLogin, LogOut, UnauthRedirectToLogin)

	assert.Equal(t, []string{
		"Hi, Ann, please log in with your credentials",
		"Please login to access this page",
	}, got)
	assert.Empty(t, b.Peek(RedirectToLogin))
	assert.Empty(t, b.Peek(UnauthRedirectToLogin))
	assert.Equal(t, "Welcome back, ann@x.com", b.Peek(LogIn))
}
