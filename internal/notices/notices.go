// Package notices carries one-shot messages from the component that causes
// a transition to the screen that displays it.
package notices

import "sync"

// Kind names a notice slot
type Kind string

const (
	LogIn                 Kind = "login"
	RedirectToLogin       Kind = "redirect_to_login"
	LogOut                Kind = "logout"
	UnauthRedirectToLogin Kind = "unauth_redirect_to_login"
)

// Board holds at most one message per kind. The zero value is ready to use.
type Board struct {
	mu    sync.Mutex
	slots map[Kind]string
}

// New creates an empty board
func New() *Board {
	return &Board{}
}

// Set stores msg for kind, replacing any previous message
func (b *Board) Set(kind Kind, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.slots == nil {
		b.slots = make(map[Kind]string)
	}
	b.slots[kind] = msg
}

// Peek returns the message for kind without consuming it
func (b *Board) Peek(kind Kind) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slots[kind]
}

// Take returns the message for kind and resets the slot
func (b *Board) Take(kind Kind) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg := b.slots[kind]
	delete(b.slots, kind)
	return msg, msg != ""
}

// Reset clears the slot for kind
func (b *Board) Reset(kind Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.slots, kind)
}

// Drain takes every non-empty message among kinds, in the given order
func (b *Board) Drain(kinds ...Kind) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []string
	for _, kind := range kinds {
		if msg := b.slots[kind]; msg != "" {
			out = append(out, msg)
		}
		delete(b.slots, kind)
	}
	return out
}
