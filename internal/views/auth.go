package views

import (
	"context"
	"fmt"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/forms"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/observability"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/notices"
)

// AuthView backs the login, register, forgot-password and home screens
type AuthView struct {
	users   UserAPI
	session Session
	board   *notices.Board
}

// NewAuthView creates an AuthView
func NewAuthView(users UserAPI, session Session, board *notices.Board) *AuthView {
	return &AuthView{users: users, session: session, board: board}
}

// Login signs in with the form's credentials and leaves a greeting for the
// home screen, unless a greeting is already waiting there.
func (v *AuthView) Login(ctx context.Context, form forms.LoginForm) (*entities.User, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	resp, err := v.users.Login(ctx, form.Normalize())
	if err != nil {
		return nil, err
	}

	user, err := v.session.SignIn(ctx, resp.JwtToken)
	if err != nil {
		return nil, err
	}

	if v.board.Peek(notices.LogIn) == "" {
		v.board.Set(notices.LogIn, "Welcome back, "+resp.Email)
	}
	return user, nil
}

// Register creates an account. The new user is not signed in; the login
// screen greets them by name.
func (v *AuthView) Register(ctx context.Context, form forms.RegisterForm) (*entities.User, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	user, err := v.users.Register(ctx, form.Normalize())
	if err != nil {
		return nil, err
	}

	v.board.Set(notices.RedirectToLogin, fmt.Sprintf("Hi, %s, please log in with your credentials", user.Name))
	v.board.Set(notices.LogIn, fmt.Sprintf("Hi, %s, welcome to our app!", user.Name))
	observability.LoggerFromContext(ctx).Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("registered new user")
	return user, nil
}

// ChangePassword resets the password of the account named in the form
func (v *AuthView) ChangePassword(ctx context.Context, form forms.ChangePasswordForm) (*entities.User, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	user, err := v.users.ChangePassword(ctx, form.Normalize())
	if err != nil {
		return nil, err
	}

	v.board.Set(notices.RedirectToLogin, fmt.Sprintf("Hi, %s, please log in with your updated password", user.Name))
	return user, nil
}

// Logout ends the session
func (v *AuthView) Logout(ctx context.Context) error {
	if err := v.session.SignOut(ctx); err != nil {
		return err
	}
	v.board.Set(notices.LogOut, MsgLogout)
	return nil
}

// HomeGreeting consumes the greeting left for the home screen
func (v *AuthView) HomeGreeting() (string, bool) {
	return v.board.Take(notices.LogIn)
}

// LoginNotices consumes the messages the login screen shows on entry
func (v *AuthView) LoginNotices() []string {
	return v.board.Drain(notices.RedirectToLogin, notices.LogOut, notices.UnauthRedirectToLogin)
}
