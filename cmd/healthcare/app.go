package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/clients/healthapi"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/observability"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/navigation"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/notices"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/session"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/views"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/config"
	apperrors "github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/errors"
)

// app wires one run of the client
type app struct {
	cfg     *config.Config
	client  *healthapi.Client
	session *session.Store
	board   *notices.Board
	router  *navigation.Router
	auth    *views.AuthView

	out    io.Writer
	errOut io.Writer
}

func newApp(cfg *config.Config, tokens session.TokenStore, metrics *observability.Metrics, out, errOut io.Writer) *app {
	a := &app{cfg: cfg, board: notices.New(), out: out, errOut: errOut}

	a.client = healthapi.NewClient(cfg.API, healthapi.TokenFunc(func() string {
		return a.session.Token()
	}), healthapi.WithMetrics(metrics))
	a.session = session.NewStore(tokens, a.client, session.WithMetrics(metrics))
	a.router = navigation.NewRouter(navigation.DefaultRoutes(a.session, a.board))
	a.auth = views.NewAuthView(a.client, a.session, a.board)
	return a
}

// command is one subcommand. path is the screen it stands for; the route
// guards of that screen decide whether it may run.
type command struct {
	usage string
	path  func(a *app) string
	run   func(ctx context.Context, a *app, args []string) error
}

func fixed(path string) func(*app) string {
	return func(*app) string { return path }
}

func ownProfile(a *app) string {
	if user := a.session.CurrentUser(); user != nil {
		return "/users/" + user.UserID.String()
	}
	return "/users/me"
}

func (a *app) commands() map[string]command {
	return map[string]command{
		"login":           {usage: "login -email EMAIL -password PASSWORD", path: fixed("/login"), run: runLogin},
		"register":        {usage: "register -name NAME -email EMAIL -password PASSWORD -confirm PASSWORD -role PATIENT|DOCTOR -phone PHONE", path: fixed("/register"), run: runRegister},
		"forgot-password": {usage: "forgot-password -email EMAIL -password PASSWORD -confirm PASSWORD", path: fixed("/forgot-password"), run: runForgotPassword},
		"logout":          {usage: "logout", path: fixed("/home"), run: runLogout},
		"whoami":          {usage: "whoami", path: ownProfile, run: runWhoami},
		"profile":         {usage: "profile show [-user ID] | edit -name NAME -password PASSWORD -phone PHONE | delete", path: ownProfile, run: runProfile},
		"slots":           {usage: "slots list|search|create|edit|delete|book [flags]", path: fixed("/availabilitites"), run: runSlots},
		"appointments":    {usage: "appointments list|cancel|complete [flags]", path: ownProfile, run: runAppointments},
		"consultation":    {usage: "consultation show|create|edit|delete -appointment ID [flags]", path: ownProfile, run: runConsultation},
		"open":            {usage: "open PATH", path: nil, run: runOpen},
	}
}

func (a *app) run(ctx context.Context, args []string) int {
	commands := a.commands()
	if len(args) == 0 {
		a.usage(commands)
		return 2
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "unknown command %q\n", args[0])
		a.usage(commands)
		return 2
	}

	if err := a.session.Restore(ctx); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("discarded persisted session")
	}

	if cmd.path != nil {
		want, err := a.router.Resolve(ctx, cmd.path(a))
		if err != nil {
			return a.fail(err)
		}
		if len(want.Redirects) > 0 {
			fmt.Fprintf(a.errOut, "Redirected to %s\n", want.Path)
			a.printLoginNotices(want)
			return 1
		}
	}

	if err := cmd.run(ctx, a, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		return a.fail(err)
	}
	return 0
}

func (a *app) printLoginNotices(match navigation.Match) {
	if match.Name != navigation.RouteLogin {
		return
	}
	for _, msg := range a.auth.LoginNotices() {
		fmt.Fprintln(a.errOut, msg)
	}
}

// usageError is a malformed command line
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func (a *app) fail(err error) int {
	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(a.errOut, uerr.msg)
		return 2
	}
	title, body := apperrors.Describe(err)
	fmt.Fprintf(a.errOut, "%s: %s\n", title, body)
	observability.GetLogger().Debug().Err(err).Msg("command failed")
	return 1
}

func (a *app) usage(commands map[string]command) {
	fmt.Fprintln(a.errOut, "usage: healthcare COMMAND [flags]")
	for _, name := range sortedKeys(commands) {
		fmt.Fprintf(a.errOut, "  %s\n", commands[name].usage)
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// flags creates a FlagSet that reports errors instead of exiting
func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func subcommand(args []string, names ...string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, &usageError{msg: "expected one of: " + strings.Join(names, ", ")}
	}
	for _, name := range names {
		if args[0] == name {
			return name, args[1:], nil
		}
	}
	return "", nil, &usageError{msg: fmt.Sprintf("unknown subcommand %q, expected one of: %s", args[0], strings.Join(names, ", "))}
}
