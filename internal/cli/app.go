package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"bankdesk/internal/services"
	"bankdesk/internal/session"
)

// Options configures the terminal application
type Options struct {
	In      io.Reader
	Out     io.Writer
	NoColor bool
	Logger  *slog.Logger
}

// App is the interactive terminal front end: a top-level menu and, after
// login, the account dashboard.
type App struct {
	accounts services.AccountServiceInterface
	sessions *session.Manager
	reader   *bufio.Reader
	out      io.Writer
	secretFd int
	render   *renderer
	logger   *slog.Logger
}

// NewApp wires the application to the account service
func NewApp(accounts services.AccountServiceInterface, opts Options) *App {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	secretFd := -1
	if f, ok := opts.In.(*os.File); ok {
		secretFd = int(f.Fd())
	}

	return &App{
		accounts: accounts,
		sessions: session.NewManager(accounts),
		reader:   bufio.NewReader(opts.In),
		out:      opts.Out,
		secretFd: secretFd,
		render:   newRenderer(opts.Out, opts.NoColor),
		logger:   opts.Logger,
	}
}

// Run shows the top-level menu until the user exits or input ends.
// It returns ctx.Err() if the context is cancelled between actions.
func (a *App) Run(ctx context.Context) error {
	err := a.root(ctx)
	a.sessions.Logout()
	if errors.Is(err, io.EOF) {
		a.render.line("")
		return nil
	}
	return err
}
