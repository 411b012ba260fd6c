package cli

import (
	"bufio"
	"context"
	"errors"
	"os"

	"github.com/dpetrovs/authgate/internal/client"
	"github.com/dpetrovs/authgate/internal/client/config"
)

// apiClient is the surface of the HTTP client the CLI drives.
// *client.Client satisfies it; tests can provide a stub.
type apiClient interface {
	Register(ctx context.Context, username, password, projectID string) error
	Authenticate(ctx context.Context, username, password, projectID string) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	Protected(ctx context.Context) (string, error)
	LoggedIn() bool
}

// App ties the interactive REPL to the authgate API client. userName caches
// the name entered at login purely for the prompt; the source of truth for
// the session is the token pair held by the client.
type App struct {
	config   *config.Config
	api      apiClient
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerAddr == "" {
		return nil, errors.New("server address is not configured")
	}

	api := client.NewClient(c.ServerAddr, c.RequestTimeout)

	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}
