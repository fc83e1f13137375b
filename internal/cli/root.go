package cli

import (
	"context"
	"net/http"

	"github.com/alexanderramin/courseplan/internal/logger"
	"github.com/alexanderramin/courseplan/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to the services and terminal hooks used by commands.
type App struct {
	Catalog service.CatalogService
	Planner service.PlannerService
	Prefs   service.PrefsService
	Log     *logger.Logger

	// ListenAddr is the default for serve --addr.
	ListenAddr string

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool

	// Confirm asks a yes/no question. Defaults to a huh confirm form.
	Confirm func(title string) (bool, error)

	// RunProgram runs a bubbletea model to completion. Defaults to tea.NewProgram.
	RunProgram func(m tea.Model) error

	// Serve runs handler on addr until ctx ends. Defaults to the gin server.
	Serve func(ctx context.Context, addr string, handler http.Handler) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "courseplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "courseplan",
		Short:         "Course catalog browser and four-year planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCatalogCmd(app),
		newPlanCmd(app),
		newPrefsCmd(app),
		newBrowseCmd(app),
		newServeCmd(app),
	)

	return root
}
