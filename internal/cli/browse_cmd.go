package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errNotTerminal = errors.New("browse needs an interactive terminal; use 'catalog list' instead")

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively and toggle selections",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotTerminal
			}
			cat, err := loadCatalog(cmd, app)
			if err != nil {
				return err
			}
			m := newBrowseModel(cmd.Context(), cat.Courses, app.Catalog, app.Planner)
			return app.runProgram(m)
		},
	}
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
