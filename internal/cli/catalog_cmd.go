package cli

import (
	"fmt"

	"github.com/alexanderramin/courseplan/internal/cli/formatter"
	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/service"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Search and inspect the course catalog",
	}

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogShowCmd(app),
		newCatalogDeptsCmd(app),
		newCatalogLintCmd(app),
	)

	return cmd
}

func loadCatalog(cmd *cobra.Command, app *App) (*service.LoadedCatalog, error) {
	cat, err := app.Catalog.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}

// resolveCourse finds a catalog course by title (case-insensitive).
func resolveCourse(cmd *cobra.Command, app *App, title string) (domain.Course, error) {
	cat, err := loadCatalog(cmd, app)
	if err != nil {
		return domain.Course{}, err
	}
	c, ok := app.Catalog.Find(cat.Courses, title)
	if !ok {
		return domain.Course{}, fmt.Errorf("course not found: %q", title)
	}
	return c, nil
}

func newCatalogListCmd(app *App) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courses matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := ff.spec()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cmd, app)
			if err != nil {
				return err
			}
			state := app.Planner.State(cmd.Context())
			courses := app.Catalog.Filter(cat.Courses, spec)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseList(courses, state.IsSelected))
			return nil
		},
	}

	ff.bind(cmd.Flags())
	return cmd
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TITLE",
		Short: "Show one course in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveCourse(cmd, app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCourseDetail(c))
			return nil
		},
	}
}

func newCatalogDeptsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "depts",
		Short: "List department buckets with course counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDepartments(cat.Courses))
			return nil
		},
	}
}

func newCatalogLintCmd(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report the catalog's shape and schema advisories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd, app)
			if err != nil {
				return err
			}
			report, err := app.Catalog.Lint(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLintReport(cat.Source, report))
			if strict && len(report.Advisories) > 0 {
				return fmt.Errorf("catalog has %d advisories", len(report.Advisories))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when there are advisories")
	return cmd
}
