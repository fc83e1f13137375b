package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/courseplan/internal/cli/formatter"
	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/store"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Onboarding answers: grade, math course, language",
	}

	cmd.AddCommand(
		newPrefsSetCmd(app),
		newPrefsShowCmd(app),
	)

	return cmd
}

func prefsForm(p *domain.CatalogPrefs) *huh.Form {
	grades := make([]huh.Option[int], 0, 4)
	for g := 9; g <= 12; g++ {
		grades = append(grades, huh.NewOption(fmt.Sprintf("Grade %d", g), g))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Which grade are you entering?").
				Options(grades...).
				Value(&p.Grade),
			huh.NewInput().
				Title("Current math course").
				Placeholder("Geometry").
				Value(&p.MathCourse),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Language you study").
				Placeholder("Spanish").
				Value(&p.Language.Name),
			huh.NewInput().
				Title("Level").
				Placeholder("II").
				Value(&p.Language.Level),
			huh.NewSelect[string]().
				Title("Plan for next year").
				Options(
					huh.NewOption("Continue", "continue"),
					huh.NewOption("Start a new language", "switch"),
					huh.NewOption("Stop", "stop"),
				).
				Value(&p.Language.Intent),
		),
	).WithTheme(huhTheme())
}

func newPrefsSetCmd(app *App) *cobra.Command {
	var p domain.CatalogPrefs

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save onboarding answers (prompts when no flags are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				if !app.interactive() {
					return errors.New("no answers given; pass --grade and friends or run in a terminal")
				}
				if existing, err := app.Prefs.LoadPrefs(cmd.Context()); err == nil {
					p = existing
				}
				if err := prefsForm(&p).Run(); err != nil {
					return err
				}
			}
			if p.Grade < 9 || p.Grade > 12 {
				return fmt.Errorf("grade must be between 9 and 12, got %d", p.Grade)
			}
			saved, _ := app.Prefs.SavePrefs(cmd.Context(), p)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPrefs(saved))
			return nil
		},
	}

	cmd.Flags().IntVar(&p.Grade, "grade", 0, "Grade entering (9-12)")
	cmd.Flags().StringVar(&p.MathCourse, "math", "", "Current math course")
	cmd.Flags().StringVar(&p.Language.Name, "language", "", "Language studied")
	cmd.Flags().StringVar(&p.Language.Level, "language-level", "", "Language level")
	cmd.Flags().StringVar(&p.Language.Intent, "language-intent", "", "continue, switch or stop")
	return cmd
}

func newPrefsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show saved onboarding answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Prefs.LoadPrefs(cmd.Context())
			if errors.Is(err, store.ErrNoPrefs) {
				fmt.Fprintln(cmd.OutOrStdout(), "No onboarding answers saved. Run 'courseplan prefs set'.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPrefs(p))
			return nil
		},
	}
}
