package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/courseplan/internal/cli/formatter"
	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/planner"
	"github.com/spf13/cobra"
)

var errNotConfirmed = errors.New("reset needs confirmation; pass --yes in non-interactive sessions")

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage selected courses and the four-year grid",
	}

	cmd.AddCommand(
		newPlanShowCmd(app),
		newPlanSelectCmd(app),
		newPlanUnselectCmd(app),
		newPlanAssignCmd(app),
		newPlanClearCmd(app),
		newPlanResetCmd(app),
	)

	return cmd
}

func printPlan(cmd *cobra.Command, state domain.PlannerV2State) {
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanner(state))
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the grid and selected courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			printPlan(cmd, app.Planner.State(cmd.Context()))
			return nil
		},
	}
}

func newPlanSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select TITLE",
		Short: "Add a catalog course to the selected list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveCourse(cmd, app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Planner.Select(cmd.Context(), c.Title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected %s\n", c.Title)
			return nil
		},
	}
}

func newPlanUnselectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unselect TITLE",
		Short: "Remove a course from the selected list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			state := app.Planner.State(cmd.Context())
			for _, it := range state.SelectedCourses {
				if equalTitle(it.Title, title) {
					title = it.Title
					break
				}
			}
			if !state.IsSelected(title) {
				return fmt.Errorf("course not selected: %q", args[0])
			}
			if _, err := app.Planner.Unselect(cmd.Context(), title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unselected %s\n", title)
			return nil
		},
	}
}

func newPlanAssignCmd(app *App) *cobra.Command {
	var year yearFlag
	var slot int

	cmd := &cobra.Command{
		Use:   "assign TITLE",
		Short: "Place a catalog course into a grid slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveCourse(cmd, app, args[0])
			if err != nil {
				return err
			}
			state, err := app.Planner.Assign(cmd.Context(), c, year.year, slot-1)
			if err != nil {
				return err
			}
			ref := planner.SlotRef{Year: year.year, Index: slot - 1}
			fmt.Fprintf(cmd.OutOrStdout(), "Placed %s in %s slot %d\n", c.Title, year.year, slot)
			if g := state.Grid[ref.Year][ref.Index].Group; g != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.Dim(fmt.Sprintf("group %d/%d filled", g.Filled(), g.Size)))
			}
			return nil
		},
	}

	cmd.Flags().Var(&year, "year", "Year (Freshman..Senior or 9-12)")
	cmd.Flags().IntVar(&slot, "slot", 0, "Slot number, starting at 1")
	requireFlags(cmd, "year", "slot")
	return cmd
}

func newPlanClearCmd(app *App) *cobra.Command {
	var year yearFlag
	var slot int
	var sub string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty a grid slot, or one item of a term group with --sub",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if sub == "" {
				if _, err := app.Planner.ClearSlot(ctx, year.year, slot-1); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s slot %d\n", year.year, slot)
				return nil
			}
			idx, err := parseSub(sub)
			if err != nil {
				return err
			}
			if _, err := app.Planner.ClearSub(ctx, year.year, slot-1, idx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s slot %d%s\n", year.year, slot, sub)
			return nil
		},
	}

	cmd.Flags().Var(&year, "year", "Year (Freshman..Senior or 9-12)")
	cmd.Flags().IntVar(&slot, "slot", 0, "Slot number, starting at 1")
	cmd.Flags().StringVar(&sub, "sub", "", "Group item to clear: a, b, c or 1, 2, 3")
	requireFlags(cmd, "year", "slot")
	return cmd
}

// parseSub accepts a letter (a-c) or a 1-based number.
func parseSub(s string) (int, error) {
	if len(s) == 1 {
		switch c := s[0]; {
		case c >= 'a' && c <= 'c':
			return int(c - 'a'), nil
		case c >= 'A' && c <= 'C':
			return int(c - 'A'), nil
		case c >= '1' && c <= '3':
			return int(c - '1'), nil
		}
	}
	return 0, fmt.Errorf("invalid --sub %q (want a-c or 1-3)", s)
}

func newPlanResetCmd(app *App) *cobra.Command {
	var year yearFlag
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the whole grid, or one year with --year",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state := app.Planner.State(ctx)

			scope := planner.AllSlots(state.Grid)
			what := "the whole grid"
			if year.year != "" {
				scope = planner.YearSlots(state.Grid, year.year)
				what = string(year.year) + " year"
			}

			if !yes {
				if !app.interactive() {
					return errNotConfirmed
				}
				ok, err := app.confirm(fmt.Sprintf("Clear %s?", what))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if _, err := app.Planner.ClearAll(ctx, scope); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", what)
			return nil
		},
	}

	cmd.Flags().Var(&year, "year", "Only clear this year")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
