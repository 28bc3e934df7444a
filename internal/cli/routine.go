package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/report"
	"github.com/daybook-app/daybook/internal/routine"
	"github.com/spf13/cobra"
)

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Manage scheduled report routines",
	Long: `Routines send a day's report automatically at a configured time:
one-off on a date, every day, or weekly on chosen weekdays. The
interactive TUI checks them once per minute; 'routine run-due' does
the same check once for cron-style setups.`,
}

var routineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List routines",
	RunE:  runRoutineList,
}

var routineAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a routine",
	Long: `Add a report routine.

Examples:
  daybook routine add standup --to team@example.com --at 09:00
  daybook routine add friday-recap --to boss@example.com --at 17:30 --weekly friday
  daybook routine add handover --to oncall@example.com --at 18:00 --once 2026-09-01 -c LB`,
	Args: cobra.ExactArgs(1),
	RunE: runRoutineAdd,
}

var routineDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a routine",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoutineDelete,
}

var routineEnableCmd = &cobra.Command{
	Use:   "enable [id]",
	Short: "Enable a routine",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setRoutineEnabled(args[0], true) },
}

var routineDisableCmd = &cobra.Command{
	Use:   "disable [id]",
	Short: "Disable a routine",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setRoutineEnabled(args[0], false) },
}

var routineRunDueCmd = &cobra.Command{
	Use:   "run-due",
	Short: "Evaluate routines against the current minute once",
	RunE:  runRoutineRunDue,
}

var (
	routineTo         []string
	routineAt         string
	routineSubject    string
	routineOnce       string
	routineWeekly     []string
	routineTypes      string
	routineCategories []string
	routineMemo       string
)

func init() {
	routineAddCmd.Flags().StringSliceVar(&routineTo, "to", nil, "Recipients")
	routineAddCmd.Flags().StringVar(&routineAt, "at", "09:00", "Send time (HH:mm)")
	routineAddCmd.Flags().StringVar(&routineSubject, "subject", "", "Mail subject")
	routineAddCmd.Flags().StringVar(&routineOnce, "once", "", "One-off send date (YYYY-MM-DD)")
	routineAddCmd.Flags().StringSliceVar(&routineWeekly, "weekly", nil, "Weekdays, e.g. monday,friday")
	routineAddCmd.Flags().StringVar(&routineTypes, "types", "all", "Content types")
	routineAddCmd.Flags().StringSliceVarP(&routineCategories, "category", "c", nil, "Only these categories")
	routineAddCmd.Flags().StringVar(&routineMemo, "memo", "", "Free-text memo appended to the report")

	routineCmd.AddCommand(routineListCmd)
	routineCmd.AddCommand(routineAddCmd)
	routineCmd.AddCommand(routineDeleteCmd)
	routineCmd.AddCommand(routineEnableCmd)
	routineCmd.AddCommand(routineDisableCmd)
	routineCmd.AddCommand(routineRunDueCmd)
}

func runRoutineList(cmd *cobra.Command, args []string) error {
	routines := routine.OpenStore(cfg.DataDir)

	list := routines.List()
	if len(list) == 0 {
		fmt.Println("No routines. Add one with: daybook routine add")
		return nil
	}
	for _, r := range list {
		state := "enabled"
		if !r.Enabled {
			state = "disabled"
		}
		when := r.Repeat
		switch r.Repeat {
		case model.RepeatOnce:
			when = "once on " + r.SendDate.String()
		case model.RepeatWeekly:
			when = "weekly on " + strings.Join(r.Weekdays, ",")
		}
		last := "never"
		if !r.LastSentDate.IsZero() {
			last = r.LastSentDate.String() + " " + r.LastSentTime
		}
		fmt.Printf("  %-8s %-20s %s at %s, %s, last sent %s, total %d\n",
			shortID(r.ID), r.Name, when, r.SendTime, state, last, r.TotalSent)
	}
	return nil
}

func runRoutineAdd(cmd *cobra.Command, args []string) error {
	routines := routine.OpenStore(cfg.DataDir)

	r := model.NewRoutine(args[0])
	r.Recipients = routineTo
	r.SendTime = routineAt
	r.Subject = routineSubject
	r.Memo = routineMemo
	r.ContentTypes = strings.Split(routineTypes, ",")
	if len(routineCategories) > 0 {
		r.SelectedCategories = model.CategoryFilter(routineCategories)
	}

	if routineOnce != "" && len(routineWeekly) > 0 {
		return fmt.Errorf("--once and --weekly are mutually exclusive")
	}
	if routineOnce != "" {
		d, err := dateutil.Parse(routineOnce)
		if err != nil {
			return err
		}
		r.Repeat = model.RepeatOnce
		r.SendDate = d
	}
	if len(routineWeekly) > 0 {
		r.Repeat = model.RepeatWeekly
		r.Weekdays = routineWeekly
	}

	if err := routines.Add(r); err != nil {
		return err
	}
	if err := routines.Save(); err != nil {
		return err
	}
	fmt.Printf("Added routine %q (%s)\n", r.Name, shortID(r.ID))
	return nil
}

func runRoutineDelete(cmd *cobra.Command, args []string) error {
	routines := routine.OpenStore(cfg.DataDir)

	r, ok := findRoutine(routines, args[0])
	if !ok {
		return fmt.Errorf("routine %q not found", args[0])
	}
	routines.Delete(r.ID)
	if err := routines.Save(); err != nil {
		return err
	}
	fmt.Printf("Deleted routine %q\n", r.Name)
	return nil
}

func setRoutineEnabled(ref string, enabled bool) error {
	routines := routine.OpenStore(cfg.DataDir)

	r, ok := findRoutine(routines, ref)
	if !ok {
		return fmt.Errorf("routine %q not found", ref)
	}
	routines.SetEnabled(r.ID, enabled)
	if err := routines.Save(); err != nil {
		return err
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Printf("Routine %q %s\n", r.Name, state)
	return nil
}

func runRoutineRunDue(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	routines := routine.OpenStore(cfg.DataDir)
	checker := routine.NewChecker(st, routines, report.NewTransport(cfg))

	results := checker.Check(time.Now())
	if len(results) == 0 {
		fmt.Println("No routines due")
		return nil
	}
	for _, res := range results {
		if res.Sent {
			fmt.Printf("Sent %q\n", res.Routine.Name)
		} else {
			fmt.Printf("Failed %q: %v\n", res.Routine.Name, res.Err)
		}
	}
	return nil
}

// findRoutine matches a routine by id prefix or exact name.
func findRoutine(routines *routine.Store, ref string) (model.Routine, bool) {
	for _, r := range routines.List() {
		if r.Name == ref || strings.HasPrefix(r.ID, ref) {
			return r, true
		}
	}
	return model.Routine{}, false
}
