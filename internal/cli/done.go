package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task]",
	Short: "Toggle a task's completed flag",
	Long: `Toggle completion for a task, referenced by its position in the day
list or by an id prefix.

Examples:
  daybook done 2
  daybook done 3f9a21bc -d 2026-09-01`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var doneDate string

func init() {
	doneCmd.Flags().StringVarP(&doneDate, "date", "d", "", "Date of the task (YYYY-MM-DD, default today)")
}

func runDone(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	date, err := resolveDate(doneDate)
	if err != nil {
		return err
	}

	t, ok := matchTask(st.TasksForDate(date).Tasks, args[0])
	if !ok {
		return fmt.Errorf("no task %q on %s", args[0], date)
	}

	st.ToggleCompleted(t.ID)
	if err := st.Save(); err != nil {
		return err
	}

	updated, _ := st.Task(t.ID)
	state := "open"
	if updated.Completed {
		state = "done"
	}
	fmt.Printf("%q is now %s\n", updated.Title, state)
	return nil
}
