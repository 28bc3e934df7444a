package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List a day's tasks",
	Long: `List the tasks of a calendar day, including important unfinished
tasks carried over from other days.

Examples:
  daybook list
  daybook list -d 2026-09-01`,
	RunE: runList,
}

var listDate string

func init() {
	listCmd.Flags().StringVarP(&listDate, "date", "d", "", "Date to list (YYYY-MM-DD, default today)")
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	date, err := resolveDate(listDate)
	if err != nil {
		return err
	}

	view := st.TasksForDate(date)
	stats := st.Stats(date)

	fmt.Printf("\n%s  (%d tasks, %.0f%% done)\n", date, stats.Total, stats.CompletionRate)
	fmt.Println(strings.Repeat("-", 64))

	if len(view.CarriedOver) > 0 {
		fmt.Println("  Carried over (important, unfinished):")
		for _, t := range view.CarriedOver {
			fmt.Printf("   > * %-8s  %-40s  (%s)\n", shortID(t.ID), truncate(t.Title, 40), t.CreatedDate)
		}
		fmt.Println()
	}

	if len(view.Tasks) == 0 {
		fmt.Println("  No tasks. Add one with: daybook add \"Your task\"")
		fmt.Println()
		return nil
	}
	for i, t := range view.Tasks {
		printTask(i+1, t)
	}
	fmt.Println()
	return nil
}
