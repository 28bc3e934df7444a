package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move [from] [to]",
	Short: "Reorder a day's tasks",
	Long: `Move a task from one position to another within its day. Positions
are 1-based and refer to the day list shown by 'daybook list'.

Example:
  daybook move 3 1 -d 2026-09-01`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

var moveDate string

func init() {
	moveCmd.Flags().StringVarP(&moveDate, "date", "d", "", "Date to reorder (YYYY-MM-DD, default today)")
}

func runMove(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	date, err := resolveDate(moveDate)
	if err != nil {
		return err
	}

	from, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid position %q", args[0])
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid position %q", args[1])
	}

	if !st.ReorderTasks(date, from-1, to-1) {
		return fmt.Errorf("cannot move %d -> %d on %s", from, to, date)
	}
	if err := st.Save(); err != nil {
		return err
	}

	fmt.Printf("Moved task %d -> %d on %s\n", from, to, date)
	return nil
}
