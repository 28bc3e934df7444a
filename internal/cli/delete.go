package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task, referenced by its position in the day list or by an
id prefix. The remaining tasks of the day keep their relative order.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var (
	deleteDate  string
	deleteForce bool
)

func init() {
	deleteCmd.Flags().StringVarP(&deleteDate, "date", "d", "", "Date of the task (YYYY-MM-DD, default today)")
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	date, err := resolveDate(deleteDate)
	if err != nil {
		return err
	}

	t, ok := matchTask(st.TasksForDate(date).Tasks, args[0])
	if !ok {
		return fmt.Errorf("no task %q on %s", args[0], date)
	}

	if cfg.ConfirmDelete && !deleteForce {
		fmt.Printf("Delete %q? [y/N] ", t.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) != "y" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	st.DeleteTask(t.ID)
	if err := st.Save(); err != nil {
		return err
	}

	fmt.Printf("Deleted %q\n", t.Title)
	return nil
}
