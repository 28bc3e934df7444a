package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a day's completion statistics",
	RunE:  runStats,
}

var statsDate string

func init() {
	statsCmd.Flags().StringVarP(&statsDate, "date", "d", "", "Date (YYYY-MM-DD, default today)")
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	date, err := resolveDate(statsDate)
	if err != nil {
		return err
	}

	s := st.Stats(date)
	fmt.Printf("%s: %d tasks, %d done (%.1f%%)\n", date, s.Total, s.Completed, s.CompletionRate)
	return nil
}
