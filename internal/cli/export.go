package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export tasks as CSV",
	Long: `Export tasks to a CSV file, optionally filtered by date range,
category and completion state.

Examples:
  daybook export tasks.csv
  daybook export done.csv --from 2026-08-01 --to 2026-08-31 --completed
  daybook export lb.csv --category LB --fields title,category,completed`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportFrom       string
	exportTo         string
	exportCategories []string
	exportCompleted  bool
	exportOpen       bool
	exportFields     string
	exportNoHeader   bool
)

func init() {
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Start date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "End date (YYYY-MM-DD)")
	exportCmd.Flags().StringSliceVarP(&exportCategories, "category", "c", nil, "Only these categories")
	exportCmd.Flags().BoolVar(&exportCompleted, "completed", false, "Only completed tasks")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "Only open tasks")
	exportCmd.Flags().StringVar(&exportFields, "fields", "", "Comma-separated field list")
	exportCmd.Flags().BoolVar(&exportNoHeader, "no-header", false, "Omit the header row")
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	var filter export.Filter
	if exportFrom != "" {
		d, err := dateutil.Parse(exportFrom)
		if err != nil {
			return err
		}
		filter.From = &d
	}
	if exportTo != "" {
		d, err := dateutil.Parse(exportTo)
		if err != nil {
			return err
		}
		filter.To = &d
	}
	filter.Categories = exportCategories
	if exportCompleted && exportOpen {
		return fmt.Errorf("--completed and --open are mutually exclusive")
	}
	if exportCompleted {
		v := true
		filter.Completed = &v
	}
	if exportOpen {
		v := false
		filter.Completed = &v
	}

	opts := export.Options{IncludeHeader: !exportNoHeader}
	if exportFields != "" {
		opts.Fields = strings.Split(exportFields, ",")
	}

	tasks := export.Apply(st.AllTasks(), filter)

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", args[0], err)
	}
	defer f.Close()

	if err := export.Write(f, tasks, opts); err != nil {
		return err
	}
	fmt.Printf("Exported %d tasks to %s\n", len(tasks), args[0])
	return nil
}
