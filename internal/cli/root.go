// Package cli defines the daybook command tree.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/report"
	"github.com/daybook-app/daybook/internal/routine"
	"github.com/daybook-app/daybook/internal/store"
	"github.com/daybook-app/daybook/internal/tui"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logConsole bool
	dataDir    string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Daybook - day planner with categories and email reports",
	Long: `Daybook is a terminal day planner: tasks per calendar day, categories
with templates, CSV export, and scheduled HTML email reports.

Run 'daybook' without arguments to launch the interactive calendar.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = dataDir
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Daybook started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}

		routines := routine.OpenStore(cfg.DataDir)
		checker := routine.NewChecker(st, routines, report.NewTransport(cfg))

		logger.Info("Launching TUI")
		m := tui.NewModel(st, checker, cfg)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		if err := st.Save(); err != nil {
			logger.Error("Failed to save on exit", logger.F("error", err))
			return err
		}
		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Daybook exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// openStore opens the task store at the configured data directory.
func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to open store", logger.F("error", err))
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory for JSON files")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(routineCmd)
}
