package cli

import (
	"fmt"
	"strings"

	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Send an ad-hoc report",
	Long: `Build a day's HTML report and send it through the configured mail
transport. Without SMTP settings the report lands in the outbox
directory under the data dir.

Examples:
  daybook report send
  daybook report send -d 2026-09-01 --to team@example.com --types completed,incomplete
  daybook report test`,
}

var reportSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send the report",
	RunE:  runReportSend,
}

var reportTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test report to the saved recipients",
	RunE:  runReportTest,
}

var reportSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Save default recipients and content types",
	RunE:  runReportSettings,
}

var (
	reportDate       string
	reportRecipients []string
	reportTypes      string
	reportCategories []string
	reportTitle      string
)

func init() {
	for _, c := range []*cobra.Command{reportSendCmd, reportTestCmd} {
		c.Flags().StringVarP(&reportDate, "date", "d", "", "Report date (YYYY-MM-DD, default today)")
		c.Flags().StringSliceVar(&reportRecipients, "to", nil, "Recipients (default from saved settings)")
		c.Flags().StringVar(&reportTypes, "types", "", "Content types: all,completed,incomplete,pending_important")
		c.Flags().StringSliceVarP(&reportCategories, "category", "c", nil, "Only these categories")
		c.Flags().StringVar(&reportTitle, "title", "", "Custom subject suffix")
	}

	reportSettingsCmd.Flags().StringSliceVar(&reportRecipients, "to", nil, "Recipients")
	reportSettingsCmd.Flags().StringVar(&reportTypes, "types", "", "Content types")
	reportSettingsCmd.Flags().StringVar(&reportTitle, "title", "", "Custom subject suffix")

	reportCmd.AddCommand(reportSendCmd)
	reportCmd.AddCommand(reportTestCmd)
	reportCmd.AddCommand(reportSettingsCmd)
}

func runReportSend(cmd *cobra.Command, args []string) error {
	return sendReport(false)
}

func runReportTest(cmd *cobra.Command, args []string) error {
	return sendReport(true)
}

func sendReport(test bool) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	settings := report.LoadSettings(cfg.DataDir)

	recipients := settings.Recipients
	if len(reportRecipients) > 0 {
		recipients = reportRecipients
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients: pass --to or save them with 'daybook report settings'")
	}

	contentTypes := settings.ContentTypes
	if reportTypes != "" {
		contentTypes = strings.Split(reportTypes, ",")
	}
	if len(contentTypes) == 0 {
		contentTypes = []string{model.ContentAll}
	}

	var filter model.CategoryFilter
	if len(reportCategories) > 0 {
		filter = model.CategoryFilter(reportCategories)
	} else if len(settings.SelectedCategories) > 0 {
		filter = settings.SelectedCategories
	}

	date, err := resolveDate(reportDate)
	if err != nil {
		return err
	}

	data := report.Collect(st, date, filter, contentTypes)

	title := settings.CustomTitle
	if reportTitle != "" {
		title = reportTitle
	}
	subject := date.String() + " Daybook report"
	if title != "" {
		subject += " " + title
	}
	if test {
		subject = "[test] " + subject
	}

	html, err := report.RenderHTML(data, report.Meta{
		Title:         "Daybook report",
		Test:          test,
		CategoryColor: st.CategoryColor,
	})
	if err != nil {
		return err
	}

	transport := report.NewTransport(cfg)
	if err := transport.Send(subject, html, recipients); err != nil {
		return fmt.Errorf("report not sent: %w", err)
	}
	fmt.Printf("Report for %s sent to %s\n", date, strings.Join(recipients, ", "))
	return nil
}

func runReportSettings(cmd *cobra.Command, args []string) error {
	settings := report.LoadSettings(cfg.DataDir)

	if cmd.Flags().Changed("to") {
		settings.Recipients = reportRecipients
	}
	if cmd.Flags().Changed("types") {
		settings.ContentTypes = strings.Split(reportTypes, ",")
	}
	if cmd.Flags().Changed("title") {
		settings.CustomTitle = reportTitle
	}

	if err := report.SaveSettings(cfg.DataDir, settings); err != nil {
		return err
	}
	fmt.Println("Report settings saved")
	return nil
}
