package cli

import (
	"fmt"

	"github.com/daybook-app/daybook/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a task to a calendar day.

Examples:
  daybook add "Write weekly summary"
  daybook add "Review handler spec" -c Handler -d 2026-09-01
  daybook add --template Handler:0 -d 2026-09-01`,
	Args: cobra.ArbitraryArgs,
	RunE: runAdd,
}

var (
	addCategory  string
	addDate      string
	addContent   string
	addImportant bool
	addTemplate  string
)

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category name (default ETC)")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Creation date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addContent, "content", "", "Task content")
	addCmd.Flags().BoolVarP(&addImportant, "important", "i", false, "Mark as important")
	addCmd.Flags().StringVarP(&addTemplate, "template", "t", "", "Prefill from template (CATEGORY:INDEX)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	date, err := resolveDate(addDate)
	if err != nil {
		return err
	}

	title := ""
	for i, arg := range args {
		if i > 0 {
			title += " "
		}
		title += arg
	}
	content := addContent
	category := addCategory

	if addTemplate != "" {
		catName, idx, err := parseTemplateRef(addTemplate)
		if err != nil {
			return err
		}
		cat, ok := st.Category(catName)
		if !ok {
			return fmt.Errorf("category %q not found", catName)
		}
		if idx < 0 || idx >= len(cat.Templates) {
			return fmt.Errorf("category %q has no template %d", catName, idx)
		}
		tpl := cat.Templates[idx]
		if title == "" {
			title = tpl.Title
		}
		if content == "" {
			content = tpl.Content
		}
		if category == "" {
			category = catName
		}
	}

	if category != "" {
		if _, ok := st.Category(category); !ok {
			return fmt.Errorf("category %q not found", category)
		}
	}

	t := model.NewTask(title, content, category, date)
	t.Important = addImportant
	st.AddTask(t)
	if err := st.Save(); err != nil {
		return err
	}

	fmt.Printf("Added to %s: %q [%s]\n", t.CreatedDate, t.Title, t.Category)
	return nil
}

// parseTemplateRef splits a CATEGORY:INDEX template reference.
func parseTemplateRef(ref string) (string, int, error) {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == ':' {
			var idx int
			if _, err := fmt.Sscanf(ref[i+1:], "%d", &idx); err != nil {
				return "", 0, fmt.Errorf("invalid template reference %q: expected CATEGORY:INDEX", ref)
			}
			return ref[:i], idx, nil
		}
	}
	return "", 0, fmt.Errorf("invalid template reference %q: expected CATEGORY:INDEX", ref)
}
