package cli

import (
	"fmt"
	"strconv"

	"github.com/daybook-app/daybook/internal/model"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Manage category templates",
}

var templateListCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List a category's templates",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateList,
}

var templateAddCmd = &cobra.Command{
	Use:   "add [category] [title]",
	Short: "Add a template to a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateAdd,
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete [category] [index]",
	Short: "Delete a template by its 0-based index",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateDelete,
}

var templateContent string

func init() {
	templateAddCmd.Flags().StringVar(&templateContent, "content", "", "Template content")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateDeleteCmd)
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	cat, ok := st.Category(args[0])
	if !ok {
		return fmt.Errorf("category %q not found", args[0])
	}
	if len(cat.Templates) == 0 {
		fmt.Printf("Category %q has no templates\n", cat.Name)
		return nil
	}
	for i, tpl := range cat.Templates {
		fmt.Printf("  %d. %-30s %s\n", i, tpl.Title, truncate(tpl.Content, 40))
	}
	return nil
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	category, title := args[0], args[1]
	if !st.AddTemplate(category, model.Template{Title: title, Content: templateContent}) {
		return fmt.Errorf("category %q not found", category)
	}
	if err := st.Save(); err != nil {
		return err
	}
	fmt.Printf("Added template %q to %q\n", title, category)
	return nil
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid template index %q", args[1])
	}
	if !st.RemoveTemplate(args[0], idx) {
		return fmt.Errorf("no template %d in category %q", idx, args[0])
	}
	if err := st.Save(); err != nil {
		return err
	}
	fmt.Printf("Removed template %d from %q\n", idx, args[0])
	return nil
}
