package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/store"
	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
	RunE:    runCategoryList,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE:  runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a category (its tasks move to ETC)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryDelete,
}

var categoryMoveCmd = &cobra.Command{
	Use:   "move [from] [to]",
	Short: "Reorder categories (1-based positions)",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryMove,
}

var categoryColor string

func init() {
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "", "Hex color, e.g. #4285F4")

	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
	categoryCmd.AddCommand(categoryMoveCmd)
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	for i, c := range st.Categories() {
		fmt.Printf("  %2d. %-12s %s  (%d templates)\n", i+1, c.Name, c.Color, len(c.Templates))
	}
	return nil
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	c := model.NewCategory(args[0], categoryColor)
	if err := st.AddCategory(c); err != nil {
		return err
	}
	if err := st.Save(); err != nil {
		return err
	}
	fmt.Printf("Added category %q (%s)\n", c.Name, c.Color)
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	name := args[0]
	if err := st.DeleteCategory(name); err != nil {
		if errors.Is(err, store.ErrReservedCategory) {
			return fmt.Errorf("category %q is reserved and cannot be deleted", name)
		}
		return fmt.Errorf("failed to delete category %q: %w", name, err)
	}
	if err := st.Save(); err != nil {
		return err
	}
	fmt.Printf("Deleted category %q; its tasks moved to %s\n", name, model.ReservedCategory)
	return nil
}

func runCategoryMove(cmd *cobra.Command, args []string) error {
	st, err := openStore()
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

	if !st.ReorderCategories(from-1, to-1) {
		return fmt.Errorf("cannot move category %d -> %d", from, to)
	}
	if err := st.Save(); err != nil {
		return err
	}
	fmt.Printf("Moved category %d -> %d\n", from, to)
	return nil
}
