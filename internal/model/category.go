package model

// ReservedCategory always exists and cannot be deleted. Tasks whose
// category is removed are reassigned to it.
const ReservedCategory = "ETC"

// defaultColors are the colors assigned to the built-in categories.
var defaultColors = map[string]string{
	"LB":      "#4285F4",
	"Tester":  "#FBBC05",
	"Handler": "#34A853",
	"ETC":     "#EA4335",
}

// fallbackColor is used for categories without a known default.
const fallbackColor = "#9E9E9E"

// Template is a (title, content) pair used to prefill a new task.
type Template struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Category groups tasks and carries its display color and templates.
type Category struct {
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	Templates []Template `json:"templates,omitempty"`
}

// NewCategory creates a category, picking the default color for known
// names and gray otherwise when no color is given.
func NewCategory(name, color string) Category {
	if color == "" {
		color = defaultColors[name]
		if color == "" {
			color = fallbackColor
		}
	}
	return Category{Name: name, Color: color}
}

// DefaultCategories returns the built-in category set used when no
// categories file exists yet.
func DefaultCategories() []Category {
	return []Category{
		NewCategory("LB", ""),
		NewCategory("Tester", ""),
		NewCategory("Handler", ""),
		NewCategory(ReservedCategory, ""),
	}
}
