package core

// Category is static reference data for classifying expenses. The set is
// fixed in code and not persisted; Color is a CSS class token consumed by
// the templates.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

// Categories lists every known category in display order. The last entry
// ("other") doubles as the fallback for unknown codes.
var Categories = []Category{
	{ID: "materials", Name: "Materials", Icon: "🧱", Color: "cat-orange"},
	{ID: "labor", Name: "Labor", Icon: "👷", Color: "cat-blue"},
	{ID: "cement", Name: "Cement Work", Icon: "🏗️", Color: "cat-gray"},
	{ID: "steel", Name: "Steel & RCC", Icon: "🔩", Color: "cat-yellow"},
	{ID: "brick", Name: "Brick Work", Icon: "🧱", Color: "cat-red"},
	{ID: "plumbing", Name: "Plumbing", Icon: "🚰", Color: "cat-cyan"},
	{ID: "electrical", Name: "Electrical", Icon: "⚡", Color: "cat-amber"},
	{ID: "painting", Name: "Painting", Icon: "🎨", Color: "cat-purple"},
	{ID: "flooring", Name: "Flooring", Icon: "🏠", Color: "cat-brown"},
	{ID: "other", Name: "Other", Icon: "📦", Color: "cat-green"},
}

// CategoryByID resolves a category code to its display metadata. Unknown or
// empty codes resolve to the last entry rather than failing, so display
// logic stays total; the raw code on the record is left untouched.
func CategoryByID(id string) Category {
	for _, c := range Categories {
		if c.ID == id {
			return c
		}
	}
	return Categories[len(Categories)-1]
}
