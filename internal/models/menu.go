package models

// Category is the dietary category of a menu entry.
type Category string

const (
	CategoryVeg    Category = "veg"
	CategoryNonVeg Category = "nonveg"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryVeg || c == CategoryNonVeg
}

// Label returns the human-readable badge text for the category.
func (c Category) Label() string {
	switch c {
	case CategoryVeg:
		return "Veg"
	case CategoryNonVeg:
		return "Non-Veg"
	default:
		return string(c)
	}
}

// MenuEntry represents a single dish on the menu.
// Entries are defined at process start and never mutated.
type MenuEntry struct {
	// ID is the unique identifier of the entry.
	ID string

	// Name is the display name (e.g., "Paneer Butter Masala").
	Name string

	// Description is a short blurb shown under the name.
	Description string

	// Price is the non-negative unit price in rupees.
	Price float64

	// ImageRef points at the dish image asset served to the browser.
	ImageRef string

	// Category is the dietary category used by the category split.
	Category Category
}
