// Package catalog holds the compiled-in restaurant menu.
package catalog

import "github.com/mmynk/dinesplit/internal/models"

const (
	vegMealImage    = "/assets/veg-meal.jpg"
	nonvegMealImage = "/assets/nonveg-meal.jpg"
)

var menu = []models.MenuEntry{
	{
		ID:          "1",
		Name:        "Paneer Butter Masala",
		Description: "Creamy tomato curry with soft paneer cubes and aromatic spices",
		Price:       280,
		ImageRef:    vegMealImage,
		Category:    models.CategoryVeg,
	},
	{
		ID:          "2",
		Name:        "Veg Biryani",
		Description: "Fragrant basmati rice with mixed vegetables and traditional spices",
		Price:       250,
		ImageRef:    vegMealImage,
		Category:    models.CategoryVeg,
	},
	{
		ID:          "3",
		Name:        "Dal Makhani",
		Description: "Rich and creamy black lentils slow-cooked to perfection",
		Price:       220,
		ImageRef:    vegMealImage,
		Category:    models.CategoryVeg,
	},
	{
		ID:          "4",
		Name:        "Mushroom Masala",
		Description: "Button mushrooms in a spicy onion-tomato gravy",
		Price:       240,
		ImageRef:    vegMealImage,
		Category:    models.CategoryVeg,
	},
	{
		ID:          "5",
		Name:        "Chicken Tikka Masala",
		Description: "Grilled chicken pieces in a rich, creamy tomato-based curry",
		Price:       380,
		ImageRef:    nonvegMealImage,
		Category:    models.CategoryNonVeg,
	},
	{
		ID:          "6",
		Name:        "Butter Chicken",
		Description: "Tender chicken in a silky smooth butter and tomato sauce",
		Price:       400,
		ImageRef:    nonvegMealImage,
		Category:    models.CategoryNonVeg,
	},
	{
		ID:          "7",
		Name:        "Chicken Biryani",
		Description: "Aromatic rice layered with succulent chicken and spices",
		Price:       350,
		ImageRef:    nonvegMealImage,
		Category:    models.CategoryNonVeg,
	},
	{
		ID:          "8",
		Name:        "Fish Curry",
		Description: "Fresh fish cooked in a tangy coconut-based curry",
		Price:       420,
		ImageRef:    nonvegMealImage,
		Category:    models.CategoryNonVeg,
	},
}

// Catalog is a read-only view over a fixed list of menu entries.
type Catalog struct {
	entries []models.MenuEntry
	byID    map[string]int
}

// Default returns the restaurant's menu.
func Default() *Catalog {
	return New(menu)
}

// New builds a catalog from entries. Later duplicates of an ID are dropped.
func New(entries []models.MenuEntry) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(entries))}
	for _, e := range entries {
		if _, dup := c.byID[e.ID]; dup {
			continue
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// All returns every entry in menu order.
func (c *Catalog) All() []models.MenuEntry {
	out := make([]models.MenuEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByCategory returns the entries of one category in menu order.
// An empty category returns every entry.
func (c *Catalog) ByCategory(cat models.Category) []models.MenuEntry {
	if cat == "" {
		return c.All()
	}
	var out []models.MenuEntry
	for _, e := range c.entries {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// Lookup returns the entry with the given ID.
func (c *Catalog) Lookup(id string) (models.MenuEntry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.MenuEntry{}, false
	}
	return c.entries[i], true
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
