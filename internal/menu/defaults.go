package menu

// Spec describes a menu in a form that can be written by hand or decoded
// from YAML. Prices are decimal strings so they are never rounded through
// binary floating point.
type Spec struct {
	Categories []CategorySpec `yaml:"categories"`
}

// CategorySpec describes one category and its items.
type CategorySpec struct {
	Name  string     `yaml:"name"`
	Items []ItemSpec `yaml:"items"`
}

// ItemSpec describes one item. The category is implied by the enclosing
// CategorySpec.
type ItemSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
}

// DefaultSpec is the house menu used when no menu file is configured.
var DefaultSpec = Spec{
	Categories: []CategorySpec{
		{
			Name: "Appetizers",
			Items: []ItemSpec{
				{"Spring Rolls", "Crispy vegetable spring rolls", "6.50"},
				{"Garlic Bread", "Toasted bread with garlic butter", "4.00"},
				{"Bruschetta", "Grilled bread topped with tomatoes, garlic, basil", "7.00"},
				{"Calamari Rings", "Fried calamari with dipping sauce", "9.50"},
			},
		},
		{
			Name: "Soups",
			Items: []ItemSpec{
				{"Tomato Soup", "Classic creamy tomato soup", "5.00"},
				{"Chicken Noodle Soup", "Hearty chicken and noodle soup", "5.50"},
				{"Lentil Soup", "Vegetarian lentil soup", "5.00"},
				{"French Onion Soup", "Rich onion soup with cheese crouton", "6.50"},
			},
		},
		{
			Name: "Main Courses",
			Items: []ItemSpec{
				{"Grilled Salmon", "Salmon fillet with seasonal vegetables", "18.00"},
				{"Steak Frites", "Grilled steak with french fries", "22.50"},
				{"Chicken Parmesan", "Breaded chicken with marinara and cheese", "16.00"},
				{"Vegetarian Pasta", "Pasta with mixed vegetables in tomato sauce", "14.00"},
			},
		},
		{
			Name: "Desserts",
			Items: []ItemSpec{
				{"Chocolate Cake", "Rich chocolate layer cake", "7.00"},
				{"Apple Pie", "Warm apple pie with cinnamon", "6.50"},
				{"Ice Cream Sundae", "Vanilla ice cream with toppings", "6.00"},
				{"Tiramisu", "Classic Italian coffee-flavored dessert", "7.50"},
			},
		},
		{
			Name: "Beverages",
			Items: []ItemSpec{
				{"Cola", "Standard cola soft drink", "2.50"},
				{"Lemonade", "Freshly squeezed lemonade", "3.00"},
				{"Iced Tea", "Sweetened or unsweetened iced tea", "2.50"},
				{"Coffee", "Freshly brewed coffee", "2.75"},
				{"Mineral Water", "Sparkling or still mineral water", "2.00"},
			},
		},
	},
}

// Default builds the house menu.
func Default() (*Catalog, error) {
	return FromSpec(DefaultSpec)
}
