package ledger

import "github.com/YC815/Miaoli/pkg/models"

const (
	// DefaultSafetyStock is the low-stock threshold assigned to newly
	// created items until staff tune it per item.
	DefaultSafetyStock = 5
	DefaultUnit        = "piece"

	expiryWarningDays = 30

	categoryEssentials = "Daily Essentials"
	categoryGeneral    = "General"
	categoryCustom     = "Custom"
)

// defaultCatalog is the fixed list of supplies the station tracks from day
// one. A fresh store is seeded with these at zero quantity.
var defaultCatalog = []string{
	"Adult Diapers",
	"Wet Wipes",
	"Sanitary Pads",
	"Oatmeal",
	"Canned Porridge",
	"Instant Noodles",
	"Noodles",
	"Cooking Oil",
	"Soy Sauce",
	"Face Masks",
	"Body Wash",
	"Shampoo",
	"Laundry Detergent",
	"Soap",
	"Toothbrushes",
	"Toothpaste",
	"Rubbing Alcohol",
	"Toilet Paper",
	"Rice",
	"Canned Food",
	"Milk Powder",
	"Razors",
	"Snacks",
	"Sugar",
	"Salt",
	"Children's Diapers",
	"Dish Soap",
	"Bleach",
	"Pork Floss",
	"Bottled Water",
}

func categoryFor(name string) string {
	for _, known := range defaultCatalog {
		if known == name {
			return categoryEssentials
		}
	}
	return categoryGeneral
}

func defaultInventory(date string) []models.Item {
	items := make([]models.Item, 0, len(defaultCatalog))
	for _, name := range defaultCatalog {
		items = append(items, models.Item{
			Name:        name,
			Category:    categoryEssentials,
			Unit:        DefaultUnit,
			Quantity:    0,
			SafetyStock: DefaultSafetyStock,
			CreatedDate: date,
			LastUpdated: date,
			Operations:  []models.Operation{},
		})
	}
	return items
}
