package progression

// Defaults owned by every new player.
const (
	DefaultColor  = "white"
	DefaultDesign = "throwie"
	StartingMoney = 20
)

// CatalogItem is a purchasable cosmetic with a fixed price.
type CatalogItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Immutable shop tables. Lookups go through ColorItem/DesignItem so an
// unknown id is a denial, never a zero-priced purchase.
var colorCatalog = []CatalogItem{
	{ID: "white", Name: "Plain White", Price: 0},
	{ID: "crimson", Name: "Crimson", Price: 15},
	{ID: "cobalt", Name: "Cobalt Blue", Price: 15},
	{ID: "acid-green", Name: "Acid Green", Price: 25},
	{ID: "gold", Name: "Metallic Gold", Price: 50},
	{ID: "chrome", Name: "Chrome", Price: 80},
}

var designCatalog = []CatalogItem{
	{ID: "throwie", Name: "Throwie", Price: 0},
	{ID: "wildstyle", Name: "Wildstyle", Price: 30},
	{ID: "blockbuster", Name: "Blockbuster", Price: 45},
	{ID: "stencil", Name: "Stencil", Price: 60},
	{ID: "heaven-spot", Name: "Heaven Spot", Price: 100},
}

// Colors returns the color catalog.
func Colors() []CatalogItem {
	return colorCatalog
}

// Designs returns the design catalog.
func Designs() []CatalogItem {
	return designCatalog
}

// ColorItem looks up a color by id.
func ColorItem(id string) (CatalogItem, bool) {
	return findItem(colorCatalog, id)
}

// DesignItem looks up a design by id.
func DesignItem(id string) (CatalogItem, bool) {
	return findItem(designCatalog, id)
}

func findItem(items []CatalogItem, id string) (CatalogItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return CatalogItem{}, false
}
