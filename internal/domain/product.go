package domain

import "github.com/shopspring/decimal"

// ProductCategory enumerates catalog categories.
type ProductCategory string

const (
	CategoryElectronics   ProductCategory = "ELECTRONICS"
	CategoryClothing      ProductCategory = "CLOTHING"
	CategoryBooks         ProductCategory = "BOOKS"
	CategoryHomeGarden    ProductCategory = "HOME_GARDEN"
	CategorySports        ProductCategory = "SPORTS"
	CategoryHealthBeauty  ProductCategory = "HEALTH_BEAUTY"
	CategoryToysGames     ProductCategory = "TOYS_GAMES"
	CategoryFoodBeverages ProductCategory = "FOOD_BEVERAGES"
	CategoryAutomotive    ProductCategory = "AUTOMOTIVE"
	CategoryOther         ProductCategory = "OTHER"
)

// Valid reports whether c is one of the known categories.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryBooks, CategoryHomeGarden,
		CategorySports, CategoryHealthBeauty, CategoryToysGames,
		CategoryFoodBeverages, CategoryAutomotive, CategoryOther:
		return true
	}
	return false
}

// Product is the domain model for sellable catalog items.
type Product struct {
	Lifecycle
	Name          string
	Description   string
	SKU           string
	Price         decimal.Decimal
	Category      ProductCategory
	StockQuantity *int
	Active        bool
}

// NewProduct constructs an active product with zero on-hand stock.
func NewProduct(name, sku string, price decimal.Decimal, category ProductCategory) *Product {
	stock := 0
	return &Product{
		Lifecycle:     NewLifecycle(),
		Name:          name,
		SKU:           sku,
		Price:         price,
		Category:      category,
		StockQuantity: &stock,
		Active:        true,
	}
}

// InStock reports whether on-hand stock is known and positive.
func (p *Product) InStock() bool {
	return p.StockQuantity != nil && *p.StockQuantity > 0
}

// Available reports whether the product can be sold: active and in stock.
func (p *Product) Available() bool {
	return p.Active && p.InStock()
}

// AddStock increases on-hand stock by quantity. Non-positive quantities are
// ignored. Unknown stock counts as zero.
func (p *Product) AddStock(quantity int) {
	if quantity <= 0 {
		return
	}
	current := 0
	if p.StockQuantity != nil {
		current = *p.StockQuantity
	}
	next := current + quantity
	p.StockQuantity = &next
	p.Touch()
}

// RemoveStock decreases on-hand stock by quantity. It reports false and
// leaves the product unchanged when quantity is non-positive, stock is
// unknown, or stock would go negative.
func (p *Product) RemoveStock(quantity int) bool {
	if quantity <= 0 || p.StockQuantity == nil || *p.StockQuantity < quantity {
		return false
	}
	next := *p.StockQuantity - quantity
	p.StockQuantity = &next
	p.Touch()
	return true
}

// Activate marks the product sellable.
func (p *Product) Activate() {
	p.Active = true
	p.Touch()
}

// Deactivate withdraws the product from sale.
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
}
