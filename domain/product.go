package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"product_id" db:"product_id"`
	Name        string          `json:"product_name" db:"product_name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	CategoryID  string          `json:"category" db:"category_id"`
}

// MarshalJSON renders the price at its stored scale, e.g. "19.90".
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		Price string `json:"price"`
	}{
		product: product(p),
		Price:   FormatPrice(p.Price),
	})
}
