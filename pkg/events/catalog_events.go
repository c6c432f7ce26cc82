package events

import (
	"time"
)

const (
	ServiceName     = "catalog"
	CatalogExchange = "catalog"
)

// Event names
const (
	CategoryCreatedEvent = "category.created"
	CategoryUpdatedEvent = "category.updated"
	CategoryDeletedEvent = "category.deleted"
	ProductCreatedEvent  = "product.created"
	ProductUpdatedEvent  = "product.updated"
	ProductDeletedEvent  = "product.deleted"
)

const (
	EventVersionV1 = "v1"
)

// CategoryPayload is carried by category.created and category.updated.
type CategoryPayload struct {
	ID   string `json:"categoryId"`
	Name string `json:"categoryName"`
}

type CategoryDeletedPayload struct {
	ID              string    `json:"categoryId"`
	ProductsDeleted int64     `json:"productsDeleted"`
	DeletedAt       time.Time `json:"deletedAt"`
}

// ProductPayload is carried by product.created and product.updated.
type ProductPayload struct {
	ID          string `json:"productId"`
	Name        string `json:"productName"`
	Description string `json:"description"`
	Price       string `json:"price"` // fixed two decimals, e.g. "19.90"
	CategoryID  string `json:"categoryId"`
}

type ProductDeletedPayload struct {
	ID         string    `json:"productId"`
	CategoryID string    `json:"categoryId"`
	DeletedAt  time.Time `json:"deletedAt"`
}
