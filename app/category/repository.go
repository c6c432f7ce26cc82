package category

import (
	"catalog/domain"
	"context"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	CreateCategory(ctx context.Context, name string) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	// DeleteCategory removes the category and its products, returning how many products went with it.
	DeleteCategory(ctx context.Context, id string) (int64, error)
	GetProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
}
