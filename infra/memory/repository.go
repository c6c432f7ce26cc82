package memory

import (
	"catalog/domain"
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Repository keeps categories and products in process memory. It mirrors the
// constraints the Postgres schema enforces and is used for local runs and
// tests.
type Repository struct {
	mu         sync.RWMutex
	categories map[string]domain.Category
	products   map[string]domain.Product
}

func NewRepository() *Repository {
	return &Repository{
		categories: make(map[string]domain.Category),
		products:   make(map[string]domain.Product),
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *Repository) Close() error {
	return nil
}

func (r *Repository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categories = append(categories, c)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

func (r *Repository) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return domain.Category{}, sql.ErrNoRows
	}

	return c, nil
}

func (r *Repository) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(name, "") {
		return domain.Category{}, domain.ErrDuplicateCategoryName
	}

	c := domain.Category{
		ID:   uuid.NewString(),
		Name: name,
	}
	r.categories[c.ID] = c

	return c, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[category.ID]; !ok {
		return sql.ErrNoRows
	}

	if r.nameTaken(category.Name, category.ID) {
		return domain.ErrDuplicateCategoryName
	}

	r.categories[category.ID] = category
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return 0, sql.ErrNoRows
	}

	var deleted int64
	for productID, p := range r.products {
		if p.CategoryID == id {
			delete(r.products, productID)
			deleted++
		}
	}
	delete(r.categories, id)

	return deleted, nil
}

func (r *Repository) GetProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return r.listProducts(func(p domain.Product) bool {
		return p.CategoryID == categoryID
	}), nil
}

func (r *Repository) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return r.listProducts(func(domain.Product) bool { return true }), nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, sql.ErrNoRows
	}

	return p, nil
}

func (r *Repository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[product.CategoryID]; !ok {
		return domain.Product{}, domain.ErrCategoryNotFound
	}

	product.ID = uuid.NewString()
	r.products[product.ID] = product

	return product, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return sql.ErrNoRows
	}

	if _, ok := r.categories[product.CategoryID]; !ok {
		return domain.ErrCategoryNotFound
	}

	r.products[product.ID] = product
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return sql.ErrNoRows
	}

	delete(r.products, id)
	return nil
}

func (r *Repository) nameTaken(name, exceptID string) bool {
	for id, c := range r.categories {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}

func (r *Repository) listProducts(keep func(domain.Product) bool) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0)
	for _, p := range r.products {
		if keep(p) {
			products = append(products, p)
		}
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Name == products[j].Name {
			return products[i].ID < products[j].ID
		}
		return products[i].Name < products[j].Name
	})

	return products
}
