package product

import (
	"catalog/domain"
	"catalog/pkg/events"
	"context"

	"github.com/shopspring/decimal"
)

type UpdateProductHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

type UpdateProductRequest struct {
	ID          string           `params:"id" json:"-"`
	Name        string           `json:"product_name" validate:"required,max=255"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	CategoryID  string           `json:"category" validate:"required,uuid"`
}

type UpdateProductResponse = domain.Product

func NewUpdateProductHandler(repository Repository, eventPublisher events.Publisher) *UpdateProductHandler {
	return &UpdateProductHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

func (h UpdateProductHandler) Handle(ctx context.Context, req *UpdateProductRequest) (*UpdateProductResponse, error) {
	req.Name = trim(req.Name)
	req.Description = trim(req.Description)

	if err := validateRequest("update", req); err != nil {
		return nil, err
	}

	return saveProduct(ctx, h.repository, h.eventPublisher, "update", req.ID, func(product *domain.Product) {
		product.Name = req.Name
		product.Description = req.Description
		product.Price = *req.Price
		product.CategoryID = req.CategoryID
	})
}

// saveProduct loads the product, applies the mutation, validates the result
// and writes it back. The stored row is returned so the response matches a
// later read.
func saveProduct(ctx context.Context, repository Repository, publisher events.Publisher, action, id string, apply func(*domain.Product)) (*domain.Product, error) {
	product, err := repository.GetProduct(ctx, id)
	if err != nil {
		return nil, writeError(action, err)
	}

	apply(&product)

	if err := validateProduct(ctx, repository, action, product); err != nil {
		return nil, err
	}

	if err := repository.UpdateProduct(ctx, product); err != nil {
		return nil, writeError(action, err)
	}

	stored, err := repository.GetProduct(ctx, id)
	if err != nil {
		return nil, writeError(action, err)
	}

	events.Emit(ctx, publisher, events.ProductUpdatedEvent, productPayload(stored))

	return &stored, nil
}
