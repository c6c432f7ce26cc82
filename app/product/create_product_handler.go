package product

import (
	"catalog/domain"
	"catalog/pkg/events"
	"context"

	"github.com/shopspring/decimal"
)

type CreateProductHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

type CreateProductRequest struct {
	Name        string           `json:"product_name" validate:"required,max=255"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	CategoryID  string           `json:"category" validate:"required,uuid"`
}

type CreateProductResponse = domain.Product

func NewCreateProductHandler(repository Repository, eventPublisher events.Publisher) *CreateProductHandler {
	return &CreateProductHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

func (h CreateProductHandler) Handle(ctx context.Context, req *CreateProductRequest) (*CreateProductResponse, error) {
	req.Name = trim(req.Name)
	req.Description = trim(req.Description)

	if err := validateRequest("create", req); err != nil {
		return nil, err
	}

	product := domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
	}

	if err := validateProduct(ctx, h.repository, "create", product); err != nil {
		return nil, err
	}

	product, err := h.repository.CreateProduct(ctx, product)
	if err != nil {
		return nil, writeError("create", err)
	}

	events.Emit(ctx, h.eventPublisher, events.ProductCreatedEvent, productPayload(product))

	return &product, nil
}
