package product

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
)

type GetProductsHandler struct {
	repository Repository
}

func NewGetProductsHandler(repository Repository) *GetProductsHandler {
	return &GetProductsHandler{
		repository: repository,
	}
}

type GetProductsRequest struct{}

type GetProductsResponse []domain.Product

func (h GetProductsHandler) Handle(ctx context.Context, req *GetProductsRequest) (*GetProductsResponse, error) {
	products, err := h.repository.GetProducts(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"product.index.failed",
			"Failed to retrieve products",
			err,
		)
	}

	res := GetProductsResponse(products)
	return &res, nil
}
