package category

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
)

// GetCategoryProductsHandler lists the products owned by one category.
type GetCategoryProductsHandler struct {
	repository Repository
}

func NewGetCategoryProductsHandler(repository Repository) *GetCategoryProductsHandler {
	return &GetCategoryProductsHandler{
		repository: repository,
	}
}

type GetCategoryProductsRequest struct {
	CategoryID string `params:"id" json:"-"`
}

type GetCategoryProductsResponse []domain.Product

func (h GetCategoryProductsHandler) Handle(ctx context.Context, req *GetCategoryProductsRequest) (*GetCategoryProductsResponse, error) {
	if _, err := h.repository.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"category.products.not_found",
				"Category not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"category.products.failed",
			"Failed to retrieve category",
			err,
		)
	}

	products, err := h.repository.GetProductsByCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"category.products.failed",
			"Failed to retrieve products",
			err,
		)
	}

	res := GetCategoryProductsResponse(products)
	return &res, nil
}
