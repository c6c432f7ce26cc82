package product

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/patch"
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

type PatchProductHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

type PatchProductRequest struct {
	ID          string           `params:"id" json:"-"`
	Name        *string          `json:"product_name,omitempty" validate:"omitnil,min=1,max=255"`
	Description *string          `json:"description,omitempty" validate:"omitnil,min=1"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *string          `json:"category,omitempty" validate:"omitnil,uuid"`

	nullFields []string
}

// UnmarshalJSON records fields sent as explicit null, which a plain
// pointer cannot tell apart from absent ones.
func (r *PatchProductRequest) UnmarshalJSON(data []byte) error {
	type request PatchProductRequest
	var decoded request
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	nulls, err := patch.NullFields(data, "product_name", "description", "price", "category")
	if err != nil {
		return err
	}

	decoded.ID = r.ID
	decoded.nullFields = nulls
	*r = PatchProductRequest(decoded)
	return nil
}

type PatchProductResponse = domain.Product

func NewPatchProductHandler(repository Repository, eventPublisher events.Publisher) *PatchProductHandler {
	return &PatchProductHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

func (h PatchProductHandler) Handle(ctx context.Context, req *PatchProductRequest) (*PatchProductResponse, error) {
	if err := rejectNullFields("patch", req.nullFields); err != nil {
		return nil, err
	}

	req.Name = trimPtr(req.Name)
	req.Description = trimPtr(req.Description)

	if err := validateRequest("patch", req); err != nil {
		return nil, err
	}

	return saveProduct(ctx, h.repository, h.eventPublisher, "patch", req.ID, func(product *domain.Product) {
		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.CategoryID != nil {
			product.CategoryID = *req.CategoryID
		}
	})
}
