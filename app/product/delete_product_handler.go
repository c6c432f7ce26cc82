package product

import (
	"catalog/pkg/events"
	"context"
	"time"
)

type DeleteProductHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewDeleteProductHandler(repository Repository, eventPublisher events.Publisher) *DeleteProductHandler {
	return &DeleteProductHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type DeleteProductRequest struct {
	ID string `params:"id" json:"-"`
}

type DeleteProductResponse struct{}

func (h DeleteProductHandler) Handle(ctx context.Context, req *DeleteProductRequest) (*DeleteProductResponse, error) {
	product, err := h.repository.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, writeError("destroy", err)
	}

	if err := h.repository.DeleteProduct(ctx, req.ID); err != nil {
		return nil, writeError("destroy", err)
	}

	events.Emit(ctx, h.eventPublisher, events.ProductDeletedEvent, events.ProductDeletedPayload{
		ID:         product.ID,
		CategoryID: product.CategoryID,
		DeletedAt:  time.Now().UTC(),
	})

	return &DeleteProductResponse{}, nil
}
