package category

import (
	"catalog/pkg/events"
	"context"
	"time"
)

type DeleteCategoryHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewDeleteCategoryHandler(repository Repository, eventPublisher events.Publisher) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type DeleteCategoryRequest struct {
	ID string `params:"id" json:"-"`
}

type DeleteCategoryResponse struct{}

func (h DeleteCategoryHandler) Handle(ctx context.Context, req *DeleteCategoryRequest) (*DeleteCategoryResponse, error) {
	productsDeleted, err := h.repository.DeleteCategory(ctx, req.ID)
	if err != nil {
		return nil, writeError("destroy", err)
	}

	events.Emit(ctx, h.eventPublisher, events.CategoryDeletedEvent, events.CategoryDeletedPayload{
		ID:              req.ID,
		ProductsDeleted: productsDeleted,
		DeletedAt:       time.Now().UTC(),
	})

	return &DeleteCategoryResponse{}, nil
}
