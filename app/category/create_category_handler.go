package category

import (
	"catalog/domain"
	"catalog/pkg/events"
	"context"
)

type CreateCategoryHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

type CreateCategoryRequest struct {
	Name string `json:"category_name" validate:"required,max=255"`
}

type CreateCategoryResponse = domain.Category

func NewCreateCategoryHandler(repository Repository, eventPublisher events.Publisher) *CreateCategoryHandler {
	return &CreateCategoryHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

func (h CreateCategoryHandler) Handle(ctx context.Context, req *CreateCategoryRequest) (*CreateCategoryResponse, error) {
	req.Name = trimName(req.Name)

	if err := validateRequest("create", req); err != nil {
		return nil, err
	}

	category, err := h.repository.CreateCategory(ctx, req.Name)
	if err != nil {
		return nil, writeError("create", err)
	}

	events.Emit(ctx, h.eventPublisher, events.CategoryCreatedEvent, events.CategoryPayload{
		ID:   category.ID,
		Name: category.Name,
	})

	return &category, nil
}
