package category

import (
	"catalog/domain"
	"catalog/pkg/events"
	"context"
)

type UpdateCategoryHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

type UpdateCategoryRequest struct {
	ID   string `params:"id" json:"-"`
	Name string `json:"category_name" validate:"required,max=255"`
}

type UpdateCategoryResponse = domain.Category

func NewUpdateCategoryHandler(repository Repository, eventPublisher events.Publisher) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

func (h UpdateCategoryHandler) Handle(ctx context.Context, req *UpdateCategoryRequest) (*UpdateCategoryResponse, error) {
	req.Name = trimName(req.Name)

	if err := validateRequest("update", req); err != nil {
		return nil, err
	}

	return saveCategory(ctx, h.repository, h.eventPublisher, "update", req.ID, func(category *domain.Category) {
		category.Name = req.Name
	})
}

// saveCategory loads the category, applies the mutation and writes it back.
func saveCategory(ctx context.Context, repository Repository, publisher events.Publisher, action, id string, apply func(*domain.Category)) (*domain.Category, error) {
	category, err := repository.GetCategory(ctx, id)
	if err != nil {
		return nil, writeError(action, err)
	}

	apply(&category)

	if err := repository.UpdateCategory(ctx, category); err != nil {
		return nil, writeError(action, err)
	}

	events.Emit(ctx, publisher, events.CategoryUpdatedEvent, events.CategoryPayload{
		ID:   category.ID,
		Name: category.Name,
	})

	return &category, nil
}
