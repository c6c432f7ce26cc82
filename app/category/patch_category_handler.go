package category

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/patch"
	"context"
	"encoding/json"
)

type PatchCategoryHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

type PatchCategoryRequest struct {
	ID   string  `params:"id" json:"-"`
	Name *string `json:"category_name,omitempty" validate:"omitnil,min=1,max=255"`

	nullFields []string
}

// UnmarshalJSON records fields sent as explicit null, which a plain
// pointer cannot tell apart from absent ones.
func (r *PatchCategoryRequest) UnmarshalJSON(data []byte) error {
	type request PatchCategoryRequest
	var decoded request
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	nulls, err := patch.NullFields(data, "category_name")
	if err != nil {
		return err
	}

	decoded.ID = r.ID
	decoded.nullFields = nulls
	*r = PatchCategoryRequest(decoded)
	return nil
}

type PatchCategoryResponse = domain.Category

func NewPatchCategoryHandler(repository Repository, eventPublisher events.Publisher) *PatchCategoryHandler {
	return &PatchCategoryHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

func (h PatchCategoryHandler) Handle(ctx context.Context, req *PatchCategoryRequest) (*PatchCategoryResponse, error) {
	if err := rejectNullFields("patch", req.nullFields); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := trimName(*req.Name)
		req.Name = &name
	}

	if err := validateRequest("patch", req); err != nil {
		return nil, err
	}

	return saveCategory(ctx, h.repository, h.eventPublisher, "patch", req.ID, func(category *domain.Category) {
		if req.Name != nil {
			category.Name = *req.Name
		}
	})
}
