package product

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateRequest(action string, req any) error {
	if err := validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return httperror.BadRequest(
				"product."+action+".validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return httperror.InternalServerError(
			"product."+action+".validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	return nil
}

// validateProduct runs the checks struct tags cannot express: the price must
// fit NUMERIC(10,2) and the category must exist.
func validateProduct(ctx context.Context, repository Repository, action string, product domain.Product) error {
	if err := domain.ValidatePrice(product.Price); err != nil {
		return httperror.BadRequest(
			"product."+action+".invalid_price",
			"Validation failed for the request",
			map[string][]string{"price": {err.Error()}},
		)
	}

	if _, err := repository.GetCategory(ctx, product.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invalidCategory(action)
		}

		return httperror.InternalServerError(
			"product."+action+".failed",
			"Failed to retrieve category",
			err,
		)
	}

	return nil
}

func invalidCategory(action string) error {
	return httperror.BadRequest(
		"product."+action+".invalid_category",
		"Validation failed for the request",
		map[string][]string{"category": {domain.ErrCategoryNotFound.Error()}},
	)
}

// rejectNullFields fails a partial update that sent null for a
// non-nullable field.
func rejectNullFields(action string, fields []string) error {
	if len(fields) == 0 {
		return nil
	}

	details := make(map[string][]string, len(fields))
	for _, field := range fields {
		details[field] = []string{"This field may not be null."}
	}

	return httperror.BadRequest(
		"product."+action+".null_field",
		"Validation failed for the request",
		details,
	)
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// writeError maps repository errors raised by a product write.
func writeError(action string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return httperror.NotFound(
			"product."+action+".not_found",
			"Product not found",
			nil,
		)
	case errors.Is(err, domain.ErrCategoryNotFound):
		return invalidCategory(action)
	default:
		return httperror.InternalServerError(
			"product."+action+".failed",
			"An error occurred while saving the product",
			err,
		)
	}
}

func productPayload(product domain.Product) events.ProductPayload {
	return events.ProductPayload{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       domain.FormatPrice(product.Price),
		CategoryID:  product.CategoryID,
	}
}
