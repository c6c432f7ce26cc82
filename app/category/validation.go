package category

import (
	"catalog/domain"
	"catalog/pkg/httperror"
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
				"category."+action+".validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return httperror.InternalServerError(
			"category."+action+".validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	return nil
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
		"category."+action+".null_field",
		"Validation failed for the request",
		details,
	)
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}

// writeError maps repository errors raised by a category write.
func writeError(action string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return httperror.NotFound(
			"category."+action+".not_found",
			"Category not found",
			nil,
		)
	case errors.Is(err, domain.ErrDuplicateCategoryName):
		return httperror.BadRequest(
			"category."+action+".duplicate_name",
			"Category with this category_name already exists",
			map[string][]string{"category_name": {err.Error()}},
		)
	default:
		return httperror.InternalServerError(
			"category."+action+".failed",
			"An error occurred while saving the category",
			err,
		)
	}
}
