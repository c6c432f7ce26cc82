package domain

import "errors"

var (
	// ErrDuplicateCategoryName is returned when a write would break category name uniqueness.
	ErrDuplicateCategoryName = errors.New("category name already exists")

	// ErrCategoryNotFound is returned when a product references a category that does not exist.
	ErrCategoryNotFound = errors.New("category does not exist")
)
