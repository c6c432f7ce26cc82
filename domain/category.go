package domain

type Category struct {
	ID   string `json:"category_id" db:"category_id"`
	Name string `json:"category_name" db:"category_name"`
}
