package postgres

import (
	"catalog/domain"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type PgRepository struct {
	db *sqlx.DB
}

func NewPgRepository(dsn string) *PgRepository {
	db := sqlx.MustConnect("postgres", dsn)

	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PgRepository{db: db}
}

// Migrate creates the catalog tables if they do not exist yet.
func (r *PgRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PgRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

func (r *PgRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	query := `SELECT category_id, category_name FROM categories ORDER BY category_name`

	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *PgRepository) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	if !isUUID(id) {
		return c, sql.ErrNoRows
	}

	query := `SELECT category_id, category_name FROM categories WHERE category_id = $1`
	err := r.db.GetContext(ctx, &c, query, id)

	return c, err
}

func (r *PgRepository) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	c := domain.Category{
		ID:   uuid.NewString(),
		Name: name,
	}

	query := `INSERT INTO categories (category_id, category_name) VALUES (:category_id, :category_name)`
	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return domain.Category{}, mapConstraintError(err)
	}

	return c, nil
}

func (r *PgRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	if !isUUID(category.ID) {
		return sql.ErrNoRows
	}

	query := `UPDATE categories SET category_name = :category_name WHERE category_id = :category_id`
	res, err := r.db.NamedExecContext(ctx, query, category)
	if err != nil {
		return mapConstraintError(err)
	}

	return expectAffected(res)
}

// DeleteCategory deletes the products of the category and then the category
// itself in one transaction. The category row is locked first so no product
// can be attached to it in between.
func (r *PgRepository) DeleteCategory(ctx context.Context, id string) (int64, error) {
	if !isUUID(id) {
		return 0, sql.ErrNoRows
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var locked string
	if err := tx.GetContext(ctx, &locked, `SELECT category_id FROM categories WHERE category_id = $1 FOR UPDATE`, id); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE category_id = $1`, id)
	if err != nil {
		return 0, err
	}

	productsDeleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE category_id = $1`, id); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return productsDeleted, nil
}

func (r *PgRepository) GetProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	if !isUUID(categoryID) {
		return products, nil
	}

	query := `
		SELECT product_id, product_name, description, price, category_id
		FROM products
		WHERE category_id = $1
		ORDER BY product_name, product_id`

	if err := r.db.SelectContext(ctx, &products, query, categoryID); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *PgRepository) GetProducts(ctx context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	query := `
		SELECT product_id, product_name, description, price, category_id
		FROM products
		ORDER BY product_name, product_id`

	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *PgRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	if !isUUID(id) {
		return p, sql.ErrNoRows
	}

	query := `
		SELECT product_id, product_name, description, price, category_id
		FROM products
		WHERE product_id = $1`
	err := r.db.GetContext(ctx, &p, query, id)

	return p, err
}

func (r *PgRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	var p domain.Product
	product.ID = uuid.NewString()

	query := `
		INSERT INTO products (product_id, product_name, description, price, category_id)
		VALUES (:product_id, :product_name, :description, :price, :category_id)
		RETURNING product_id, product_name, description, price, category_id`

	rows, err := r.db.NamedQueryContext(ctx, query, product)
	if err != nil {
		return p, mapConstraintError(err)
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&p)
	}
	if err == nil {
		err = rows.Err()
	}

	return p, mapConstraintError(err)
}

func (r *PgRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	if !isUUID(product.ID) {
		return sql.ErrNoRows
	}

	query := `
		UPDATE products SET
			product_name = :product_name,
			description = :description,
			price = :price,
			category_id = :category_id
		WHERE product_id = :product_id`

	res, err := r.db.NamedExecContext(ctx, query, product)
	if err != nil {
		return mapConstraintError(err)
	}

	return expectAffected(res)
}

func (r *PgRepository) DeleteProduct(ctx context.Context, id string) error {
	if !isUUID(id) {
		return sql.ErrNoRows
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}

	return expectAffected(res)
}

// Ids that are not UUIDs cannot match any row; checking here keeps Postgres
// from rejecting them as invalid input.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case uniqueViolation:
		return domain.ErrDuplicateCategoryName
	case foreignKeyViolation:
		return domain.ErrCategoryNotFound
	default:
		return err
	}
}
