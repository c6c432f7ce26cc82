package product

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"catalog/domain"
	"catalog/infra/memory"
	"catalog/pkg/events"
	"catalog/pkg/httperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	*memory.Repository
	err error
}

func (r failingRepo) GetProducts(context.Context) ([]domain.Product, error) {
	return nil, r.err
}

func (r failingRepo) UpdateProduct(context.Context, domain.Product) error {
	return r.err
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event *events.Event, _ events.Headers) error {
	p.events = append(p.events, event.Event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func statusAndCode(t *testing.T, err error) (int, string) {
	t.Helper()
	var httpErr *httperror.Error
	require.True(t, errors.As(err, &httpErr), "expected *httperror.Error, got %v", err)
	return httpErr.Status, httpErr.Code
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func seed(t *testing.T) (*memory.Repository, domain.Category) {
	t.Helper()
	repo := memory.NewRepository()
	books, err := repo.CreateCategory(context.Background(), "Books")
	require.NoError(t, err)
	return repo, books
}

func TestCreateProductHandler(t *testing.T) {
	repo, books := seed(t)

	testCases := []struct {
		name           string
		req            CreateProductRequest
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "creates product",
			req:  CreateProductRequest{Name: "Dune", Description: "novel", Price: price("19.99"), CategoryID: books.ID},
		},
		{
			name:           "missing price",
			req:            CreateProductRequest{Name: "Dune", Description: "novel", CategoryID: books.ID},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "product.create.validation_failed",
		},
		{
			name:           "category is not a uuid",
			req:            CreateProductRequest{Name: "Dune", Description: "novel", Price: price("1"), CategoryID: "books"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "product.create.validation_failed",
		},
		{
			name:           "unknown category",
			req:            CreateProductRequest{Name: "Dune", Description: "novel", Price: price("1"), CategoryID: "7f1b3c1e-3f7a-4c55-9d0e-0b8f1c2d3e4f"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "product.create.invalid_category",
		},
		{
			name:           "too many decimals",
			req:            CreateProductRequest{Name: "Dune", Description: "novel", Price: price("1.001"), CategoryID: books.ID},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "product.create.invalid_price",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			publisher := &recordingPublisher{}

			res, err := NewCreateProductHandler(repo, publisher).Handle(context.Background(), &tc.req)

			if tc.expectedStatus != 0 {
				status, code := statusAndCode(t, err)
				assert.Equal(t, tc.expectedStatus, status)
				assert.Equal(t, tc.expectedCode, code)
				assert.Empty(t, publisher.events)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.True(t, tc.req.Price.Equal(res.Price))
			assert.Equal(t, []string{events.ProductCreatedEvent}, publisher.events)
		})
	}
}

func TestGetProductsHandler(t *testing.T) {
	repo, _ := seed(t)

	res, err := NewGetProductsHandler(repo).Handle(context.Background(), &GetProductsRequest{})
	require.NoError(t, err)
	assert.Empty(t, *res)

	_, err = NewGetProductsHandler(failingRepo{repo, errors.New("db down")}).Handle(context.Background(), &GetProductsRequest{})
	status, _ := statusAndCode(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestGetProductHandler(t *testing.T) {
	repo, books := seed(t)
	dune, err := repo.CreateProduct(context.Background(), domain.Product{Name: "Dune", Description: "novel", Price: *price("19.99"), CategoryID: books.ID})
	require.NoError(t, err)

	res, err := NewGetProductHandler(repo).Handle(context.Background(), &GetProductRequest{ID: dune.ID})
	require.NoError(t, err)
	assert.Equal(t, "19.99", res.Price.String())

	_, err = NewGetProductHandler(repo).Handle(context.Background(), &GetProductRequest{ID: "missing"})
	status, _ := statusAndCode(t, err)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPatchProductHandler(t *testing.T) {
	ctx := context.Background()
	repo, books := seed(t)
	dune, err := repo.CreateProduct(ctx, domain.Product{Name: "Dune", Description: "novel", Price: *price("19.99"), CategoryID: books.ID})
	require.NoError(t, err)
	publisher := &recordingPublisher{}
	handler := NewPatchProductHandler(repo, publisher)

	desc := "space opera"
	res, err := handler.Handle(ctx, &PatchProductRequest{ID: dune.ID, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "space opera", res.Description)
	assert.Equal(t, "Dune", res.Name)

	empty := ""
	_, err = handler.Handle(ctx, &PatchProductRequest{ID: dune.ID, Name: &empty})
	status, _ := statusAndCode(t, err)
	assert.Equal(t, http.StatusBadRequest, status)

	_, err = handler.Handle(ctx, &PatchProductRequest{ID: dune.ID, Price: price("100000000")})
	status, code := statusAndCode(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "product.patch.invalid_price", code)

	_, err = NewPatchProductHandler(failingRepo{repo, errors.New("db down")}, publisher).Handle(ctx, &PatchProductRequest{ID: dune.ID, Description: &desc})
	status, _ = statusAndCode(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)

	assert.Equal(t, []string{events.ProductUpdatedEvent}, publisher.events)
}

func TestUpdateProductHandler(t *testing.T) {
	ctx := context.Background()
	repo, books := seed(t)
	dune, err := repo.CreateProduct(ctx, domain.Product{Name: "Dune", Description: "novel", Price: *price("19.99"), CategoryID: books.ID})
	require.NoError(t, err)

	res, err := NewUpdateProductHandler(repo, nil).Handle(ctx, &UpdateProductRequest{
		ID:          dune.ID,
		Name:        "Dune Messiah",
		Description: "sequel",
		Price:       price("21.50"),
		CategoryID:  books.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", res.Name)
	assert.Equal(t, dune.ID, res.ID)
	assert.Equal(t, "21.50", domain.FormatPrice(res.Price))

	_, err = NewUpdateProductHandler(repo, nil).Handle(ctx, &UpdateProductRequest{ID: dune.ID, Name: "Dune"})
	status, _ := statusAndCode(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDeleteProductHandler(t *testing.T) {
	ctx := context.Background()
	repo, books := seed(t)
	dune, err := repo.CreateProduct(ctx, domain.Product{Name: "Dune", Description: "novel", Price: *price("19.99"), CategoryID: books.ID})
	require.NoError(t, err)
	publisher := &recordingPublisher{}

	_, err = NewDeleteProductHandler(repo, publisher).Handle(ctx, &DeleteProductRequest{ID: dune.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{events.ProductDeletedEvent}, publisher.events)

	_, err = repo.GetCategory(ctx, books.ID)
	assert.NoError(t, err)

	_, err = NewDeleteProductHandler(repo, publisher).Handle(ctx, &DeleteProductRequest{ID: dune.ID})
	status, _ := statusAndCode(t, err)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProductHandlersTrimStrings(t *testing.T) {
	ctx := context.Background()
	repo, books := seed(t)

	created, err := NewCreateProductHandler(repo, nil).Handle(ctx, &CreateProductRequest{
		Name:        "  Dune ",
		Description: "\tnovel\n",
		Price:       price("19.90"),
		CategoryID:  books.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune", created.Name)
	assert.Equal(t, "novel", created.Description)

	testCases := []struct {
		name string
		call func() error
	}{
		{
			name: "create with blank name",
			call: func() error {
				_, err := NewCreateProductHandler(repo, nil).Handle(ctx, &CreateProductRequest{Name: "   ", Description: "novel", Price: price("1"), CategoryID: books.ID})
				return err
			},
		},
		{
			name: "update with blank description",
			call: func() error {
				_, err := NewUpdateProductHandler(repo, nil).Handle(ctx, &UpdateProductRequest{ID: created.ID, Name: "Dune", Description: " ", Price: price("1"), CategoryID: books.ID})
				return err
			},
		},
		{
			name: "patch with blank name",
			call: func() error {
				blank := "  "
				_, err := NewPatchProductHandler(repo, nil).Handle(ctx, &PatchProductRequest{ID: created.ID, Name: &blank})
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := statusAndCode(t, tc.call())
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, code, ".validation_failed")
		})
	}

	stored, err := repo.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", stored.Name)
	assert.Equal(t, "novel", stored.Description)
}

func TestPatchProductRejectsNullFields(t *testing.T) {
	ctx := context.Background()
	repo, books := seed(t)
	dune, err := repo.CreateProduct(ctx, domain.Product{Name: "Dune", Description: "novel", Price: *price("19.99"), CategoryID: books.ID})
	require.NoError(t, err)
	publisher := &recordingPublisher{}

	var req PatchProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price":null,"category":null,"description":"x"}`), &req))
	req.ID = dune.ID

	_, err = NewPatchProductHandler(repo, publisher).Handle(ctx, &req)
	var httpErr *httperror.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "product.patch.null_field", httpErr.Code)
	assert.Equal(t, map[string][]string{
		"category": {"This field may not be null."},
		"price":    {"This field may not be null."},
	}, httpErr.Details)
	assert.Empty(t, publisher.events)

	stored, err := repo.GetProduct(ctx, dune.ID)
	require.NoError(t, err)
	assert.Equal(t, "novel", stored.Description)
}
