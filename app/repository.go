package app

import (
	"catalog/app/category"
	"catalog/app/product"
	"context"
)

// Repository is the full store surface the HTTP and gRPC servers are built on.
type Repository interface {
	category.Repository
	product.Repository
	Ping(ctx context.Context) error
	Close() error
}
