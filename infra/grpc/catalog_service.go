package grpc

import (
	"catalog/domain"
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const CatalogServiceName = "catalog.v1.CatalogService"

// Repository is the read side of the catalog store.
type Repository interface {
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	GetProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
}

// CatalogService is the read-only lookup API. Requests carry the id as a
// StringValue; responses are the JSON representations as Struct/ListValue.
type CatalogService interface {
	GetCategory(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	GetProduct(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	ListProductsByCategory(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error)
}

type CatalogServiceServer struct {
	repository Repository
}

var _ CatalogService = (*CatalogServiceServer)(nil)

func NewCatalogServiceServer(repository Repository) *CatalogServiceServer {
	return &CatalogServiceServer{
		repository: repository,
	}
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogService) {
	s.RegisterService(&catalogServiceDesc, srv)
}

func (s *CatalogServiceServer) GetCategory(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "category_id is required")
	}

	category, err := s.repository.GetCategory(ctx, req.GetValue())
	if err != nil {
		return nil, s.mapError("category", err)
	}

	return structpb.NewStruct(categoryFields(category))
}

func (s *CatalogServiceServer) GetProduct(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "product_id is required")
	}

	product, err := s.repository.GetProduct(ctx, req.GetValue())
	if err != nil {
		return nil, s.mapError("product", err)
	}

	return structpb.NewStruct(productFields(product))
}

func (s *CatalogServiceServer) ListProductsByCategory(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "category_id is required")
	}

	if _, err := s.repository.GetCategory(ctx, req.GetValue()); err != nil {
		return nil, s.mapError("category", err)
	}

	products, err := s.repository.GetProductsByCategory(ctx, req.GetValue())
	if err != nil {
		return nil, s.mapError("products", err)
	}

	values := make([]interface{}, 0, len(products))
	for _, p := range products {
		values = append(values, productFields(p))
	}

	return structpb.NewList(values)
}

func (s *CatalogServiceServer) mapError(entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return status.Errorf(codes.NotFound, "%s not found", entity)
	}
	zap.L().Error("Catalog lookup failed", zap.String("entity", entity), zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

func categoryFields(c domain.Category) map[string]interface{} {
	return map[string]interface{}{
		"category_id":   c.ID,
		"category_name": c.Name,
	}
}

func productFields(p domain.Product) map[string]interface{} {
	return map[string]interface{}{
		"product_id":   p.ID,
		"product_name": p.Name,
		"description":  p.Description,
		"price":        domain.FormatPrice(p.Price),
		"category":     p.CategoryID,
	}
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogService)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCategory",
			Handler: unaryHandler("GetCategory", func(srv CatalogService, ctx context.Context, req *wrapperspb.StringValue) (interface{}, error) {
				return srv.GetCategory(ctx, req)
			}),
		},
		{
			MethodName: "GetProduct",
			Handler: unaryHandler("GetProduct", func(srv CatalogService, ctx context.Context, req *wrapperspb.StringValue) (interface{}, error) {
				return srv.GetProduct(ctx, req)
			}),
		},
		{
			MethodName: "ListProductsByCategory",
			Handler: unaryHandler("ListProductsByCategory", func(srv CatalogService, ctx context.Context, req *wrapperspb.StringValue) (interface{}, error) {
				return srv.ListProductsByCategory(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/catalog.proto",
}

func unaryHandler(method string, call func(CatalogService, context.Context, *wrapperspb.StringValue) (interface{}, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	fullMethod := "/" + CatalogServiceName + "/" + method

	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(wrapperspb.StringValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogService), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CatalogService), ctx, req.(*wrapperspb.StringValue))
		}
		return interceptor(ctx, in, info, handler)
	}
}
