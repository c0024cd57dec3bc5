package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/storefront-demo/domain/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// catalogAdapter wraps ServiceContainer for type-safe cross-module communication.
type catalogAdapter struct {
	container mono.ServiceContainer
}

// NewCatalogAdapter creates a new adapter for catalog services.
func NewCatalogAdapter(container mono.ServiceContainer) CatalogPort {
	if container == nil {
		panic("catalog adapter requires non-nil ServiceContainer")
	}
	return &catalogAdapter{container: container}
}

// callService runs one typed request-reply round trip against container.
func callService[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// ListProducts returns the filtered listing via the list-products service.
func (a *catalogAdapter) ListProducts(ctx context.Context, search, category string) ([]domain.Product, error) {
	req := ListProductsRequest{Search: search, Category: category}
	var resp ListProductsResponse
	if err := callService(ctx, a.container, ServiceListProducts, &req, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// ListCategories returns all categories via the list-categories service.
func (a *catalogAdapter) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var resp ListCategoriesResponse
	if err := callService(ctx, a.container, ServiceListCategories, &ListCategoriesRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// GetProduct retrieves a product via the get-product service.
func (a *catalogAdapter) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	req := GetProductRequest{ProductID: productID}
	var resp ProductResponse
	if err := callService(ctx, a.container, ServiceGetProduct, &req, &resp); err != nil {
		return nil, err
	}
	return found(resp, productID)
}

// AdjustStock changes stock via the adjust-stock service.
func (a *catalogAdapter) AdjustStock(ctx context.Context, productID string, delta int) (*domain.Product, error) {
	req := AdjustStockRequest{ProductID: productID, Delta: delta}
	var resp ProductResponse
	if err := callService(ctx, a.container, ServiceAdjustStock, &req, &resp); err != nil {
		return nil, err
	}
	return found(resp, productID)
}

// UpdateProduct applies an edit via the update-product service.
func (a *catalogAdapter) UpdateProduct(ctx context.Context, productID string, edit Edit) (*domain.Product, error) {
	req := UpdateProductRequest{ProductID: productID, Edit: edit}
	var resp ProductResponse
	if err := callService(ctx, a.container, ServiceUpdateProduct, &req, &resp); err != nil {
		return nil, err
	}
	return found(resp, productID)
}

func found(resp ProductResponse, productID string) (*domain.Product, error) {
	if !resp.Found {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return resp.Product, nil
}
