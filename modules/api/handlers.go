package api

import (
	"errors"
	"strconv"

	orderdomain "github.com/example/storefront-demo/domain/order"
	"github.com/example/storefront-demo/modules/broadcast"
	"github.com/example/storefront-demo/modules/catalog"
	"github.com/example/storefront-demo/modules/order"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	productsPath         = "/api/v1/products"
	ordersPath           = "/api/v1/orders"
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	// WebSocket endpoint
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(m.handleWebSocket))

	api := app.Group("/api/v1")

	// Catalog
	api.Get("/categories", m.listCategories)
	api.Get("/products", m.listProducts)
	api.Get("/products/:id", m.getProduct)

	// Cart
	api.Get("/cart", m.getCart)
	api.Post("/cart/items", m.addToCart)
	api.Patch("/cart/items/:cartId", m.updateQuantity)
	api.Delete("/cart/items/:cartId", m.removeFromCart)
	api.Delete("/cart", m.clearCart)

	// Orders
	api.Post("/orders", m.placeOrder)
	api.Get("/orders", m.listOrders)
	api.Get("/orders/:id", m.getOrder)

	// Admin
	adm := api.Group("/admin")
	adm.Get("/stats", m.getStats)
	adm.Post("/products/:id/stock", m.adjustStock)
	adm.Put("/products/:id", m.updateProduct)
	adm.Put("/orders/:id/status", m.setOrderStatus)
	adm.Get("/activity", m.listActivity)
}

func internalError(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   code,
		Message: message,
	})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   code,
		Message: message,
	})
}

func notFound(c *fiber.Ctx, message, back string) error {
	return c.Status(fiber.StatusNotFound).JSON(NotFoundResponse{
		Error:   "not_found",
		Message: message,
		Back:    back,
	})
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module":            "api",
			"connected_clients": m.hub.ClientCount(),
		},
	})
}

// listCategories handles GET /api/v1/categories.
func (m *APIModule) listCategories(c *fiber.Ctx) error {
	categories, err := m.catalogPort.ListCategories(c.UserContext())
	if err != nil {
		return internalError(c, "list_failed", "Failed to list categories")
	}
	return c.JSON(CategoryListResponse{Categories: categories})
}

// listProducts handles GET /api/v1/products.
func (m *APIModule) listProducts(c *fiber.Ctx) error {
	products, err := m.catalogPort.ListProducts(c.UserContext(), c.Query("search"), c.Query("category"))
	if err != nil {
		return internalError(c, "list_failed", "Failed to list products")
	}
	return c.JSON(ProductListResponse{Products: products, Total: len(products)})
}

// getProduct handles GET /api/v1/products/:id.
func (m *APIModule) getProduct(c *fiber.Ctx) error {
	product, err := m.catalogPort.GetProduct(c.UserContext(), c.Params("id"))
	if errors.Is(err, catalog.ErrProductNotFound) {
		return notFound(c, "Product not found", productsPath)
	}
	if err != nil {
		return internalError(c, "get_failed", "Failed to get product")
	}
	return c.JSON(product)
}

// getCart handles GET /api/v1/cart.
func (m *APIModule) getCart(c *fiber.Ctx) error {
	resp, err := m.cartPort.GetCart(c.UserContext())
	if err != nil {
		return internalError(c, "cart_failed", "Failed to read cart")
	}
	return c.JSON(resp)
}

// addToCart handles POST /api/v1/cart/items.
func (m *APIModule) addToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if req.ProductID == "" {
		return badRequest(c, "validation_error", "product_id is required")
	}

	ctx := c.UserContext()
	product, err := m.catalogPort.GetProduct(ctx, req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return notFound(c, "Product not found", productsPath)
	}
	if err != nil {
		return internalError(c, "get_failed", "Failed to get product")
	}
	if !product.InStock() {
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "out_of_stock",
			Message: product.Name + " is out of stock",
		})
	}

	quantity := min(max(req.Quantity, 1), product.Stock)
	resp, err := m.cartPort.AddItem(ctx, *product, quantity)
	if err != nil {
		return internalError(c, "cart_failed", "Failed to add to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// updateQuantity handles PATCH /api/v1/cart/items/:cartId.
func (m *APIModule) updateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	resp, err := m.cartPort.UpdateQuantity(c.UserContext(), c.Params("cartId"), req.Quantity)
	if err != nil {
		return internalError(c, "cart_failed", "Failed to update quantity")
	}
	return c.JSON(resp)
}

// removeFromCart handles DELETE /api/v1/cart/items/:cartId.
func (m *APIModule) removeFromCart(c *fiber.Ctx) error {
	resp, err := m.cartPort.RemoveItem(c.UserContext(), c.Params("cartId"))
	if err != nil {
		return internalError(c, "cart_failed", "Failed to remove item")
	}
	return c.JSON(resp)
}

// clearCart handles DELETE /api/v1/cart.
func (m *APIModule) clearCart(c *fiber.Ctx) error {
	resp, err := m.cartPort.ClearCart(c.UserContext())
	if err != nil {
		return internalError(c, "cart_failed", "Failed to clear cart")
	}
	return c.JSON(resp)
}

// placeOrder handles POST /api/v1/orders.
func (m *APIModule) placeOrder(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}

	placed, err := m.orderPort.PlaceOrder(c.UserContext(), req.Customer)
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		return badRequest(c, "empty_cart", "Cart is empty")
	case errors.Is(err, order.ErrInvalidCustomer):
		return badRequest(c, "validation_error", err.Error())
	case err != nil:
		return internalError(c, "order_failed", "Failed to place order")
	}
	return c.Status(fiber.StatusCreated).JSON(placed)
}

// listOrders handles GET /api/v1/orders.
func (m *APIModule) listOrders(c *fiber.Ctx) error {
	orders, err := m.orderPort.ListOrders(c.UserContext())
	if err != nil {
		return internalError(c, "list_failed", "Failed to list orders")
	}
	return c.JSON(OrderListResponse{Orders: orders, Total: len(orders)})
}

// getOrder handles GET /api/v1/orders/:id.
func (m *APIModule) getOrder(c *fiber.Ctx) error {
	tracked, err := m.orderPort.GetOrder(c.UserContext(), c.Params("id"))
	if errors.Is(err, order.ErrOrderNotFound) {
		return notFound(c, "Order not found", ordersPath)
	}
	if err != nil {
		return internalError(c, "get_failed", "Failed to get order")
	}
	return c.JSON(tracked)
}

// getStats handles GET /api/v1/admin/stats.
func (m *APIModule) getStats(c *fiber.Ctx) error {
	stats, err := m.adminPort.GetStats(c.UserContext())
	if err != nil {
		return internalError(c, "stats_failed", "Failed to compute stats")
	}
	return c.JSON(stats)
}

// adjustStock handles POST /api/v1/admin/products/:id/stock.
func (m *APIModule) adjustStock(c *fiber.Ctx) error {
	var req AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	product, err := m.catalogPort.AdjustStock(c.UserContext(), c.Params("id"), req.Delta)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return notFound(c, "Product not found", productsPath)
	}
	if err != nil {
		return internalError(c, "update_failed", "Failed to adjust stock")
	}
	return c.JSON(product)
}

// updateProduct handles PUT /api/v1/admin/products/:id.
func (m *APIModule) updateProduct(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	product, err := m.catalogPort.UpdateProduct(c.UserContext(), c.Params("id"), catalog.Edit{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
	if errors.Is(err, catalog.ErrProductNotFound) {
		return notFound(c, "Product not found", productsPath)
	}
	if err != nil {
		return internalError(c, "update_failed", "Failed to update product")
	}
	return c.JSON(product)
}

// setOrderStatus handles PUT /api/v1/admin/orders/:id/status.
func (m *APIModule) setOrderStatus(c *fiber.Ctx) error {
	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	status := orderdomain.Status(req.Status)
	if !status.Valid() {
		return badRequest(c, "invalid_status", "Unknown order status: "+req.Status)
	}

	tracked, err := m.orderPort.SetStatus(c.UserContext(), c.Params("id"), status)
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return notFound(c, "Order not found", ordersPath)
	case errors.Is(err, order.ErrInvalidStatus):
		return badRequest(c, "invalid_status", err.Error())
	case err != nil:
		return internalError(c, "update_failed", "Failed to update order status")
	}
	return c.JSON(tracked)
}

// listActivity handles GET /api/v1/admin/activity.
func (m *APIModule) listActivity(c *fiber.Ctx) error {
	limit := defaultActivityLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = min(parsed, maxActivityLimit)
		}
	}
	resp, err := m.activityPort.ListActivity(c.UserContext(), limit)
	if err != nil {
		return internalError(c, "list_failed", "Failed to list activity")
	}
	return c.JSON(resp)
}

// handleWebSocket handles WebSocket connections at /ws. Clients only receive;
// anything they send is discarded.
func (m *APIModule) handleWebSocket(c *websocket.Conn) {
	client := &broadcast.Client{
		ID:   uuid.New().String(),
		Conn: c,
	}
	if !m.hub.Register(client) {
		_ = c.Close()
		return
	}
	defer m.hub.Unregister(client)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				m.logger.Warn("WebSocket read error", "clientID", client.ID, "error", err)
			}
			return
		}
	}
}
