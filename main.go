package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/storefront-demo/modules/admin"
	"github.com/example/storefront-demo/modules/api"
	"github.com/example/storefront-demo/modules/broadcast"
	"github.com/example/storefront-demo/modules/cart"
	"github.com/example/storefront-demo/modules/catalog"
	"github.com/example/storefront-demo/modules/kvstore"
	"github.com/example/storefront-demo/modules/notification"
	"github.com/example/storefront-demo/modules/order"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := loadConfig()

	log.Println("=== Storefront Demo ===")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Store Backend: %s", cfg.StoreBackend)

	// Create mono application with embedded NATS JetStream
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithJetStreamStorageDir(cfg.JetStreamDir),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// The kv plugin is only needed when persisting to the embedded JetStream.
	// The kvstore module receives it through SetPlugin("kv", ...).
	if cfg.StoreBackend == kvstore.BackendJetStream {
		kvPlugin, err := kvstore.NewJetStreamPlugin(kvstore.DefaultBucket)
		if err != nil {
			log.Fatalf("Failed to create kv-jetstream plugin: %v", err)
		}
		if err := app.RegisterPlugin(kvPlugin, "kv"); err != nil {
			log.Fatalf("Failed to register kv plugin: %v", err)
		}
	}

	logger := app.Logger()

	// Create modules
	storeModule := kvstore.NewModule(cfg.storeConfig(), logger)
	catalogModule := catalog.NewModule(cfg.LowStockThreshold, logger)
	cartModule := cart.NewModule(storeModule, logger)
	orderModule := order.NewModule(storeModule, cfg.DeliveryDays, logger)
	adminModule := admin.NewModule(cfg.LowStockThreshold, logger)
	notificationModule := notification.NewModule(notification.DefaultCapacity, logger)
	broadcastModule := broadcast.NewModule(logger)
	apiModule := api.NewModule(api.Config{
		Port:           strconv.Itoa(cfg.HTTPPort),
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger)

	// Inject broadcast hub into API module
	// (the hub is not exposed via ServiceContainer)
	apiModule.SetHub(broadcastModule.GetHub())

	// Register modules with the framework.
	// Start order follows the declared dependencies
	// - kvstore: persistence backend
	// - catalog: product inventory (ServiceProviderModule + EventEmitterModule)
	// - cart: cart store (depends on kvstore)
	// - order: order book and checkout (depends on kvstore and cart)
	// - admin: dashboard stats (depends on catalog and order)
	// - notification: activity feed (EventConsumerModule)
	// - broadcast: WebSocket hub (EventConsumerModule)
	// - api: Fiber HTTP/WebSocket server (driving adapter)
	modules := []mono.Module{
		storeModule,
		catalogModule,
		cartModule,
		orderModule,
		adminModule,
		notificationModule,
		broadcastModule,
		apiModule,
	}
	for _, module := range modules {
		if err := app.Register(module); err != nil {
			log.Fatalf("Failed to register %s module: %v", module.Name(), err)
		}
	}

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Architecture:")
	log.Println("  - HTTP Framework: Fiber with WebSocket live updates")
	log.Println("  - Event Bus: embedded NATS JetStream")
	log.Printf("  - Persistence: %s (keys \"cart\" and \"orders\")", cfg.StoreBackend)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTPPort)
	log.Println("  GET    /health                           - Health check")
	log.Println("  GET    /api/v1/categories                - List categories")
	log.Println("  GET    /api/v1/products?search=&category= - Browse products")
	log.Println("  GET    /api/v1/products/:id              - Product detail")
	log.Println("  GET    /api/v1/cart                      - Current cart")
	log.Println("  POST   /api/v1/cart/items                - Add to cart")
	log.Println("  PATCH  /api/v1/cart/items/:cartId        - Change quantity")
	log.Println("  DELETE /api/v1/cart/items/:cartId        - Remove line")
	log.Println("  DELETE /api/v1/cart                      - Clear cart")
	log.Println("  POST   /api/v1/orders                    - Checkout")
	log.Println("  GET    /api/v1/orders                    - Order tracker")
	log.Println("  GET    /api/v1/orders/:id                - Order detail")
	log.Println("  GET    /api/v1/admin/stats               - Dashboard stats")
	log.Println("  POST   /api/v1/admin/products/:id/stock  - Adjust stock")
	log.Println("  PUT    /api/v1/admin/products/:id        - Edit product")
	log.Println("  PUT    /api/v1/admin/orders/:id/status   - Set order status")
	log.Println("  GET    /api/v1/admin/activity            - Activity feed")
	log.Println("")
	log.Printf("WebSocket Endpoint (ws://localhost:%d/ws): live store events", cfg.HTTPPort)
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
