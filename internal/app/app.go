// Package app wires the storefront stores, services and handlers into one
// gin engine. Everything is built per App so tests get isolated state.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	cartAPI "github.com/ridloal/clothing-storefront/internal/cart/api"
	cartRepo "github.com/ridloal/clothing-storefront/internal/cart/repository"
	cartService "github.com/ridloal/clothing-storefront/internal/cart/service"
	catalogAPI "github.com/ridloal/clothing-storefront/internal/catalog/api"
	catalogRepo "github.com/ridloal/clothing-storefront/internal/catalog/repository"
	catalogService "github.com/ridloal/clothing-storefront/internal/catalog/service"
	orderAPI "github.com/ridloal/clothing-storefront/internal/order/api"
	orderRepo "github.com/ridloal/clothing-storefront/internal/order/repository"
	orderService "github.com/ridloal/clothing-storefront/internal/order/service"
	"github.com/ridloal/clothing-storefront/internal/platform/config"
	"github.com/ridloal/clothing-storefront/internal/platform/database"
	"github.com/ridloal/clothing-storefront/internal/platform/httpx"
	"github.com/ridloal/clothing-storefront/internal/platform/logger"
	"github.com/ridloal/clothing-storefront/internal/platform/session"
)

type Config struct {
	Catalog config.CatalogConfig
	Session config.SessionConfig
	Cart    config.CartConfig
	OrderDB config.DBConfig
}

func LoadConfig() Config {
	return Config{
		Catalog: config.LoadCatalogConfig(),
		Session: config.LoadSessionConfig(),
		Cart:    config.LoadCartConfig(),
		OrderDB: config.LoadOrderDBConfig(),
	}
}

type App struct {
	Products catalogService.ProductService
	Carts    cartService.CartService
	Orders   orderService.OrderService

	router *gin.Engine
	db     *sql.DB
}

func New(ctx context.Context, cfg Config) (*App, error) {
	products, err := catalogRepo.LoadProducts(cfg.Catalog.File)
	if err != nil {
		return nil, err
	}
	productRepository, err := catalogRepo.NewMemoryProductRepository(products)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	logger.Info("Catalog loaded with %d products", len(products))

	a := &App{}
	ledger := orderRepo.NewMemoryOrderRepository()
	if cfg.OrderDB.DSN != "" {
		db, err := database.Connect(cfg.OrderDB.Driver, cfg.OrderDB.DSN)
		if err != nil {
			return nil, err
		}
		if err := orderRepo.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		ledger = orderRepo.NewPostgresOrderRepository(db)
		logger.Info("Order ledger backed by PostgreSQL")
	} else {
		logger.Warn("ORDER_DB_DSN not set, orders are kept in memory only")
	}

	a.Products = catalogService.NewProductService(productRepository)
	a.Carts = cartService.NewCartService(cartRepo.NewMemoryCartRepository(), a.Products, cfg.Session.TTL)
	a.Orders = orderService.NewOrderService(ledger, a.Carts)

	if cfg.Cart.SweepSpec != "" {
		if err := a.Carts.StartSweeper(cfg.Cart.SweepSpec); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.router = newRouter(a, session.NewManager(cfg.Session), cfg.Catalog.PageSize)
	return a, nil
}

func newRouter(a *App, sessions *session.Manager, pageSize int) *gin.Engine {
	router := gin.Default()
	router.RedirectTrailingSlash = false

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.NoRoute(func(c *gin.Context) {
		httpx.Error(c, http.StatusNotFound, "Ruta no encontrada")
	})

	api := router.Group("/api", sessions.Middleware())
	catalogAPI.NewProductHandler(a.Products, pageSize).RegisterRoutes(api)
	cartAPI.NewCartHandler(a.Carts).RegisterRoutes(api)
	orderAPI.NewOrderHandler(a.Orders).RegisterRoutes(api)
	return router
}

func (a *App) Handler() http.Handler {
	return a.router
}

// Close stops the cart sweeper and releases the database, if any.
func (a *App) Close() {
	a.Carts.Stop()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Error("Failed to close database", err, nil)
		}
	}
}
