package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridloal/clothing-storefront/internal/app"
	catalogRepo "github.com/ridloal/clothing-storefront/internal/catalog/repository"
	"github.com/ridloal/clothing-storefront/internal/platform/config"
	"github.com/ridloal/clothing-storefront/internal/platform/logger"
)

var (
	port        string
	catalogFile string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Clothing storefront backend: catalog, session carts and orders over JSON",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logLevel != "" {
			logger.SetLevel(logLevel)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the catalog that serve would load, as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := catalogRepo.LoadProducts(catalogFile)
		if err != nil {
			return err
		}
		if _, err := catalogRepo.NewMemoryProductRepository(products); err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", os.Getenv("CATALOG_FILE"), "YAML catalog file; built-in catalog when empty")
	serveCmd.Flags().StringVar(&port, "port", "", "listen port; overrides SERVER_PORT/PORT")

	rootCmd.AddCommand(serveCmd, catalogCmd)
}

func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverCfg := config.LoadServerConfig("3000")
	if port != "" {
		serverCfg.Port = ":" + port
	}
	cfg := app.LoadConfig()
	cfg.Catalog.File = catalogFile

	logger.Info("Starting Storefront Service...")
	storefront, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialise storefront", err, nil)
		return err
	}
	defer storefront.Close()

	server := &http.Server{
		Addr:              serverCfg.Port,
		Handler:           storefront.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Storefront Service running on port %s", serverCfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Failed to run Storefront Service server", err, nil)
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("Storefront Service stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
