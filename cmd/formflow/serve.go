package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/probationforms/formflow"
	"github.com/probationforms/formflow/internal/journey"
	"github.com/probationforms/formflow/internal/logging"
	httpAdapter "github.com/probationforms/formflow/pkg/adapters/http"
	"github.com/probationforms/formflow/pkg/adapters/memory"
	"github.com/probationforms/formflow/pkg/adapters/offline"
	redisAdapter "github.com/probationforms/formflow/pkg/adapters/redis"
	"github.com/probationforms/formflow/pkg/observability"
	"github.com/probationforms/formflow/pkg/persistence/middleware"
	"github.com/probationforms/formflow/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long:  `Starts the journey engine in stateless server mode, exposing the application API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := loadConfig(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		level, err := cfg.slogLevel()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		logger := logging.New(level)

		store, client, err := buildStore(cfg)
		if err != nil {
			fmt.Printf("Error building store: %v\n", err)
			os.Exit(1)
		}

		registry := prometheus.NewRegistry()
		engineOpts := []formflow.Option{
			formflow.WithLogger(logger),
			formflow.WithMetrics(observability.NewMetrics(registry)),
			// No upstream integrations ship yet, so pages that fetch
			// reference data run against the offline fallbacks.
			formflow.WithDataServices(offline.Services()),
		}
		if cfg.Store.Kind == "redis" && cfg.Store.Redis.DistributedLocks {
			engineOpts = append(engineOpts,
				formflow.WithLocker(redisAdapter.NewLocker(client, "formflow:")))
			if cfg.Store.Redis.LockTTL > 0 {
				engineOpts = append(engineOpts,
					formflow.WithLockTTL(time.Duration(cfg.Store.Redis.LockTTL)))
			}
		}

		engine := formflow.New(journey.Registry(), store, engineOpts...)

		handler, err := httpAdapter.NewHandler(engine,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsGatherer(registry),
		)
		if err != nil {
			fmt.Printf("Error building handler: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Starting Formflow Server on %s\n", srv.Addr)
			fmt.Printf("Store backend: %s\n", cfg.Store.Kind)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Formflow Server stopped gracefully")
		}
	},
}

// buildStore assembles the configured backend with the encryption and
// masking middleware applied. The Redis client is returned so the locker
// can share it.
func buildStore(cfg *Config) (ports.ManagedArtifactStore, *backend.Client, error) {
	var store ports.ManagedArtifactStore
	var client *backend.Client

	switch cfg.Store.Kind {
	case "redis":
		client = backend.NewClient(&backend.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		var opts []redisAdapter.Option
		if cfg.Store.Redis.TTL > 0 {
			opts = append(opts, redisAdapter.WithTTL(time.Duration(cfg.Store.Redis.TTL)))
		}
		store = redisAdapter.NewFromClient(client, opts...)
	default:
		store = memory.NewStore()
	}

	var middlewares []middleware.Middleware
	if len(cfg.MaskFields) > 0 {
		middlewares = append(middlewares, middleware.NewPIIMiddleware(cfg.MaskFields))
	}
	if cfg.Encryption.Key != "" {
		active, err := decodeKey(cfg.Encryption.Key)
		if err != nil {
			return nil, nil, err
		}
		fallbacks := make([][]byte, 0, len(cfg.Encryption.FallbackKeys))
		for _, encoded := range cfg.Encryption.FallbackKeys {
			key, err := decodeKey(encoded)
			if err != nil {
				return nil, nil, err
			}
			fallbacks = append(fallbacks, key)
		}
		middlewares = append(middlewares, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallbacks,
		}))
	}

	return middleware.Chain(store, middlewares...), client, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "", "Path to the YAML configuration file")
}
