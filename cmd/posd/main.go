package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/iamshihab2020/omnicore-pos/internal/cache"
	"github.com/iamshihab2020/omnicore-pos/internal/cart"
	"github.com/iamshihab2020/omnicore-pos/internal/catalog"
	"github.com/iamshihab2020/omnicore-pos/internal/checkout"
	"github.com/iamshihab2020/omnicore-pos/internal/db"
	"github.com/iamshihab2020/omnicore-pos/internal/domain"
	"github.com/iamshihab2020/omnicore-pos/internal/orders"
	"github.com/iamshihab2020/omnicore-pos/internal/payment"
	"github.com/iamshihab2020/omnicore-pos/internal/printer"
	"github.com/iamshihab2020/omnicore-pos/internal/publisher"
	"github.com/iamshihab2020/omnicore-pos/internal/receipt"
	"github.com/iamshihab2020/omnicore-pos/internal/server"
)

func main() {
	// Configuration
	httpPort := getEnv("HTTP_PORT", "8080")
	dbPath := getEnv("DB_PATH", "pos.db")
	migrationsPath := getEnv("MIGRATIONS_PATH", "migrations")
	redisAddr := getEnv("REDIS_ADDR", "")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")
	counterID := getEnv("COUNTER_ID", "")
	receiptDir := getEnv("RECEIPT_DIR", "receipts")

	restaurant := domain.RestaurantInfo{
		Name:    getEnv("RESTAURANT_NAME", "OmniCore Restaurant"),
		Address: getEnv("RESTAURANT_ADDRESS", "123 Main St, City, Country"),
		Phone:   getEnv("RESTAURANT_PHONE", "01954114410"),
	}

	// Database + migrations
	conn, err := db.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(conn, migrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Connected to sqlite at %s", dbPath)

	catalogRepo := catalog.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)

	// Optional Redis cache (counter config + cart snapshots)
	ctx := context.Background()
	var redisCache *cache.RedisCache
	if redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Redis ping succeeded")
		redisCache = cache.NewRedisCache(redisClient)
	}

	var counterCache cache.CounterCache
	var cartCache cache.CartCache
	if redisCache != nil {
		counterCache = redisCache
		cartCache = redisCache
	}

	catalogService := catalog.NewService(catalogRepo, counterCache)

	// Optional order event publisher
	var eventPublisher checkout.EventPublisher
	if kafkaBrokers != "" {
		kafkaPublisher := publisher.NewOrderPublisher(strings.Split(kafkaBrokers, ",")...)
		defer kafkaPublisher.Close()
		eventPublisher = kafkaPublisher
		log.Printf("Publishing order events to %s", kafkaBrokers)
	}

	filePrinter, err := printer.NewFilePrinter(receiptDir)
	if err != nil {
		log.Fatalf("Failed to set up receipt spool: %v", err)
	}

	cartStore := cart.NewStore()
	payments := payment.NewCalculator()

	session := checkout.NewService(checkout.Config{
		Cart:       cartStore,
		Payments:   payments,
		Formatter:  receipt.NewFormatter(),
		Printer:    filePrinter,
		Orders:     orderRepo,
		Publisher:  eventPublisher,
		Restaurant: restaurant,
	})

	if err := selectCounter(ctx, catalogService, session, counterID); err != nil {
		log.Fatalf("Failed to select counter: %v", err)
	}

	restoreCart(ctx, cartCache, session, cartStore)

	srv := server.New(server.Config{
		Session:   session,
		Cart:      cartStore,
		Payments:  payments,
		Catalog:   catalogService,
		Orders:    orderRepo,
		CartCache: cartCache,
	})
	defer srv.Close()

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", httpPort),
		Handler: otelhttp.NewHandler(srv.Router(), "posd"),
	}

	// Graceful shutdown
	go func() {
		log.Printf("POS terminal listening on port %s", httpPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down POS terminal...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
	log.Println("POS terminal stopped")
}

// selectCounter picks the configured counter, falling back to the first
// active one, the same default the UI applies on load.
func selectCounter(ctx context.Context, catalogService *catalog.Service, session *checkout.Service, counterID string) error {
	if counterID == "" {
		counters, err := catalogService.ActiveCounters(ctx)
		if err != nil {
			return err
		}
		if len(counters) == 0 {
			log.Printf("No active counters configured; select one via the API")
			return nil
		}
		counterID = counters[0].ID
	}

	counter, err := catalogService.GetCounter(ctx, counterID)
	if err != nil {
		return err
	}

	session.SetCounter(*counter)
	log.Printf("Selected counter %s (%s)", counter.Name, counter.Location)
	return nil
}

// restoreCart resumes an open order left behind by a previous run.
func restoreCart(ctx context.Context, cartCache cache.CartCache, session *checkout.Service, cartStore *cart.Store) {
	if cartCache == nil {
		return
	}
	counterID, _ := session.Counter()
	if counterID == "" {
		return
	}

	lines, err := cartCache.GetCart(ctx, counterID)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cart snapshot restore error: %v", err)
		}
		return
	}
	if len(lines) == 0 {
		return
	}

	cartStore.Restore(lines)
	log.Printf("Restored %d cart line(s) from snapshot", len(lines))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
