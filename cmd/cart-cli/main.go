package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/jcmexdev/cart-sync/internal/cart/app"
	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/cart/infra/adapters/catalogcache"
	"github.com/jcmexdev/cart-sync/internal/cart/infra/adapters/orderapi"
	"github.com/jcmexdev/cart-sync/internal/coordinator/synclog/sqlite"
	"github.com/jcmexdev/cart-sync/internal/pkg/cache"
	"github.com/jcmexdev/cart-sync/internal/pkg/config"
	"github.com/jcmexdev/cart-sync/internal/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		user     = pflag.StringP("user", "u", "", "buyer name used for the order")
		add      = pflag.Int64SliceP("add", "a", nil, "product ids to add, one unit per occurrence")
		remove   = pflag.Int64SliceP("remove", "r", nil, "product ids to remove, one unit per occurrence")
		checkout = pflag.Bool("checkout", false, "confirm payment after updating the cart")
		baseURL  = pflag.String("api", "", "order API base URL (overrides ORDER_API_BASE_URL)")
		journal  = pflag.Bool("journal", false, "print the sync journal of the session's order (needs SYNC_LOG_PATH)")
	)
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *baseURL != "" {
		cfg.APIBaseURL = *baseURL
	}
	telemetry.InitLogger(cfg.LogLevel, cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown := telemetry.ShutdownFunc(telemetry.NoopShutdown)
	if cfg.TracingEnabled {
		shutdown, err = telemetry.SetupTracer(ctx, telemetry.TracerOptions{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Environment: cfg.Environment,
			SampleRatio: cfg.SampleRatio,
		})
		if err != nil {
			return err
		}
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	opts := []app.Option{app.WithUserName(*user)}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.ServiceName)
		opts = append(opts, app.WithCatalogCache(catalogcache.New(redisCache, cfg.CatalogTTL)))
	}
	var syncLog *sqlite.Repository
	if cfg.SyncLogPath != "" {
		syncLog, err = sqlite.Open(cfg.SyncLogPath)
		if err != nil {
			return err
		}
		defer syncLog.Close()
		opts = append(opts, app.WithSyncLog(syncLog))
	} else if *journal {
		return fmt.Errorf("--journal needs SYNC_LOG_PATH")
	}

	store := app.NewStore(orderapi.NewClient(cfg.APIBaseURL, cfg.APITimeout), opts...)

	if err := store.FetchProducts(ctx); err != nil {
		slog.Warn("using fallback catalog", "error", err)
	}
	catalog := make(map[domain.ID]domain.Product)
	for _, p := range store.Products() {
		catalog[p.ID] = p
	}

	if err := store.CreateOrder(ctx); err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	for _, id := range *add {
		p, ok := catalog[domain.ID(id)]
		if !ok {
			return fmt.Errorf("product %d is not in the catalog", id)
		}
		if err := store.AddToCart(ctx, p); err != nil {
			slog.Error("add to cart failed", "product_id", id, "error", err)
		}
	}
	for _, id := range *remove {
		if err := store.RemoveFromCart(ctx, domain.ID(id)); err != nil {
			slog.Error("remove from cart failed", "product_id", id, "error", err)
		}
	}

	printState(store.State())

	var checkoutErr error
	if *checkout {
		var msg string
		if msg, checkoutErr = store.ConfirmPayment(ctx); checkoutErr == nil {
			fmt.Println(msg)
		}
	}

	if *journal {
		if err := printJournal(ctx, os.Stdout, syncLog, store.Order().ID.String()); err != nil {
			slog.Error("failed to read sync journal", "error", err)
		}
	}
	return checkoutErr
}

func printState(s app.State) {
	fmt.Printf("order %s (%s) user=%q\n", s.Order.ID, s.Order.State(), s.Order.Username)
	for _, it := range s.Cart {
		fmt.Printf("  %-20s x%-3d %10s\n", it.ProductName, it.Quantity, it.Subtotal().StringFixed(2))
	}
	fmt.Printf("items: %d  total: %s\n", s.Totals.ItemsCount, s.Totals.Total.StringFixed(2))
	if s.Err != nil {
		fmt.Printf("last error: %v\n", s.Err)
	}
}
