package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/stock-ledger/internal/infrastructure/redis"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/seedfile"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
	"github.com/jhoicas/stock-ledger/pkg/metrics"
)

// storage agrupa el backend elegido por configuración.
type storage struct {
	tx      inventory.TxRunner
	records repository.StockRecordRepository
	entries repository.LedgerEntryRepository
	close   func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: ningún token será válido")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []inventory.LedgerOption{
		inventory.WithLogger(log),
		inventory.WithObserver(metrics.NewLedgerMetrics(reg)),
	}
	if cfg.Redis.URL != "" {
		pub, err := infraredis.NewPublisher(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer pub.Close()
		opts = append(opts, inventory.WithPublisher(pub))
		log.Info().Str("channel", cfg.Redis.Channel).Msg("publicación de eventos de stock habilitada")
	}

	ledgerCfg := inventory.LedgerConfig{
		DefaultThresholds: entity.Thresholds{
			MinStockLevel: int64(cfg.Ledger.DefaultMinStock),
			MaxStockLevel: int64(cfg.Ledger.DefaultMaxStock),
			ReorderPoint:  int64(cfg.Ledger.DefaultReorderPoint),
		},
		HistoryPageSize: cfg.Ledger.HistoryPageSize,
		RecentActivity:  cfg.Ledger.RecentActivity,
	}
	ledgerUC := inventory.NewLedgerUseCase(store.tx, store.records, store.entries, ledgerCfg, opts...)
	reportsUC := inventory.NewStockReportUseCase(store.records, cfg.Ledger.ListPageSize)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.records, infrapdf.NewReorderReportGenerator(cfg.App.Name))

	if cfg.Store.SeedFile != "" {
		items, err := seedfile.Load(cfg.Store.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Store.SeedFile).Msg("leer catálogo inicial")
		}
		if _, _, err := ledgerUC.SeedCatalog(ctx, items); err != nil {
			log.Fatal().Err(err).Msg("cargar catálogo inicial")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:        ledgerUC,
		Reports:       reportsUC,
		Replenishment: replenishmentUC,
		JWTSecret:     cfg.JWT.Secret,
		Logger:        log,
		Gatherer:      reg,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Store.Backend == config.StoreMemory {
		s := memory.NewStore()
		return &storage{tx: s, records: s.Records(), entries: s.Entries(), close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Store.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		tx:      postgres.NewTxRunner(pool),
		records: postgres.NewStockRecordRepository(pool),
		entries: postgres.NewLedgerEntryRepository(pool),
		close:   pool.Close,
	}, nil
}
