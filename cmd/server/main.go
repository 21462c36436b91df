package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/config"
	"github.com/ssemanda/boutique/internal/repository"
	"github.com/ssemanda/boutique/internal/repository/memory"
	"github.com/ssemanda/boutique/internal/repository/mongodb"
	"github.com/ssemanda/boutique/internal/repository/sheets"
	"github.com/ssemanda/boutique/internal/scheduler"
	"github.com/ssemanda/boutique/internal/server/handlers"
	"github.com/ssemanda/boutique/internal/server/router"
	"github.com/ssemanda/boutique/internal/service/alerts"
	backupsvc "github.com/ssemanda/boutique/internal/service/backup"
	financesvc "github.com/ssemanda/boutique/internal/service/finance"
	ledgersvc "github.com/ssemanda/boutique/internal/service/ledger"
	salessvc "github.com/ssemanda/boutique/internal/service/sales"
	"github.com/ssemanda/boutique/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store repository.Store
	switch cfg.Store.Driver {
	case config.DriverMongo:
		mongoStore, err := mongodb.NewStore(context.Background(), cfg.Store.URI, cfg.Store.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoStore
	case config.DriverMemory:
		baseLogger.Warn("using in-memory store, records are lost on restart")
		store = memory.NewStore()
	}

	var notifier alerts.Notifier
	if cfg.Alerts.WebhookURL != "" {
		notifier = alerts.NewWebhookNotifier(cfg.Alerts.WebhookURL, baseLogger.Named("alerts"))
		baseLogger.Info("low-stock webhook enabled")
	}

	var mirror sheets.RowAppender
	if cfg.SheetsEnabled() {
		mirror, err = sheets.NewGoogleSheetMirror(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets mirror", zap.Error(err))
		}
		baseLogger.Info("google sheets sales mirror enabled")
	}

	ledgerSvc := ledgersvc.NewService(store, baseLogger.Named("svc.ledger"))
	salesSvc := salessvc.NewService(store, notifier, mirror, baseLogger.Named("svc.sales"))
	financeSvc := financesvc.NewService(store, baseLogger.Named("svc.finance"))
	backupSvc := backupsvc.NewService(store, baseLogger.Named("svc.backup"))

	engine := router.New(router.Handlers{
		Products:  handlers.NewProductHandler(salesSvc, baseLogger.Named("handlers.products")),
		Orders:    handlers.NewOrderHandler(salesSvc, backupSvc, baseLogger.Named("handlers.orders")),
		Finance:   handlers.NewFinanceHandler(financeSvc, ledgerSvc, baseLogger.Named("handlers.finance")),
		Dashboard: handlers.NewDashboardHandler(ledgerSvc, baseLogger.Named("handlers.dashboard")),
		Backup:    handlers.NewBackupHandler(backupSvc, baseLogger.Named("handlers.backup")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Snapshot, ledgerSvc, store, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
