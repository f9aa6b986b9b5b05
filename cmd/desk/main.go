package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/deskbot/goexch/internal/controlplane/server"
	"github.com/deskbot/goexch/internal/journal"
	"github.com/deskbot/goexch/internal/session"
	"github.com/deskbot/goexch/pkg/config"
	"github.com/deskbot/goexch/pkg/logger"
	sdkapi "github.com/deskbot/goexch/pkg/sdk/api"
	"github.com/deskbot/goexch/pkg/secretstore"
	"github.com/deskbot/goexch/pkg/shutdown"
)

func main() {
	// Load .env (best-effort). If missing, fall back to real env vars.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("GOEXCH_CONFIG"), "YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("load config: %v", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.OutputFile,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		logger.Errorf("init logger: %v", err)
		os.Exit(1)
	}

	cleanup := shutdown.NewManager()

	var jnl *journal.Journal
	if cfg.JournalPath != "" {
		jnl, err = journal.Open(cfg.JournalPath)
		if err != nil {
			logger.Errorf("open journal: %v", err)
			os.Exit(1)
		}
		cleanup.OnShutdown(func(ctx context.Context) {
			if err := jnl.Close(); err != nil {
				logger.Warnf("close journal: %v", err)
			}
		})
	}

	var seeds *secretstore.Store
	if cfg.SeedStorePath != "" {
		seeds, err = secretstore.Open(secretstore.OpenOptions{Path: cfg.SeedStorePath})
		if err != nil {
			logger.Errorf("open seed store: %v", err)
			os.Exit(1)
		}
		cleanup.OnShutdown(func(ctx context.Context) {
			if err := seeds.Close(); err != nil {
				logger.Warnf("close seed store: %v", err)
			}
		})
	}

	notice := server.NewNoticeBoard()

	sessCfg := session.Config{
		Exchange:   sdkapi.NewClient(cfg.Server),
		Notifier:   notice,
		CoinPair:   cfg.CoinPair,
		CoinTypes:  cfg.CoinTypes,
		OrderStart: cfg.OrderStart,
		OrderEnd:   cfg.OrderEnd,
	}
	if jnl != nil {
		sessCfg.Recorder = jnl
	}
	if seeds != nil {
		sessCfg.Seeds = seeds
	}

	sess := session.New(sessCfg)

	srv, err := server.New(server.Config{Session: sess, Journal: jnl, Notice: notice})
	if err != nil {
		logger.Errorf("init control plane: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sess.Bootstrap(ctx); err != nil {
		// bootstrap failure gates everything; the desk stays up so the
		// renderer can show the notice, but no data will flow
		logger.Errorf("bootstrap: %v", err)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infof("control plane listening on %s", cfg.Listen)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("http server: %v", err)
		}
	}()

	cleanup.OnShutdown(func(ctx context.Context) {
		if err := httpSrv.Shutdown(ctx); err != nil {
			logger.Warnf("stop http server: %v", err)
		}
	})

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-stopCh

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutCancel()
	cleanup.Shutdown(shutCtx)

	logger.Info("desk stopped")
}
