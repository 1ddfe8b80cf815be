// Command respeak is the main entry point for the Respeak edit server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/respeak/internal/config"
	"github.com/MrWong99/respeak/internal/gateway"
	"github.com/MrWong99/respeak/internal/health"
	"github.com/MrWong99/respeak/internal/observe"
	"github.com/MrWong99/respeak/internal/vocab"
)

const defaultListenAddr = ":8080"

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "respeak: config file %q not found\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "respeak: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	// The level lives in a LevelVar so the config watcher can retune it
	// without recreating the handler.
	level := new(slog.LevelVar)
	level.Set(slogLevel(cfg.Server.LogLevel))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("respeak starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Observability ─────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "respeak",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(sctx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	// ── Gateway ───────────────────────────────────────────────────────────────
	gwOpts := []gateway.Option{
		gateway.WithMetrics(metrics),
		gateway.WithHistoryLimit(cfg.Editor.HistoryLimit),
		gateway.WithMaxMessageBytes(cfg.Gateway.MaxMessageBytes),
	}
	if cfg.Vocab.Enabled {
		gwOpts = append(gwOpts, gateway.WithCorrector(buildCorrector(&cfg.Vocab)))
	}
	gw := gateway.New(gwOpts...)

	// ── Config watcher (hot reload for log level and vocab) ───────────────────
	watcher, err := config.NewWatcher(*configPath, func(old, new *config.Config) {
		d := config.Diff(old, new)
		if d.LogLevelChanged {
			level.Set(slogLevel(d.NewLogLevel))
			slog.Info("log level changed", "log_level", d.NewLogLevel)
		}
		if d.VocabChanged {
			if new.Vocab.Enabled {
				gw.SetCorrector(buildCorrector(&new.Vocab))
			} else {
				gw.SetCorrector(nil)
			}
			slog.Info("vocab correction reconfigured", "enabled", new.Vocab.Enabled)
		}
		if d.HistoryLimitChanged {
			gw.SetHistoryLimit(d.NewHistoryLimit)
			slog.Info("history limit changed for new sessions", "history_limit", d.NewHistoryLimit)
		}
	})
	if err != nil {
		slog.Error("failed to start config watcher", "err", err)
		return 1
	}
	defer watcher.Stop()

	// ── HTTP surface ──────────────────────────────────────────────────────────
	checks := health.New(health.Checker{
		Name: "config",
		Check: func(context.Context) error {
			if watcher.Current() == nil {
				return errors.New("no valid configuration loaded")
			}
			return nil
		},
	})

	mux := http.NewServeMux()
	checks.Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	gw.Register(mux)

	addr := cfg.Server.ListenAddr
	if addr == "" {
		addr = defaultListenAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           observe.Middleware(metrics)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printStartupSummary(cfg, addr)
	slog.Info("server ready — press Ctrl+C to shut down")

	// ── Run until signalled ───────────────────────────────────────────────────
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if tls := cfg.Server.TLS; tls != nil {
			err = srv.ListenAndServeTLS(tls.CertFile, tls.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received, stopping…")
		sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// buildCorrector constructs the phonetic content corrector from config,
// keeping the corrector's own defaults for zero-valued thresholds.
func buildCorrector(vc *config.VocabConfig) *vocab.Corrector {
	var opts []vocab.Option
	if vc.PhoneticThreshold != 0 {
		opts = append(opts, vocab.WithPhoneticThreshold(vc.PhoneticThreshold))
	}
	if vc.FuzzyThreshold != 0 {
		opts = append(opts, vocab.WithFuzzyThreshold(vc.FuzzyThreshold))
	}
	if vc.MinWordLen != 0 {
		opts = append(opts, vocab.WithMinWordLen(vc.MinWordLen))
	}
	return vocab.New(opts...)
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config, addr string) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║         Respeak — startup summary     ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	fmt.Printf("║  Listen addr     : %-19s ║\n", addr)
	if cfg.Server.TLS != nil {
		fmt.Printf("║  TLS             : %-19s ║\n", "enabled")
	} else {
		fmt.Printf("║  TLS             : %-19s ║\n", "(disabled)")
	}
	historyLimit := "default"
	if cfg.Editor.HistoryLimit > 0 {
		historyLimit = fmt.Sprintf("%d", cfg.Editor.HistoryLimit)
	}
	fmt.Printf("║  History limit   : %-19s ║\n", historyLimit)
	vocabState := "(disabled)"
	if cfg.Vocab.Enabled {
		vocabState = "enabled"
	}
	fmt.Printf("║  Vocab correction: %-19s ║\n", vocabState)
	fmt.Println("╚═══════════════════════════════════════╝")
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
