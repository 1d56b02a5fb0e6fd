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
	"github.com/rs/zerolog"

	"flaggingd/internal/config"
	"flaggingd/internal/httpapi"
	"flaggingd/internal/model"
	"flaggingd/internal/registry"
	"flaggingd/internal/web"
)

func main() {
	// Local overrides from .env, if present.
	_ = godotenv.Load()

	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("FLAGGINGD_ADDR"); v != "" {
		defaultAddr = v
	}
	defaultDataDir := "~/flagging/data"
	if v := os.Getenv("FLAGGINGD_DATA_DIR"); v != "" {
		defaultDataDir = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	dataDir := flag.String("data-dir", defaultDataDir, "Directory to scan for gauge CSV files")
	configPath := flag.String("config", os.Getenv("FLAGGINGD_CONFIG"), "Optional config file (.yaml/.yml/.json/.toml)")
	modelVersion := flag.String("model-version", "", "Model coefficient vintage (default "+model.DefaultVersion+")")
	safeThreshold := flag.Float64("safe-threshold", 0, "Exceedance probability at which a reach is flagged unsafe (default 0.65)")
	refreshMinutes := flag.Int("refresh-minutes", 0, "Minutes between model refreshes (default 60)")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "flaggingd").Logger()

	var cfg config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
		}
		if err := config.Validate(cfg); err != nil {
			logger.Fatal().Err(err).Msg("invalid config")
		}
	}

	// Flags override file values; file values override built-in defaults.
	if *addr != defaultAddr || cfg.Addr == "" {
		cfg.Addr = *addr
	}
	if *dataDir != defaultDataDir || cfg.DataDir == "" {
		cfg.DataDir = *dataDir
	}
	if *modelVersion != "" {
		cfg.ModelVersion = *modelVersion
	}
	if *safeThreshold != 0 {
		cfg.SafeThreshold = *safeThreshold
	}
	if *refreshMinutes != 0 {
		cfg.RefreshMinutes = *refreshMinutes
	}
	if cfg.RefreshMinutes == 0 {
		cfg.RefreshMinutes = 60
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		logger = logger.Level(lvl)
	}
	httpapi.SetLogger(logger)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, cfg.CORSMethods, cfg.CORSHeaders)

	store, err := model.New(model.Config{
		Version:       cfg.ModelVersion,
		SafeThreshold: cfg.SafeThreshold,
		DataDir:       cfg.DataDir,
		Loader:        registry.LoadDir,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize model store")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial model refresh failed; serving 503 until gauge data arrives")
	}
	go store.Run(ctx, time.Duration(cfg.RefreshMinutes)*time.Minute)

	site, err := web.New(store, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse site templates")
	}

	mux := httpapi.NewMux(store, site.Routes())
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("data_dir", cfg.DataDir).Msg("flaggingd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}
