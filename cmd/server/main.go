package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"track-svr/internal/api"
	"track-svr/internal/config"
	"track-svr/internal/dispatcher"
	"track-svr/internal/grpcclient"
	"track-svr/internal/link"
	"track-svr/internal/observability"
	"track-svr/internal/server"
	"track-svr/internal/store"
)

func main() {
	cfg, err := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Starting track-svr...", "port", cfg.TCPPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Inicializar Redis antes del server
	st, err := store.InitRedis(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.TrackTTL)
	if err != nil {
		logger.Error("Redis init failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	link.Init(cfg.ProxyAddr, logger)

	sinks := &dispatcher.Sinks{
		Store:       st,
		OnTrack:     link.SendTracking,
		OnProximity: link.SendProximity,
		StaleAfter:  cfg.StaleAfter,
		Logger:      logger.With("component", "sinks"),
	}
	if cfg.GRPCServer != "" {
		fw, err := grpcclient.NewGRPCClient(cfg.GRPCServer)
		if err != nil {
			logger.Error("gRPC client init failed", "error", err)
			os.Exit(1)
		}
		defer fw.Close()
		sinks.Forwarder = fw
	}

	disp := dispatcher.New(cfg.MaxIDLen, logger)
	sinks.Register(disp)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewRouter(st),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	srv, err := server.New(disp.ProcessIncoming, server.Options{
		Workers:       cfg.Workers,
		MaxFrameBytes: cfg.MaxFrameBytes,
		RawLogDir:     cfg.RawLogDir,
	}, logger)
	if err != nil {
		logger.Error("TCP server init failed", "error", err)
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(":" + cfg.TCPPort); err != nil {
		logger.Error("TCP server failed", "error", err)
	}
}
