package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/natevvv/osm-floodfill/internal/config"
	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/isochrone"
	"github.com/natevvv/osm-floodfill/pkg/server/openapi_server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		fatal("invalid configuration", err)
	}

	start := time.Now()
	g, err := graph.Load(cfg.Graph)
	if err != nil {
		fatal("loading graph", err, "graph", cfg.Graph)
	}
	slog.Info("graph loaded", "graph", cfg.Graph, "nodes", g.NodeCount(), "edges", g.EdgeCount(), "duration", time.Since(start))

	service, err := isochrone.NewService(g)
	if err != nil {
		fatal("creating isochrone service", err)
	}
	if !service.HasCoordinates() {
		slog.Warn("graph has no coordinates, /isochrone is disabled")
	}

	DefaultApiService := openapi_server.NewDefaultApiService(service)
	DefaultApiController := openapi_server.NewDefaultApiController(DefaultApiService)
	router := openapi_server.NewRouter(DefaultApiController)

	server := &http.Server{Addr: cfg.Addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("server started", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal("server stopped", err)
	}
	slog.Info("server stopped")
}

func fatal(msg string, err error, args ...any) {
	slog.Error(msg, append(args, "error", err)...)
	os.Exit(1)
}
