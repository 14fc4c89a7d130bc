package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/madhaviai/my-profile-mcp-server/internal/api"
	"github.com/madhaviai/my-profile-mcp-server/internal/catalog"
	"github.com/madhaviai/my-profile-mcp-server/internal/config"
	"github.com/madhaviai/my-profile-mcp-server/internal/profile"
)

var serveHTTP bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport; --http adds a streamable HTTP listener)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "also serve the streamable HTTP transport")
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	// stdout carries the stdio transport; logs go to stderr only.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	store, err := profile.Load(cfg.Profile.Path)
	if err != nil {
		return err
	}
	cat := catalog.New(store)

	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Catalog: cat,
		Store:   store,
		Version: version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	stdioSrv := server.NewStdioServer(mcpSrv)
	g.Go(func() error {
		// Stdin EOF means the host client is gone; shut everything down.
		defer cancel()
		if err := stdioSrv.Listen(gCtx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio server: %w", err)
		}
		return nil
	})
	slog.Info("MCP server started", "transport", "stdio", "tools", len(cat.Tools()))

	if serveHTTP {
		httpSrv := newHTTPServer(mcpSrv, cfg.Server.Port)
		g.Go(func() error {
			slog.Info("MCP server started", "transport", "http", "addr", httpSrv.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return httpSrv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("shutdown complete")
	return nil
}

func newHTTPServer(mcpSrv *server.MCPServer, port int) *http.Server {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": version})
	})
	r.Handle("/mcp", server.NewStreamableHTTPServer(mcpSrv))

	return &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: r,
	}
}
