package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/docsite/internal/catalog"
	"finitefield.org/docsite/internal/config"
	"finitefield.org/docsite/internal/content"
	"finitefield.org/docsite/internal/httpserver"
	custommw "finitefield.org/docsite/internal/middleware"
	"finitefield.org/docsite/internal/observability"
	"finitefield.org/docsite/internal/shell"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	var dev bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the documentation site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("dev") {
				cfg.Dev = dev
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides addr)")
	cmd.Flags().BoolVar(&dev, "dev", false, "reload routes and pages when content changes")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.Load(cfg.ContentDir)
	if err != nil {
		return err
	}
	if err := cat.Validate(); err != nil {
		logger.Warn("route catalog is inconsistent", zap.Error(err))
	}
	catalogs := catalog.NewStore(cat)

	var pageOpts []content.Option
	if cfg.Dev {
		pageOpts = append(pageOpts, content.WithoutCache())
	}
	pages := content.NewStore(cfg.ContentDir, content.NewRenderer(), pageOpts...)

	shells := shell.NewRegistry(cfg.Session.MaxSessions, cfg.Session.TTL, logger.Named("shells"))
	defer shells.Close()

	srv, err := httpserver.New(httpserver.Config{
		Address:  cfg.Addr,
		SiteName: cfg.SiteName,
		BaseURL:  cfg.BaseURL,
		Sessions: custommw.SessionConfig{
			CookieName: cfg.Session.CookieName,
			HashKey:    cfg.Session.DecodedHashKey(),
			BlockKey:   cfg.Session.DecodedBlockKey(),
			Secure:     cfg.Session.Secure,
		},
		Logger:  logger,
		Catalog: catalogs,
		Pages:   pages,
		Shells:  shells,
	})
	if err != nil {
		return err
	}

	if cfg.Dev {
		go func() {
			err := catalog.Watch(ctx, cfg.ContentDir, logger.Named("watch"), func(c *catalog.Catalog) {
				catalogs.Swap(c)
				pages.Invalidate()
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("content watcher stopped", zap.Error(err))
			}
		}()
	}
	if cfg.Session.HashKey == "" || cfg.Session.BlockKey == "" {
		logger.Warn("session keys not configured; using ephemeral keys")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Info("docs server listening", zap.String("addr", cfg.Addr), zap.String("content_dir", cfg.ContentDir), zap.Bool("dev", cfg.Dev))

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("docs server stopped", zap.Int("shells", shells.Len()))
	return nil
}
