package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathforest/internal/api"
	"github.com/abhisek/mathforest/internal/persist"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		log := stderrLogger()

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := newAuthService(ctx, cfg, st, log)
		if err != nil {
			return fmt.Errorf("init auth: %w", err)
		}

		var metrics *persist.Metrics
		if cfg.Server.Metrics {
			metrics = persist.NewMetrics(prometheus.DefaultRegisterer)
		}
		games := api.NewRegistry(st, gameOptions(cfg, log, metrics))
		srv := api.NewServer(svc, games, api.Options{
			Timeout: cfg.Server.RequestTimeout,
			Metrics: cfg.Server.Metrics,
			Logger:  log,
		})

		httpServer := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       2 * time.Minute,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.ListenAndServe()
		}()

		fmt.Printf("Math Forest serving on http://%s\n", cfg.Server.Addr)
		if cfg.Server.Metrics {
			fmt.Printf("  Metrics: http://%s/metrics\n", cfg.Server.Addr)
		}

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}
		// Flush pending debounced saves before the store closes.
		return games.Close(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides [server] addr)")
}
