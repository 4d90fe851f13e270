package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"chatd/internal/httpapi"
)

func buildServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat HTTP daemon",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", envStr("CHATD_ADDR", ":8090"), "HTTP listen address, e.g. :8090")
	cmd.Flags().String("cors-origins", "", "Comma-separated allowed CORS origins (empty disables CORS)")
	cmd.Flags().Int64("max-body-bytes", 0, "Max request body size in bytes (0=default 1MiB)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	httpapi.SetLogger(logger)

	if cfg.Addr == "" || cmd.Flags().Changed("addr") {
		cfg.Addr, _ = cmd.Flags().GetString("addr")
	}
	if origins, _ := cmd.Flags().GetString("cors-origins"); origins != "" {
		httpapi.SetCORSOptions(true, splitCSV(origins),
			[]string{"GET", "POST", "OPTIONS"},
			[]string{"Accept", "Content-Type", "X-Log-Level"})
	}
	if n, _ := cmd.Flags().GetInt64("max-body-bytes"); n > 0 {
		httpapi.SetMaxBodyBytes(n)
	}

	mgr := newManager(cfg, nil)
	mux := httpapi.NewMux(httpapi.ManagerService{Manager: mgr})

	// Base context lets shutdown cancel in-flight generations before the
	// model is torn down.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Msg("chatd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	mgr.Unload()
	return nil
}
