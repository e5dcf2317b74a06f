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

	"github.com/iwvelando/omnicalc/internal/config"
	"github.com/iwvelando/omnicalc/internal/metrics"
	"github.com/iwvelando/omnicalc/internal/server"
	"github.com/iwvelando/omnicalc/pkg/constants"
	"github.com/iwvelando/omnicalc/pkg/currency"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	address      string
	serverConfig string
	maxBodySize  string
}

func newServeCommand(a *app) *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		Long:  "Serve every calculator as a JSON API with Prometheus metrics on /metrics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.address, "addr", "", "listen address override, e.g. :8080")
	cmd.Flags().StringVar(&opts.serverConfig, "server-config", "", "path to the server configuration file")
	cmd.Flags().StringVar(&opts.maxBodySize, "max-body-size", "", "request body limit override, e.g. 64K")
	return cmd
}

// resolveServerConfig merges the server YAML with the application config
// and command line overrides.
func (a *app) resolveServerConfig(opts serveOptions) (*server.Config, error) {
	path := opts.serverConfig
	if path == "" {
		path = a.conf.Server.ConfigFile
	}
	if path == "" {
		path = constants.DefaultServerConfigFile
	}

	srvConf, err := server.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if srvConf.Address == constants.DefaultServerAddress && a.conf.Server.Address != "" {
		srvConf.Address = a.conf.Server.Address
	}
	if opts.address != "" {
		srvConf.Address = opts.address
	}
	if opts.maxBodySize != "" {
		size, err := server.ParseSize(opts.maxBodySize)
		if err != nil {
			return nil, err
		}
		srvConf.SetBodySizeBytes(size)
	}
	return srvConf, nil
}

func (a *app) serve(ctx context.Context, opts serveOptions) error {
	srvConf, err := a.resolveServerConfig(opts)
	if err != nil {
		return err
	}

	logger := a.logger
	if srvConf.Logging != (config.LoggingConfig{}) {
		if logger, err = initializeLogger(srvConf.Logging, a.logLevel); err != nil {
			return fmt.Errorf("failed to initialize server logger: %w", err)
		}
		defer func() {
			_ = logger.Sync()
		}()
	}

	m := metrics.New()
	rates := currency.NewClient(a.conf.CurrencyClientConfig(), logger, currency.WithObserver(m.ObserveRateFetch))
	handler := server.NewHandler(logger, srvConf.BodySizeBytes(), version,
		server.WithRates(rates),
		server.WithMetrics(m),
		server.WithRateLimit(srvConf.RateLimit),
		server.WithTimeout(srvConf.Timeout()),
	)

	httpServer := &http.Server{
		Addr:              srvConf.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting API server",
			zap.String("op", "main.serve"),
			zap.String("address", srvConf.Address),
			zap.Int64("maxBodySize", srvConf.BodySizeBytes()),
			zap.Duration("requestTimeout", srvConf.Timeout()),
			zap.String("version", version),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down API server",
		zap.String("op", "main.serve"),
		zap.Duration("timeout", shutdownTimeout),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
