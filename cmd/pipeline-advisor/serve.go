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

	"github.com/azdevtools/pipeline-advisor/pkg/auth"
	"github.com/azdevtools/pipeline-advisor/pkg/azuredevops"
	"github.com/azdevtools/pipeline-advisor/pkg/config"
	"github.com/azdevtools/pipeline-advisor/pkg/logging"
	"github.com/azdevtools/pipeline-advisor/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the advisor HTTP API",
	Long: `Serve the pipeline analysis API, with authenticated read-only proxy
endpoints for the configured Azure DevOps organization. Configuration comes
from the environment (optionally via a .env file).`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logging.Init()
	defer logging.Sync()
	log := logging.L()

	store := auth.NewStore()
	if err := store.AddUser(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return fmt.Errorf("setting up credential store: %w", err)
	}

	// The analyze endpoint works without Azure DevOps; the proxy endpoints
	// report unavailable until org and PAT are configured.
	var devops server.DevOpsClient
	if cfg.Organization != "" && cfg.PAT != "" {
		client, err := azuredevops.New(azuredevops.Config{
			Organization: cfg.Organization,
			PAT:          cfg.PAT,
		})
		if err != nil {
			return fmt.Errorf("building Azure DevOps client: %w", err)
		}
		devops = client
	} else {
		log.Warn("AZURE_DEVOPS_ORG / AZURE_DEVOPS_PAT not set; proxy endpoints disabled")
	}

	srv := server.New(server.Options{
		Store:     store,
		DevOps:    devops,
		StaticDir: cfg.StaticDir,
		Logger:    log,
		Debug:     cfg.Environment != "production",
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
