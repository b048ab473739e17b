package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/heliowatt/opsportal/internal/auth"
	"github.com/heliowatt/opsportal/internal/db/bunx"
	"github.com/heliowatt/opsportal/internal/directory"
	"github.com/heliowatt/opsportal/internal/files"
	"github.com/heliowatt/opsportal/internal/mail"
	"github.com/heliowatt/opsportal/internal/repository"
	"github.com/heliowatt/opsportal/internal/server"
	"github.com/heliowatt/opsportal/internal/session"
	"github.com/heliowatt/opsportal/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portal server",
	Long:  `Starts the HTTP server with the portal pages, the admin area, and the telemetry endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Initialize telemetry before anything that should be traced
		otelShutdown, err := telemetry.Init(cmd.Context(), cfg.Observability)
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(ctx); err != nil {
				log.Printf("telemetry shutdown: %v", err)
			}
		}()

		serverMetrics, err := telemetry.NewServerMetrics()
		if err != nil {
			return fmt.Errorf("failed to create server metrics: %w", err)
		}
		authMetrics, err := telemetry.NewAuthMetrics()
		if err != nil {
			return fmt.Errorf("failed to create auth metrics: %w", err)
		}

		// Connect to database
		db, err := bunx.NewDB(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		log.Printf("Connected to database")

		telemetryRepo := repository.NewBunTelemetryRepository(db)

		codec := auth.NewTokenCodec(cfg.SessionSecret)
		sessions := session.NewStore(cfg.SessionSecret, codec)
		dir := telemetry.InstrumentAuthenticator(directory.NewClient(cfg.Directory), authMetrics)

		browser := files.NewBrowser(cfg.FTP)
		inbox := mail.NewInbox(cfg.Mail)
		contact := mail.NewContact(cfg.Mail)

		r := server.NewRouter(server.RouterOptions{
			Directory: dir,
			Sessions:  sessions,
			Telemetry: telemetryRepo,
			Files:     browser,
			Inbox:     inbox,
			Contact:   contact,
			Middleware: []func(http.Handler) http.Handler{
				telemetry.HTTPMiddleware(serverMetrics),
			},
		})

		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Start server in goroutine
		serverErrors := make(chan error, 1)
		go func() {
			log.Printf("Starting server on %s", cfg.ServerAddr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Wait for interrupt signal
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			log.Printf("Received signal %v, shutting down gracefully", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			log.Printf("Server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
