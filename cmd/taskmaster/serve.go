package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/config"
	"github.com/shaoyun/taskmaster-pro/internal/database"
	"github.com/shaoyun/taskmaster-pro/internal/enrich"
	"github.com/shaoyun/taskmaster-pro/internal/handlers"
	"github.com/shaoyun/taskmaster-pro/internal/repositories"
	"github.com/shaoyun/taskmaster-pro/internal/routes"
	"github.com/shaoyun/taskmaster-pro/internal/scanner"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task manager HTTP API and the periodic due-task scan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}
		cfg := config.Load()

		if err := database.Init(cfg.DatabaseDSN); err != nil {
			return err
		}
		db := database.GetDB()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scan := scanner.New(
			repositories.NewTaskRepository(db),
			time.Duration(cfg.ScanIntervalSeconds)*time.Second,
		)
		go scan.Run(ctx)

		h := handlers.New(
			db,
			enrich.NewAIClient(cfg.AIEndpoint, cfg.AIAPIKey),
			enrich.NewHolidayClient(cfg.HolidayEndpoint),
			scan,
			cfg.PageSize,
		)

		srv := &http.Server{Addr: cfg.Addr, Handler: routes.Setup(h)}
		go func() {
			log.Printf("HTTP server listening on %s", cfg.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}

		log.Println("HTTP server and due-task scan shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
