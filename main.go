package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"pdf_press/api"
	"pdf_press/config"
	"pdf_press/service"
	"pdf_press/store"
)

const (
	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 15 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout
	ServerWriteTimeout = 15 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	// Optional .env file for local development
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("PDFPRESS_CONFIG"))
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	logrus.Infof("Using pdfcpu %s", model.VersionStr)

	var st *store.Store
	if cfg.DatabasePath != "" {
		st, err = store.Open(cfg.DatabasePath)
		if err != nil {
			logrus.Fatalf("Failed to open job store: %v", err)
		}
		defer st.Close()
		logrus.Infof("Job store: %s", cfg.DatabasePath)
	}

	proc, err := service.NewProcessor(service.Options{
		Workers: cfg.Workers,
		Timeout: time.Duration(cfg.RequestTimeout),
		Store:   st,
		Logger:  logrus.StandardLogger(),
	})
	if err != nil {
		logrus.Fatalf("Failed to create processor: %v", err)
	}
	defer proc.Close()

	r := gin.Default()

	// Static files for web UI
	r.Static("/static", "./static")
	r.LoadHTMLGlob("templates/*")

	// API routes
	api.SetupRoutes(r, cfg, proc)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pdf_press",
		})
	})

	// Web UI route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"title": "PDF Press",
		})
	})

	// Create HTTP server with timeout settings
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on %s", srv.Addr)
		logrus.Infof("Max file size: %d bytes", cfg.MaxFileSize)
		logrus.Infof("Workers: %d, job timeout: %s", cfg.Workers, time.Duration(cfg.RequestTimeout))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited gracefully")
}
