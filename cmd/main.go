package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/satriahrh/pdfvoice/adapters/mp3"
	"github.com/satriahrh/pdfvoice/adapters/pdf"
	"github.com/satriahrh/pdfvoice/adapters/qr"
	"github.com/satriahrh/pdfvoice/adapters/storage"
	"github.com/satriahrh/pdfvoice/adapters/tts"
	"github.com/satriahrh/pdfvoice/domain/repositories"
	"github.com/satriahrh/pdfvoice/internal/api"
	"github.com/satriahrh/pdfvoice/internal/config"
	"github.com/satriahrh/pdfvoice/internal/websocket"
	"github.com/satriahrh/pdfvoice/usecase"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	// Storage directories are created before anything can write to them
	fileStorage := storage.NewLocalStorage(storage.Layout{
		Uploads: cfg.UploadDir,
		Audio:   cfg.AudioDir,
		QR:      cfg.QRDir,
	}, logger)
	if err := fileStorage.EnsureLayout(); err != nil {
		logger.Fatal("Failed to create storage layout", zap.Error(err))
	}

	// Initialize adapters
	textToSpeech, err := tts.NewProvider(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize text-to-speech provider", zap.Error(err))
	}
	if closer, ok := textToSpeech.(io.Closer); ok {
		defer closer.Close()
	}

	qrEncoder, err := qr.NewEncoder(qr.DefaultOptions())
	if err != nil {
		logger.Fatal("Failed to initialize QR encoder", zap.Error(err))
	}

	// Initialize event hub
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// Initialize usecase services
	synthesizer := usecase.NewSpeechSynthesizer(
		textToSpeech,
		fileStorage,
		mp3.NewProbe(),
		repositories.VoiceConfig{Language: cfg.TTSLanguage},
		logger,
	)
	documentService := usecase.NewDocumentService(fileStorage, pdf.NewExtractor(logger), synthesizer, hub, logger)
	qrService := usecase.NewQRService(qrEncoder, fileStorage, hub, cfg.QRIsolated, logger)

	renderer, err := api.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to load templates", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if cfg.MaxUploadMB > 0 {
		e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.MaxUploadMB)))
	}

	// Initialize routes
	api.InitRoutes(e, api.NewHandler(documentService, qrService, fileStorage, hub, logger))

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("ttsProvider", cfg.TTSProvider),
		zap.Bool("qrIsolated", cfg.QRIsolated))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	stop()

	logger.Info("Server exited")
}
