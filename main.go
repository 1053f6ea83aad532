package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/natefinch/lumberjack.v2"

	"lovecinema/api"
	"lovecinema/config"
	"lovecinema/handlers"
	"lovecinema/internal/metrics"
	"lovecinema/services/recommend"
	"lovecinema/utils"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "settings.json"
	}

	cfgManager := config.NewManager(cfgPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("[main] failed to load settings: %v", err)
	}

	setupLogging(settings.Server.LogFile)

	// Missing credentials are the one fatal condition: every request needs
	// all four providers.
	if err := settings.Validate(); err != nil {
		log.Fatalf("[main] invalid configuration: %v", err)
	}

	metrics.Register(prometheus.DefaultRegisterer)

	svc := recommend.NewService(recommend.Config{
		SimilarityAPIKey:  settings.APIKeys.Similarity,
		GenerativeAPIKey:  settings.APIKeys.Generative,
		MetadataAPIKey:    settings.APIKeys.Metadata,
		VideoAPIKey:       settings.APIKeys.Video,
		Region:            settings.Recommend.Region,
		GenerativeModel:   settings.Recommend.GenerativeModel,
		Timeout:           time.Duration(settings.Recommend.TimeoutSeconds) * time.Second,
		SimilarityBaseURL: settings.Recommend.SimilarityBaseURL,
		GenerativeBaseURL: settings.Recommend.GenerativeBaseURL,
		MetadataBaseURL:   settings.Recommend.MetadataBaseURL,
		VideoBaseURL:      settings.Recommend.VideoBaseURL,
	})

	router := utils.NewRouter()
	router.Use(api.RequestLoggingMiddleware())

	recommendHandler := handlers.NewRecommendHandler(svc)
	router.HandleFunc("/api/recommend", recommendHandler.Recommend).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.PathPrefix("/").Handler(handlers.NewStaticHandler())

	addr := fmt.Sprintf(":%d", settings.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s (region=%s, model=%s)",
			addr, settings.Recommend.Region, settings.Recommend.GenerativeModel)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}

// setupLogging routes the standard logger through a rotating file when
// LOG_FILE / server.log_file is configured; stderr otherwise.
func setupLogging(logFile string) {
	if logFile == "" {
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	})
}
