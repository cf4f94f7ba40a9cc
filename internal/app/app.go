package app

import (
	"context"
	"log"
	"net/http"
	"os"

	"wingo_backend/internal/config"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func envName() string {
	name := os.Getenv("ENV")
	if name == "" {
		name = "local"
	}
	return name
}

func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()

	ctx := context.Background()
	logger := s.ServiceProvider.Logger()
	r := s.ServiceProvider.Router(ctx)

	// Фоновый цикл закрытия и расчета раундов
	sweep := s.ServiceProvider.Sweeper(ctx)
	go sweep.Start()
	defer sweep.Stop()

	// Метрики и проба живости на отдельном порту
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		addr := s.ServiceProvider.HTTPCfg().MetricsAddress()
		logger.Info("starting metrics server", zap.String("address", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("address", s.ServiceProvider.HTTPCfg().Address()))
	return http.ListenAndServe(s.ServiceProvider.HTTPCfg().Address(), r)
}
