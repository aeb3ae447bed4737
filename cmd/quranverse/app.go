package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/Popolzen/quranverse/internal/audit"
	"github.com/Popolzen/quranverse/internal/config"
	grpcserver "github.com/Popolzen/quranverse/internal/grpc"
	"github.com/Popolzen/quranverse/internal/handler"
	"github.com/Popolzen/quranverse/internal/logger"
	"github.com/Popolzen/quranverse/internal/repository"
	"github.com/Popolzen/quranverse/internal/service/quran"
	"google.golang.org/grpc"
)

type App struct {
	cfg        *config.Config
	server     *http.Server
	grpcServer *grpc.Server
	repo       repository.StateRepository
	publisher  *audit.Publisher
	errs       chan error
}

// NewApp собирает HTTP и gRPC серверы поверх сервиса
func NewApp(cfg *config.Config, verses *quran.VerseService, repo repository.StateRepository, publisher *audit.Publisher, pinger handler.DBPinger) *App {
	router := handler.NewRouter(handler.RouterConfig{
		Verses:        verses,
		Pinger:        pinger,
		SecretKey:     cfg.SecretKey,
		SecureCookie:  cfg.EnableHTTPS,
		TrustedSubnet: cfg.TrustedSubnet,
	})

	app := &App{
		cfg:       cfg,
		server:    &http.Server{Addr: cfg.GetAddress(), Handler: router},
		repo:      repo,
		publisher: publisher,
		errs:      make(chan error, 2),
	}
	if cfg.GRPCAddr != "" {
		app.grpcServer = grpcserver.NewServer(verses, cfg.SecretKey)
	}
	return app
}

// Start запускает серверы в фоне, ошибки приходят в Errors
func (a *App) Start() error {
	if a.grpcServer != nil {
		lis, err := net.Listen("tcp", a.cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("не удалось слушать %s: %w", a.cfg.GRPCAddr, err)
		}
		logger.Log().Infof("gRPC сервер запущен на %s", a.cfg.GRPCAddr)
		go func() {
			if err := a.grpcServer.Serve(lis); err != nil {
				a.errs <- fmt.Errorf("gRPC сервер: %w", err)
			}
		}()
	}

	go func() {
		var err error
		if a.cfg.EnableHTTPS {
			logger.Log().Infow("Quran verse lookup запущен", "addr", a.cfg.GetAddress(), "base_url", a.cfg.GetBaseURL(), "tls", true)
			err = a.server.ListenAndServeTLS(a.cfg.CertFile, a.cfg.KeyFile)
		} else {
			logger.Log().Infow("Quran verse lookup запущен", "addr", a.cfg.GetAddress(), "base_url", a.cfg.GetBaseURL())
			err = a.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errs <- fmt.Errorf("HTTP сервер: %w", err)
		}
	}()

	return nil
}

// Errors канал ошибок запущенных серверов
func (a *App) Errors() <-chan error {
	return a.errs
}

// Close закрывает все ресурсы
func (a *App) Close() error {
	logger.Log().Info("закрываем audit publisher")
	if err := a.publisher.Close(); err != nil {
		logger.Log().Warnw("ошибка закрытия publisher", "error", err)
	}

	logger.Log().Info("закрываем репозиторий")
	if err := a.repo.Close(); err != nil {
		logger.Log().Warnw("ошибка закрытия репозитория", "error", err)
	}

	return nil
}

// Shutdown выполняет graceful shutdown с таймаутом
func (a *App) Shutdown(ctx context.Context) error {
	if a.grpcServer != nil {
		logger.Log().Info("останавливаем gRPC сервер")
		a.grpcServer.GracefulStop()
	}

	logger.Log().Info("останавливаем HTTP сервер")
	if err := a.server.Shutdown(ctx); err != nil {
		a.Close()
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	return a.Close()
}
