package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Popolzen/quranverse/internal/audit"
	"github.com/Popolzen/quranverse/internal/client"
	"github.com/Popolzen/quranverse/internal/config"
	"github.com/Popolzen/quranverse/internal/config/db"
	"github.com/Popolzen/quranverse/internal/handler"
	"github.com/Popolzen/quranverse/internal/logger"
	"github.com/Popolzen/quranverse/internal/repository"
	"github.com/Popolzen/quranverse/internal/repository/database"
	"github.com/Popolzen/quranverse/internal/repository/filestorage"
	"github.com/Popolzen/quranverse/internal/repository/memory"
	"github.com/Popolzen/quranverse/internal/repository/redisstore"
	"github.com/Popolzen/quranverse/internal/service/quran"
	"github.com/Popolzen/quranverse/internal/verse"
	"github.com/gin-gonic/gin"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	printBuildInfo()

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("не удалось прочитать конфигурацию: %w", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("не удалось инициализировать логгер: %w", err)
	}
	defer logger.Close()

	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if cfg.PprofAddr != "" {
		go func() {
			logger.Log().Infof("pprof сервер запущен на http://%s/debug/pprof/", cfg.PprofAddr)
			if err := http.ListenAndServe(cfg.PprofAddr, nil); err != nil {
				logger.Log().Warnw("pprof сервер остановлен", "error", err)
			}
		}()
	}

	dbCfg := db.NewDBConfig(*cfg)
	repo, err := initRepository(ctx, cfg, dbCfg)
	if err != nil {
		return err
	}

	publisher := initAudit(cfg)

	reducer := verse.NewReducer(verse.NewURLBuilder(cfg.APIBaseURL, cfg.ImageBaseURL))
	api := client.NewAlQuranAPI(cfg.RequestTimeout, logger.Logger().Named("alquran"))
	verses := quran.NewVerseService(reducer, repo, api, publisher, logger.Logger().Named("verses"))

	var pinger handler.DBPinger
	if dbCfg.DBurl != "" {
		pinger = dbCfg
	}

	app := NewApp(cfg, verses, repo, publisher, pinger)
	if err := app.Start(); err != nil {
		app.Close()
		return err
	}

	select {
	case <-ctx.Done():
		logger.Log().Info("получен сигнал остановки, завершаем работу")
	case err := <-app.Errors():
		logger.Log().Errorw("сервер остановился с ошибкой", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Log().Info("сервис остановлен")
	return nil
}

func printBuildInfo() {
	version := "N/A"
	date := "N/A"
	commit := "N/A"

	if buildVersion != "" {
		version = buildVersion
	}
	if buildDate != "" {
		date = buildDate
	}
	if buildCommit != "" {
		commit = buildCommit
	}

	fmt.Fprintf(os.Stdout, "Build version: %s\nBuild date: %s\nBuild commit: %s\n", version, date, commit)
}

// initRepository выбирает хранилище сессий: база > redis > файл > память
func initRepository(ctx context.Context, cfg *config.Config, dbCfg db.DBConfig) (repository.StateRepository, error) {
	switch {
	case dbCfg.DBurl != "":
		dbInstance, err := db.NewDataBase(ctx, dbCfg)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
		}
		if err := dbInstance.Migrate(); err != nil {
			dbInstance.Close()
			return nil, fmt.Errorf("ошибка выполнения миграций: %w", err)
		}
		logger.Log().Info("используется БД репозиторий")
		return database.NewStateRepository(dbInstance.DB), nil

	case cfg.RedisURL != "":
		repo, err := redisstore.Connect(ctx, cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к redis: %w", err)
		}
		logger.Log().Info("используется redis")
		return repo, nil

	case cfg.GetFilePath() != "":
		logger.Log().Infow("используется файл", "path", cfg.GetFilePath())
		return filestorage.NewStateRepository(cfg.GetFilePath()), nil

	default:
		logger.Log().Info("используется память")
		return memory.NewStateRepository(), nil
	}
}

// initAudit подписывает наблюдателей аудита из конфигурации
func initAudit(cfg *config.Config) *audit.Publisher {
	publisher := audit.NewPublisher()

	if cfg.GetAuditFile() != "" {
		fileObs, err := audit.NewFileObserver(cfg.GetAuditFile())
		if err != nil {
			logger.Log().Warnw("не удалось создать file observer", "error", err)
		} else {
			publisher.Subscribe(fileObs)
			logger.Log().Infow("аудит в файл", "path", cfg.GetAuditFile())
		}
	}

	if cfg.GetAuditURL() != "" {
		publisher.Subscribe(audit.NewHTTPObserver(cfg.GetAuditURL()))
		logger.Log().Infow("аудит на сервер", "url", cfg.GetAuditURL())
	}

	return publisher
}
