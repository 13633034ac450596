package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/annel0/shapebuilder/internal/api"
	"github.com/annel0/shapebuilder/internal/builder"
	"github.com/annel0/shapebuilder/internal/config"
	"github.com/annel0/shapebuilder/internal/logging"
	"github.com/annel0/shapebuilder/internal/metrics"
	"github.com/annel0/shapebuilder/internal/observability"
	"github.com/annel0/shapebuilder/internal/progress"
	"github.com/annel0/shapebuilder/internal/storage"
	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world"
	"github.com/annel0/shapebuilder/internal/world/block"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию $SHAPEBUILDER_CONFIG)")
	flag.Parse()

	// логгеры к этому моменту уже закрыты, поэтому пишем через log
	if err := run(*configPath); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

// run владеет всеми ресурсами сервера; отложенные закрытия выполняются при любом выходе
func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("загрузка конфигурации: %w", err)
	}

	// Инициализируем систему логирования
	logging.LogDir = cfg.Logging.Dir
	logger, err := logging.NewLogger("server")
	if err != nil {
		return fmt.Errorf("инициализация логирования: %w", err)
	}
	consoleLevel, fileLevel := logging.ParseLevel(cfg.Logging.ConsoleLevel), logging.ParseLevel(cfg.Logging.FileLevel)
	logger.SetLevels(consoleLevel, fileLevel)
	logging.GetLoggerManager().SetLevels(consoleLevel, fileLevel)
	logging.SetDefaultLogger(logger)
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🧱 Запуск ShapeBuilder...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === ТРАССИРОВКА ===
	shutdownTelemetry, err := observability.Setup(ctx, cfg.Telemetry.Enabled, cfg.Telemetry.ServiceName)
	if err != nil {
		logging.Error("❌ Ошибка инициализации OpenTelemetry: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logging.Warn("Ошибка остановки OpenTelemetry: %v", err)
		}
	}()

	// === МИР ===
	var (
		mutator world.Mutator
		blocks  api.BlockReader
	)
	switch cfg.Storage.Backend {
	case config.BackendBadger:
		ws, err := storage.NewWorldStorage(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("открытие хранилища: %w", err)
		}
		defer ws.Close()
		mutator, blocks = ws, ws
		logging.Info("💾 Мир хранится в BadgerDB: %s", cfg.Storage.Path)
	default:
		mw := world.NewMemoryWorld()
		mutator = mw
		blocks = api.BlockReaderFunc(func(pos vec.Vec3) (block.BlockID, error) {
			return mw.GetBlock(pos), nil
		})
		logging.Info("💾 Мир хранится в памяти")
	}

	// === ПРОГРЕСС ===
	reporters := []progress.Reporter{progress.LogReporter{}}
	if cfg.Progress.NATSURL != "" {
		nr, err := progress.NewNATSReporter(cfg.Progress.NATSURL, cfg.Progress.Subject)
		if err != nil {
			logging.Warn("NATS недоступен, прогресс пишется только в лог: %v", err)
		} else {
			defer nr.Close()
			reporters = append(reporters, nr)
		}
	}

	material, err := block.Lookup(cfg.Build.DefaultMaterial)
	if err != nil {
		return fmt.Errorf("build.default_material: %w", err)
	}

	b := builder.New(mutator,
		builder.WithReporter(progress.Multi(reporters...)),
		builder.WithChunkSize(cfg.Build.ChunkSize),
		builder.WithMetrics(metrics.New(nil)),
	)

	// === REST API ===
	gin.SetMode(gin.ReleaseMode)
	restPort := ":" + strconv.Itoa(cfg.Server.GetRESTPort())
	server := api.NewRestServer(api.Config{
		Port:            restPort,
		Builder:         b,
		Blocks:          blocks,
		DefaultMaterial: material,
		ShellThreshold:  cfg.Build.ShellThreshold,
		MaxSampleCoords: cfg.Server.MaxSampleCoords,
		MaxVolume:       cfg.Server.MaxVolume,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	logging.Info("✅ ShapeBuilder запущен")
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)
	logging.Info("   📈 Метрики: http://localhost%s/metrics", restPort)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info("📡 Получен сигнал, завершение работы...")
	case serveErr = <-errCh:
		if serveErr != nil {
			logging.Error("❌ Ошибка REST API: %v", serveErr)
			serveErr = fmt.Errorf("REST API: %w", serveErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}

	logging.Info("👋 Сервер успешно остановлен")
	return serveErr
}
