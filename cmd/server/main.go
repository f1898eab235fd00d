package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/rezvirumon/user-billing-server/config"
	apirouter "github.com/rezvirumon/user-billing-server/internal/api/router"
	"github.com/rezvirumon/user-billing-server/internal/clock"
	"github.com/rezvirumon/user-billing-server/internal/database"
	"github.com/rezvirumon/user-billing-server/internal/logger"
)

// initLogger khởi tạo logger, cấu hình đọc từ biến môi trường LOG_*
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	// Fatal chạy exit handler, flush các async hook trước khi thoát
	logrus.RegisterExitHandler(logger.Shutdown)
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

func main() {
	// Nạp .env trước để logger đọc được LOG_*
	cfg, err := config.NewConfig()
	initLogger()
	defer logger.Shutdown()
	log := logger.GetAppLogger()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.WithError(err).Fatal("Invalid timezone")
	}
	clk := clock.SystemClock{Loc: loc}

	client, cols, err := InitDatabase(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.CloseInstance(client)

	bus, pub := InitEvents(cfg)
	if pub != nil {
		defer pub.Close()
	}

	services, err := InitServices(cols, clk, bus)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize services")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var workers sync.WaitGroup
	if err := StartWorkers(ctx, &workers, cfg, services, clk); err != nil {
		log.WithError(err).Fatal("Failed to start workers")
	}

	regs := append([]apirouter.RegisterFunc{systemRoutes(database.ClientPinger{Client: client})}, services.Routes()...)
	app, err := InitFiberApp(cfg, regs...)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize routes")
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	address := cfg.ListenAddress()
	log.WithFields(map[string]interface{}{
		"address":  address,
		"database": cfg.MongoDB_DBName,
		"timezone": loc.String(),
	}).Info("Starting server with HTTP")

	if err := app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.WithError(err).Error("Error in Fiber Listen")
		stop()
	}

	// Listen trả về khi listener đóng, request đang chạy có thể vẫn emit.
	// Đợi shutdown và worker xong rồi mới đóng bus.
	<-shutdownDone
	workers.Wait()
	bus.Close()
}
