package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rezvirumon/user-billing-server/config"
	customerrouter "github.com/rezvirumon/user-billing-server/internal/api/customer/router"
	customersvc "github.com/rezvirumon/user-billing-server/internal/api/customer/service"
	dashboardrouter "github.com/rezvirumon/user-billing-server/internal/api/dashboard/router"
	dashboardsvc "github.com/rezvirumon/user-billing-server/internal/api/dashboard/service"
	reportrouter "github.com/rezvirumon/user-billing-server/internal/api/report/router"
	reportsvc "github.com/rezvirumon/user-billing-server/internal/api/report/service"
	apirouter "github.com/rezvirumon/user-billing-server/internal/api/router"
	"github.com/rezvirumon/user-billing-server/internal/clock"
	"github.com/rezvirumon/user-billing-server/internal/database"
	"github.com/rezvirumon/user-billing-server/internal/events"
	"github.com/rezvirumon/user-billing-server/internal/logger"
	"github.com/rezvirumon/user-billing-server/internal/notification"
	"github.com/rezvirumon/user-billing-server/internal/worker"
)

// Services gom các service đã khởi tạo
type Services struct {
	Customers *customersvc.CustomerService
	Dashboard *dashboardsvc.DashboardService
	Reports   *reportsvc.ReportService
}

// InitDatabase kết nối MongoDB, đăng ký collections vào registry và tạo index
func InitDatabase(cfg *config.Configuration) (*mongo.Client, *database.Collections, error) {
	client, err := database.GetInstance(cfg)
	if err != nil {
		return nil, nil, err
	}

	db := client.Database(cfg.MongoDB_DBName)
	cols := database.NewCollections()
	if err := database.RegisterCollections(cols, db); err != nil {
		_ = database.CloseInstance(client)
		return nil, nil, fmt.Errorf("register collections: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.CreateIndexes(ctx, db); err != nil {
		// Thiếu index chỉ ảnh hưởng hiệu năng
		logger.GetAppLogger().WithError(err).Warn("Failed to create indexes")
	}
	return client, cols, nil
}

// InitEvents tạo bus sự kiện. Có SMTP thì gửi biên nhận thanh toán qua email.
// Có AMQP_URL thì gắn publisher; kết nối lỗi chỉ log cảnh báo.
func InitEvents(cfg *config.Configuration) (*events.Bus, *events.Publisher) {
	bus := events.NewBus()
	log := logger.WithModule("events")

	bus.Subscribe(func(_ context.Context, e events.Event) {
		log.WithFields(map[string]interface{}{
			"event":       e.Name,
			"collection":  e.Collection,
			"document_id": e.DocumentID,
		}).Debug("Billing event")
	})

	if cfg.SMTPEnabled() {
		mailer := notification.NewReceiptMailer(notification.SMTPConfig{
			Host:     cfg.SMTP_Host,
			Port:     cfg.SMTP_Port,
			Username: cfg.SMTP_Username,
			Password: cfg.SMTP_Password,
			From:     cfg.SMTP_From,
		})
		bus.Subscribe(mailer.Handler())
		log.WithField("smtp_host", cfg.SMTP_Host).Info("Payment receipt emails enabled")
	}

	if cfg.AMQP_URL == "" {
		return bus, nil
	}
	pub, err := events.NewPublisher(cfg.AMQP_URL, cfg.AMQP_Exchange)
	if err != nil {
		log.WithError(err).Warn("AMQP publisher disabled")
		return bus, nil
	}
	bus.Subscribe(pub.Handler())
	log.WithField("exchange", cfg.AMQP_Exchange).Info("AMQP publisher enabled")
	return bus, pub
}

// InitServices tạo các service trên registry collections
func InitServices(cols *database.Collections, clk clock.Clock, bus *events.Bus) (*Services, error) {
	customers, err := customersvc.NewCustomerService(cols, clk, bus)
	if err != nil {
		return nil, fmt.Errorf("create customer service: %w", err)
	}
	dashboard, err := dashboardsvc.NewDashboardService(cols, clk)
	if err != nil {
		return nil, fmt.Errorf("create dashboard service: %w", err)
	}
	reports, err := reportsvc.NewReportService(cols, dashboard, clk, bus)
	if err != nil {
		return nil, fmt.Errorf("create report service: %w", err)
	}
	return &Services{Customers: customers, Dashboard: dashboard, Reports: reports}, nil
}

// Routes trả về RegisterFunc của mọi domain
func (s *Services) Routes() []apirouter.RegisterFunc {
	return []apirouter.RegisterFunc{
		customerrouter.Register(s.Customers),
		dashboardrouter.Register(s.Dashboard),
		reportrouter.Register(s.Reports),
	}
}

// StartWorkers chạy job archive-then-clear nếu MONTHLY_CLEAR_ENABLED. wg được Done khi worker dừng.
func StartWorkers(ctx context.Context, wg *sync.WaitGroup, cfg *config.Configuration, s *Services, clk clock.Clock) error {
	log := logger.GetAppLogger()
	if !cfg.MonthlyClear_Enabled {
		log.Info("Monthly archive worker disabled")
		return nil
	}

	w, err := worker.NewMonthlyArchiveWorker(s.Reports, s.Customers, clk, cfg.MonthlyArchiveBeforeClear)
	if err != nil {
		return fmt.Errorf("create monthly archive worker: %w", err)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.Start(ctx)
	}()
	return nil
}
