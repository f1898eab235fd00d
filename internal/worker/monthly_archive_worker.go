// Package worker chứa các job nền chạy cùng server.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	reportmodels "github.com/rezvirumon/user-billing-server/internal/api/report/models"
	"github.com/rezvirumon/user-billing-server/internal/clock"
	"github.com/rezvirumon/user-billing-server/internal/logger"
)

// Archiver lưu snapshot báo cáo tháng
type Archiver interface {
	Archive(ctx context.Context) (reportmodels.MonthlyReport, error)
}

// Clearer xóa toàn bộ khách hàng
type Clearer interface {
	ClearAll(ctx context.Context) (int64, error)
}

// MonthlyArchiveWorker chờ tới đầu mỗi tháng (giờ địa phương), lưu báo cáo rồi xóa khách hàng.
// archiveFirst = false thì chỉ xóa, giống quy trình hai bước thủ công.
type MonthlyArchiveWorker struct {
	archiver     Archiver
	clearer      Clearer
	clock        clock.Clock
	archiveFirst bool

	// wait chặn tới khi hết d; trả về false khi ctx bị hủy
	wait func(ctx context.Context, d time.Duration) bool
}

// NewMonthlyArchiveWorker tạo worker mới
func NewMonthlyArchiveWorker(archiver Archiver, clearer Clearer, clk clock.Clock, archiveFirst bool) (*MonthlyArchiveWorker, error) {
	if clearer == nil {
		return nil, fmt.Errorf("clearer is nil")
	}
	if archiveFirst && archiver == nil {
		return nil, fmt.Errorf("archiver is nil")
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &MonthlyArchiveWorker{
		archiver:     archiver,
		clearer:      clearer,
		clock:        clk,
		archiveFirst: archiveFirst,
		wait:         sleepContext,
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// RunOnce chạy một lượt. Archive lỗi thì dừng, không xóa gì.
func (w *MonthlyArchiveWorker) RunOnce(ctx context.Context) error {
	log := logger.WithModule("worker.monthly_archive")

	if w.archiveFirst {
		report, err := w.archiver.Archive(ctx)
		if err != nil {
			return fmt.Errorf("archive monthly report: %w", err)
		}
		logger.LogAction(logger.ActionReportArchive, nil, "monthly_report", report.ID.Hex(), map[string]interface{}{
			"year":    report.Year,
			"month":   report.Month,
			"trigger": "monthly_job",
		})
		log.WithFields(logrus.Fields{"year": report.Year, "month": report.Month}).Info("Monthly report archived")
	}

	cleared, err := w.clearer.ClearAll(ctx)
	if err != nil {
		return fmt.Errorf("clear customers: %w", err)
	}
	logger.LogAction(logger.ActionCustomersClear, nil, "customer", "", map[string]interface{}{
		"deleted": cleared,
		"trigger": "monthly_job",
	})
	log.WithField("deleted", cleared).Info("Customers cleared")
	return nil
}

// Start chạy vòng lặp tới khi ctx bị hủy. Panic trong một lượt được log lại và vòng lặp tiếp tục.
func (w *MonthlyArchiveWorker) Start(ctx context.Context) {
	log := logger.WithModule("worker.monthly_archive")
	log.WithField("archiveFirst", w.archiveFirst).Info("Starting monthly archive worker")

	for {
		now := w.clock.Now()
		log.WithField("next_run", clock.NextMonthStart(now).Format(time.RFC3339)).Debug("Waiting for next month")

		if !w.wait(ctx, clock.UntilNextMonth(now)) {
			log.Info("Monthly archive worker stopped")
			return
		}

		func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithField("panic", r).Error("Panic in monthly archive run, continuing with next month")
				}
			}()
			if err := w.RunOnce(ctx); err != nil {
				log.WithError(err).Error("Monthly archive run failed")
			}
		}()
	}
}
