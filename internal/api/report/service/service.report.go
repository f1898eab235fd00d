// Package reportsvc lưu và đọc snapshot báo cáo tháng.
package reportsvc

import (
	"context"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/rezvirumon/user-billing-server/internal/api/base/service"
	dashmodels "github.com/rezvirumon/user-billing-server/internal/api/dashboard/models"
	"github.com/rezvirumon/user-billing-server/internal/api/report/models"
	"github.com/rezvirumon/user-billing-server/internal/clock"
	"github.com/rezvirumon/user-billing-server/internal/common"
	"github.com/rezvirumon/user-billing-server/internal/database"
	"github.com/rezvirumon/user-billing-server/internal/events"
)

// TotalsSource tính các tổng hiện tại, cùng cách dashboard tính
type TotalsSource interface {
	Totals(ctx context.Context) (dashmodels.Totals, error)
}

// ReportService là repository của collection monthly_reports
type ReportService struct {
	*basesvc.BaseServiceMongoImpl[models.MonthlyReport]
	totals TotalsSource
	clock  clock.Clock
	bus    *events.Bus
}

// NewReportService tạo ReportService. bus có thể nil.
func NewReportService(cols *database.Collections, totals TotalsSource, clk clock.Clock, bus *events.Bus) (*ReportService, error) {
	base, err := basesvc.NewBaseServiceFromRegistry[models.MonthlyReport](cols, database.ColMonthlyReports)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &ReportService{BaseServiceMongoImpl: base, totals: totals, clock: clk, bus: bus}, nil
}

// NewSnapshot gắn tổng với năm/tháng của now
func NewSnapshot(t dashmodels.Totals, now time.Time) models.MonthlyReport {
	return models.MonthlyReport{
		Year:             now.Year(),
		Month:            int(now.Month()),
		TotalCollections: t.TotalCollections,
		TotalDues:        t.TotalDues,
		TotalAdvanced:    t.TotalAdvanced,
		CreatedAt:        now,
	}
}

// Archive tính lại tổng và lưu snapshot mới cho tháng hiện tại
func (s *ReportService) Archive(ctx context.Context) (models.MonthlyReport, error) {
	t, err := s.totals.Totals(ctx)
	if err != nil {
		return models.MonthlyReport{}, err
	}

	created, err := s.InsertOne(ctx, NewSnapshot(t, s.clock.Now()))
	if err != nil {
		return models.MonthlyReport{}, err
	}

	s.bus.Emit(ctx, events.Event{
		Name:       events.ReportArchived,
		Collection: database.ColMonthlyReports,
		DocumentID: created.ID.Hex(),
		Document:   created,
		OccurredAt: created.CreatedAt,
	})
	return created, nil
}

// List trả về mọi snapshot theo year, month, createdAt tăng dần
func (s *ReportService) List(ctx context.Context) ([]models.MonthlyReport, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "year", Value: 1},
		{Key: "month", Value: 1},
		{Key: "createdAt", Value: 1},
	})
	return s.Find(ctx, nil, opts)
}

// Get trả về snapshot mới nhất của year/month
func (s *ReportService) Get(ctx context.Context, year, month string) (models.MonthlyReport, error) {
	y, m, err := ParsePeriod(year, month)
	if err != nil {
		return models.MonthlyReport{}, err
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindOne(ctx, bson.M{"year": y, "month": m}, opts)
}

// ParsePeriod parse year/month từ path. Giá trị không phải số hoặc tháng ngoài 1-12 là lỗi 400.
func ParsePeriod(year, month string) (int, int, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0, 0, common.ErrValidation.WithMessage(common.MsgInvalidPeriod)
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, common.ErrValidation.WithMessage(common.MsgInvalidPeriod)
	}
	return y, m, nil
}
