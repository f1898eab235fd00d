// Package dashboardsvc tính số liệu tổng hợp từ collection customers.
// Không cache: mỗi lần gọi chạy lại các aggregation.
package dashboardsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	basesvc "github.com/rezvirumon/user-billing-server/internal/api/base/service"
	custmodels "github.com/rezvirumon/user-billing-server/internal/api/customer/models"
	"github.com/rezvirumon/user-billing-server/internal/api/dashboard/models"
	"github.com/rezvirumon/user-billing-server/internal/clock"
	"github.com/rezvirumon/user-billing-server/internal/database"
)

// DashboardService chạy các aggregation của dashboard
type DashboardService struct {
	*basesvc.BaseServiceMongoImpl[custmodels.Customer]
	clock clock.Clock
}

// NewDashboardService tạo DashboardService trên collection customers
func NewDashboardService(cols *database.Collections, clk clock.Clock) (*DashboardService, error) {
	base, err := basesvc.NewBaseServiceFromRegistry[custmodels.Customer](cols, database.ColCustomers)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &DashboardService{BaseServiceMongoImpl: base, clock: clk}, nil
}

type sumResult struct {
	Total float64 `bson:"total"`
}

// sum chạy pipeline một nhóm và trả về total, 0 nếu không có document nào
func (s *DashboardService) sum(ctx context.Context, pipeline mongo.Pipeline) (float64, error) {
	rows, err := basesvc.Aggregate[sumResult](ctx, s.Collection(), pipeline)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// Totals tính totalCollections, totalDues, totalAdvanced song song
func (s *DashboardService) Totals(ctx context.Context) (models.Totals, error) {
	var t models.Totals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t.TotalCollections, err = s.sum(gctx, TotalCollectionsPipeline())
		return err
	})
	g.Go(func() (err error) {
		t.TotalDues, err = s.sum(gctx, TotalDuesPipeline())
		return err
	})
	g.Go(func() (err error) {
		t.TotalAdvanced, err = s.sum(gctx, TotalAdvancedPipeline())
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Totals{}, err
	}
	return t, nil
}

// Stats tính toàn bộ số liệu GET /dashboard. Một aggregation lỗi thì cả lần gọi lỗi.
func (s *DashboardService) Stats(ctx context.Context) (models.Stats, error) {
	now := s.clock.Now()
	tz := MongoTimezone(now)
	col := s.Collection()

	var st models.Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.TotalCustomers, err = s.CountDocuments(gctx, bson.D{})
		return err
	})
	g.Go(func() error {
		t, err := s.Totals(gctx)
		st.TotalCollections, st.TotalDues, st.TotalAdvanced = t.TotalCollections, t.TotalDues, t.TotalAdvanced
		return err
	})
	g.Go(func() (err error) {
		st.TodaysCollection, err = s.sum(gctx, WindowCollectionPipeline(clock.DayWindow(now)))
		return err
	})
	g.Go(func() (err error) {
		st.ThisMonthsCollection, err = s.sum(gctx, WindowCollectionPipeline(clock.MonthWindow(now)))
		return err
	})
	g.Go(func() (err error) {
		st.CustomerDistribution, err = basesvc.Aggregate[models.AreaCount](gctx, col, DistributionPipeline())
		return err
	})
	g.Go(func() (err error) {
		st.TopPayers, err = basesvc.Aggregate[models.TopPayer](gctx, col, TopPayersPipeline(TopPayersLimit))
		return err
	})
	g.Go(func() (err error) {
		st.MonthlyRevenue, err = basesvc.Aggregate[models.MonthRevenue](gctx, col, MonthlyRevenuePipeline(tz))
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Stats{}, err
	}
	return st, nil
}

// ChartData trả về số liệu theo ngày của ChartDays ngày gần nhất
func (s *DashboardService) ChartData(ctx context.Context) ([]models.ChartPoint, error) {
	now := s.clock.Now()
	w := clock.TrailingDays(now, ChartDays)
	return basesvc.Aggregate[models.ChartPoint](ctx, s.Collection(), ChartPipeline(w.Start, MongoTimezone(now)))
}
