// Package dashboardhdl - Handler GET /dashboard và GET /dashboard/chart-data.
package dashboardhdl

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/rezvirumon/user-billing-server/internal/api/base/handler"
	"github.com/rezvirumon/user-billing-server/internal/api/dashboard/models"
	"github.com/rezvirumon/user-billing-server/internal/common"
)

// DashboardReader là nguồn số liệu dashboard
type DashboardReader interface {
	Stats(ctx context.Context) (models.Stats, error)
	ChartData(ctx context.Context) ([]models.ChartPoint, error)
}

// DashboardHandler xử lý API dashboard
type DashboardHandler struct {
	DashboardService DashboardReader
}

// NewDashboardHandler tạo DashboardHandler mới
func NewDashboardHandler(svc DashboardReader) (*DashboardHandler, error) {
	if svc == nil {
		return nil, errors.New("dashboard service is nil")
	}
	return &DashboardHandler{DashboardService: svc}, nil
}

// HandleStats xử lý GET /dashboard
func (h *DashboardHandler) HandleStats(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		stats, err := h.DashboardService.Stats(c)
		if err != nil {
			return basehdl.WriteError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, stats)
	})
}

// HandleChartData xử lý GET /dashboard/chart-data
func (h *DashboardHandler) HandleChartData(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		points, err := h.DashboardService.ChartData(c)
		if err != nil {
			return basehdl.WriteError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, points)
	})
}
