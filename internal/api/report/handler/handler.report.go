// Package reporthdl - Handler báo cáo tháng.
package reporthdl

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/rezvirumon/user-billing-server/internal/api/base/handler"
	"github.com/rezvirumon/user-billing-server/internal/api/report/models"
	"github.com/rezvirumon/user-billing-server/internal/common"
	"github.com/rezvirumon/user-billing-server/internal/logger"
)

// ReportStore là các thao tác handler cần từ repository báo cáo
type ReportStore interface {
	Archive(ctx context.Context) (models.MonthlyReport, error)
	List(ctx context.Context) ([]models.MonthlyReport, error)
	Get(ctx context.Context, year, month string) (models.MonthlyReport, error)
}

// ReportHandler xử lý API monthly-reports
type ReportHandler struct {
	ReportService ReportStore
}

// NewReportHandler tạo ReportHandler mới
func NewReportHandler(svc ReportStore) (*ReportHandler, error) {
	if svc == nil {
		return nil, errors.New("report service is nil")
	}
	return &ReportHandler{ReportService: svc}, nil
}

// HandleArchive xử lý POST /monthly-reports
func (h *ReportHandler) HandleArchive(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		report, err := h.ReportService.Archive(c)
		if err != nil {
			return basehdl.WriteError(c, err)
		}

		logger.LogAction(logger.ActionReportArchive, c, "monthly_report", report.ID.Hex(), map[string]interface{}{
			"year":  report.Year,
			"month": report.Month,
		})
		return basehdl.JSONResponse(c, common.StatusCreated, fiber.Map{
			"message": common.MsgReportArchived,
			"report":  report,
		})
	})
}

// HandleList xử lý GET /monthly-reports
func (h *ReportHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		reports, err := h.ReportService.List(c)
		if err != nil {
			return basehdl.WriteError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, reports)
	})
}

// HandleGet xử lý GET /monthly-reports/:year/:month
func (h *ReportHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		report, err := h.ReportService.Get(c, c.Params("year"), c.Params("month"))
		if errors.Is(err, common.ErrNotFound) {
			return basehdl.TextResponse(c, common.StatusNotFound, common.MsgReportMissing)
		}
		if err != nil {
			return basehdl.WriteError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, report)
	})
}
