// Package router đăng ký route báo cáo tháng.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	reporthdl "github.com/rezvirumon/user-billing-server/internal/api/report/handler"
	apirouter "github.com/rezvirumon/user-billing-server/internal/api/router"
)

// Register trả về RegisterFunc cho domain report
func Register(svc reporthdl.ReportStore) apirouter.RegisterFunc {
	return func(root fiber.Router) error {
		h, err := reporthdl.NewReportHandler(svc)
		if err != nil {
			return fmt.Errorf("create report handler: %w", err)
		}
		return apirouter.RegisterRoutes(root, "/monthly-reports", []apirouter.Route{
			{Method: fiber.MethodPost, Path: "/", Handler: h.HandleArchive},
			{Method: fiber.MethodGet, Path: "/", Handler: h.HandleList},
			{Method: fiber.MethodGet, Path: "/:year/:month", Handler: h.HandleGet},
		})
	}
}
