// Package router đăng ký route dashboard.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	dashboardhdl "github.com/rezvirumon/user-billing-server/internal/api/dashboard/handler"
	apirouter "github.com/rezvirumon/user-billing-server/internal/api/router"
)

// Register trả về RegisterFunc cho domain dashboard
func Register(svc dashboardhdl.DashboardReader) apirouter.RegisterFunc {
	return func(root fiber.Router) error {
		h, err := dashboardhdl.NewDashboardHandler(svc)
		if err != nil {
			return fmt.Errorf("create dashboard handler: %w", err)
		}
		return apirouter.RegisterRoutes(root, "/dashboard", []apirouter.Route{
			{Method: fiber.MethodGet, Path: "/", Handler: h.HandleStats},
			{Method: fiber.MethodGet, Path: "/chart-data", Handler: h.HandleChartData},
		})
	}
}
