// Package router đăng ký route khách hàng, thanh toán, tìm kiếm và khu vực.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	customerhdl "github.com/rezvirumon/user-billing-server/internal/api/customer/handler"
	apirouter "github.com/rezvirumon/user-billing-server/internal/api/router"
)

// Register trả về RegisterFunc cho domain customer
func Register(svc customerhdl.CustomerStore) apirouter.RegisterFunc {
	return func(root fiber.Router) error {
		h, err := customerhdl.NewCustomerHandler(svc)
		if err != nil {
			return fmt.Errorf("create customer handler: %w", err)
		}

		if err := apirouter.RegisterRoutes(root, "/customers", []apirouter.Route{
			{Method: fiber.MethodPost, Path: "/", Handler: h.HandleCreate},
			{Method: fiber.MethodGet, Path: "/", Handler: h.HandleList},
			{Method: fiber.MethodGet, Path: "/:id", Handler: h.HandleGet},
			{Method: fiber.MethodPut, Path: "/:id", Handler: h.HandleUpdate},
			{Method: fiber.MethodDelete, Path: "/:id", Handler: h.HandleDelete},
		}); err != nil {
			return err
		}

		return apirouter.RegisterRoutes(root, "", []apirouter.Route{
			{Method: fiber.MethodPut, Path: "/billing/:id", Handler: h.HandleAppendPayment},
			{Method: fiber.MethodGet, Path: "/search", Handler: h.HandleSearch},
			{Method: fiber.MethodGet, Path: "/areas", Handler: h.HandleAreas},
		})
	}
}
