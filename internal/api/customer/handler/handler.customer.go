// Package customerhdl - Handler khách hàng và thanh toán.
package customerhdl

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/rezvirumon/user-billing-server/internal/api/base/handler"
	"github.com/rezvirumon/user-billing-server/internal/api/customer/dto"
	"github.com/rezvirumon/user-billing-server/internal/api/customer/models"
	"github.com/rezvirumon/user-billing-server/internal/common"
	"github.com/rezvirumon/user-billing-server/internal/logger"
)

// CustomerStore là các thao tác handler cần từ repository khách hàng
type CustomerStore interface {
	Create(ctx context.Context, in dto.CustomerCreateInput) (models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id string) (models.Customer, error)
	Search(ctx context.Context, query string) ([]models.Customer, error)
	Update(ctx context.Context, id string, in dto.CustomerUpdateInput) (models.Customer, error)
	Delete(ctx context.Context, id string) (models.Customer, error)
	AppendPayment(ctx context.Context, id string, in dto.PaymentInput) (models.Customer, error)
	Areas(ctx context.Context) ([]string, error)
}

// CustomerHandler xử lý API khách hàng
type CustomerHandler struct {
	CustomerService CustomerStore
}

// NewCustomerHandler tạo CustomerHandler mới
func NewCustomerHandler(svc CustomerStore) (*CustomerHandler, error) {
	if svc == nil {
		return nil, errors.New("customer service is nil")
	}
	return &CustomerHandler{CustomerService: svc}, nil
}

// writeError đổi NotFound thành "Customer not found", các lỗi khác giữ message
func writeError(c fiber.Ctx, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return basehdl.TextResponse(c, common.StatusNotFound, common.MsgCustomerMissing)
	}
	return basehdl.WriteError(c, err)
}

// HandleCreate xử lý POST /customers
func (h *CustomerHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input dto.CustomerCreateInput
		if err := basehdl.BindBody(c, &input); err != nil {
			return writeError(c, err)
		}

		created, err := h.CustomerService.Create(c, input)
		if err != nil {
			return writeError(c, err)
		}

		logger.LogAction(logger.ActionCustomerCreate, c, "customer", created.ID.Hex(), map[string]interface{}{
			"area": created.Area,
			"bill": created.Bill,
		})
		return basehdl.JSONResponse(c, common.StatusCreated, created)
	})
}

// HandleList xử lý GET /customers
func (h *CustomerHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		list, err := h.CustomerService.List(c)
		if err != nil {
			return writeError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, list)
	})
}

// HandleGet xử lý GET /customers/:id
func (h *CustomerHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		customer, err := h.CustomerService.Get(c, c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, customer)
	})
}

// HandleUpdate xử lý PUT /customers/:id
func (h *CustomerHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input dto.CustomerUpdateInput
		if err := basehdl.BindBody(c, &input); err != nil {
			return writeError(c, err)
		}

		id := c.Params("id")
		updated, err := h.CustomerService.Update(c, id, input)
		if err != nil {
			return writeError(c, err)
		}

		logger.LogAction(logger.ActionCustomerUpdate, c, "customer", id, map[string]interface{}{
			"bill":          updated.Bill,
			"due":           updated.Due,
			"paymentStatus": updated.PaymentStatus,
		})
		return basehdl.JSONResponse(c, common.StatusOK, updated)
	})
}

// HandleDelete xử lý DELETE /customers/:id
func (h *CustomerHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id := c.Params("id")
		deleted, err := h.CustomerService.Delete(c, id)
		if err != nil {
			return writeError(c, err)
		}

		logger.LogAction(logger.ActionCustomerDelete, c, "customer", id, nil)
		return basehdl.JSONResponse(c, common.StatusOK, deleted)
	})
}

// HandleAppendPayment xử lý PUT /billing/:id. Body: payment, receiver (tùy chọn).
func (h *CustomerHandler) HandleAppendPayment(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input dto.PaymentInput
		if err := basehdl.BindBody(c, &input); err != nil {
			return writeError(c, err)
		}

		id := c.Params("id")
		updated, err := h.CustomerService.AppendPayment(c, id, input)
		if err != nil {
			return writeError(c, err)
		}

		logger.LogAction(logger.ActionPaymentAppend, c, "customer", id, map[string]interface{}{
			"amount":        *input.Payment,
			"receiver":      input.Receiver,
			"paymentStatus": updated.PaymentStatus,
		})
		return basehdl.JSONResponse(c, common.StatusOK, updated)
	})
}

// HandleSearch xử lý GET /search?query=
func (h *CustomerHandler) HandleSearch(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		list, err := h.CustomerService.Search(c, c.Query("query"))
		if err != nil {
			return writeError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, list)
	})
}

// HandleAreas xử lý GET /areas
func (h *CustomerHandler) HandleAreas(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		areas, err := h.CustomerService.Areas(c)
		if err != nil {
			return writeError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, areas)
	})
}
