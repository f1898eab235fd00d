// Package basehdl chứa các helper response dùng chung cho handler.
package basehdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/rezvirumon/user-billing-server/internal/common"
	"github.com/rezvirumon/user-billing-server/internal/logger"
)

// SafeHandlerWrapper chạy fn, panic được chuyển thành error để ErrorHandler của app xử lý
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("panic", r).Error("Handler panic recovered")
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return fn()
}

// JSONResponse ghi JSON với status code
func JSONResponse(c fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// TextResponse ghi text với status code
func TextResponse(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).SendString(msg)
}

// WriteError ghi lỗi dạng text với status theo common.Error. Lỗi không phân
// loại ghi 500 kèm message lỗi.
func WriteError(c fiber.Ctx, err error) error {
	status := common.StatusOf(err)
	if status >= common.StatusInternalServerError {
		logger.ErrorWithRequest(c).WithError(err).WithField("status", status).Error("Request failed")
	} else {
		logger.WithRequest(c).WithError(err).WithField("status", status).Debug("Request rejected")
	}
	return TextResponse(c, status, err.Error())
}

// BindBody parse body JSON vào out. Body sai định dạng hoặc sai kiểu trả về ErrInvalidFormat.
func BindBody(c fiber.Ctx, out interface{}) error {
	if err := c.Bind().Body(out); err != nil {
		return common.ErrInvalidFormat.WithMessage(err.Error())
	}
	return nil
}
