package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader là header chứa request ID
const RequestIDHeader = "X-Request-ID"

// RequestID lấy request ID do middleware requestid gán, fallback sang header
func RequestID(c fiber.Ctx) string {
	if rid := requestid.FromContext(c); rid != "" {
		return rid
	}
	if rid := c.GetRespHeader(RequestIDHeader); rid != "" {
		return rid
	}
	return c.Get(RequestIDHeader)
}

func requestFields(c fiber.Ctx) logrus.Fields {
	fields := logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	}
	if rid := RequestID(c); rid != "" {
		fields["request_id"] = rid
	}
	return fields
}

// WithRequest trả về logger entry kèm thông tin request
func WithRequest(c fiber.Ctx) *logrus.Entry {
	return GetAppLogger().WithFields(requestFields(c))
}

// ErrorWithRequest trả về entry của logger error kèm thông tin request
func ErrorWithRequest(c fiber.Ctx) *logrus.Entry {
	return GetErrorLogger().WithFields(requestFields(c))
}

// WithModule trả về logger entry của một module (customer, dashboard, report, worker...)
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}
