package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/rezvirumon/user-billing-server/internal/common"
)

// Pinger kiểm tra kết nối database (*mongo.Client thỏa mãn qua adapter)
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler xử lý GET / và GET /health
type SystemHandler struct {
	db Pinger
}

// NewSystemHandler tạo SystemHandler. db nil thì health báo not_initialized.
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// HandleRoot trả về text liveness
func (h *SystemHandler) HandleRoot(c fiber.Ctx) error {
	return TextResponse(c, common.StatusOK, common.MsgServiceRunning)
}

// HandleHealth kiểm tra API và MongoDB
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	if h.db == nil {
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
		return JSONResponse(c, common.StatusServiceUnavailable, healthData)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		healthData["database_error"] = err.Error()
		return JSONResponse(c, common.StatusServiceUnavailable, healthData)
	}

	services["database"] = "ok"
	return JSONResponse(c, common.StatusOK, healthData)
}
