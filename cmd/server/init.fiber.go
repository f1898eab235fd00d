package main

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"

	"github.com/rezvirumon/user-billing-server/config"
	basehdl "github.com/rezvirumon/user-billing-server/internal/api/base/handler"
	apirouter "github.com/rezvirumon/user-billing-server/internal/api/router"
	"github.com/rezvirumon/user-billing-server/internal/common"
	"github.com/rezvirumon/user-billing-server/internal/logger"
)

// errorHandler: fiber.Error có mã khác 500 giữ mã và message dạng text,
// còn lại (panic, lỗi không phân loại) trả về 500 JSON chung
func errorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code != fiber.StatusInternalServerError {
		logger.WithRequest(c).WithError(err).WithField("status", fe.Code).Debug("Request rejected")
		return c.Status(fe.Code).SendString(fe.Message)
	}

	logger.ErrorWithRequest(c).WithError(err).Error("Unhandled request error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": common.ErrInternal.Message})
}

// systemRoutes đăng ký GET / và GET /health
func systemRoutes(db basehdl.Pinger) apirouter.RegisterFunc {
	return func(root fiber.Router) error {
		h := basehdl.NewSystemHandler(db)
		return apirouter.RegisterRoutes(root, "", []apirouter.Route{
			{Method: fiber.MethodGet, Path: "/", Handler: h.HandleRoot},
			{Method: fiber.MethodGet, Path: "/health", Handler: h.HandleHealth},
		})
	}
}

// InitFiberApp tạo app với middleware stack rồi đăng ký routes. Route không khớp trả về 404 text.
func InitFiberApp(cfg *config.Configuration, regs ...apirouter.RegisterFunc) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:      "User Billing Server",
		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: errorHandler,
	})

	// 1. Request ID
	app.Use(requestid.New(requestid.Config{
		Header:    logger.RequestIDHeader,
		Generator: uuid.NewString,
	}))

	// 2. CORS, đặt trước các middleware khác để xử lý preflight
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", logger.RequestIDHeader},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", logger.RequestIDHeader},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate limit theo IP
	log := logger.GetAppLogger()
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests, please try again later")
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" || c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 5. Recover, panic được chuyển cho errorHandler
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.ErrorWithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	if err := apirouter.SetupRoutes(app, regs...); err != nil {
		return nil, err
	}

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString(common.MsgRouteMissing)
	})

	return app, nil
}
