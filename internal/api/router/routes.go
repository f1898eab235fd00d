// Package router ghép các domain router vào app. Mọi route nằm ở root, không có tiền tố version.
package router

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// RegisterFunc đăng ký route của một domain lên root
type RegisterFunc func(root fiber.Router) error

// Route mô tả một route của domain
type Route struct {
	Method  string
	Path    string
	Handler fiber.Handler
}

// RegisterRoutes đăng ký danh sách route dưới prefix. Method không hỗ trợ trả về lỗi.
func RegisterRoutes(root fiber.Router, prefix string, routes []Route) error {
	for _, rt := range routes {
		if err := RegisterRoute(root, prefix, rt.Method, rt.Path, rt.Handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterRoute đăng ký một route. Path "/" dưới prefix khác rỗng được gộp thành prefix.
func RegisterRoute(root fiber.Router, prefix, method, path string, handler fiber.Handler) error {
	if handler == nil {
		return fmt.Errorf("route %s %s%s: handler is nil", method, prefix, path)
	}
	full := joinPath(prefix, path)

	switch strings.ToUpper(method) {
	case fiber.MethodGet:
		root.Get(full, handler)
	case fiber.MethodPost:
		root.Post(full, handler)
	case fiber.MethodPut:
		root.Put(full, handler)
	case fiber.MethodDelete:
		root.Delete(full, handler)
	default:
		return fmt.Errorf("route %s %s: unsupported method", method, full)
	}
	return nil
}

func joinPath(prefix, path string) string {
	prefix = strings.TrimRight(prefix, "/")
	if path == "" || path == "/" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return prefix + path
}

// SetupRoutes chạy lần lượt các RegisterFunc trên root của app
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	for _, reg := range regs {
		if err := reg(app); err != nil {
			return err
		}
	}
	return nil
}
