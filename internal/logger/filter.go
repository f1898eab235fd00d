package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// FilterHook đánh dấu các entry không thuộc module/method/level được phép.
// AsyncHook bỏ qua entry có field "_filtered".
type FilterHook struct {
	modules map[string]bool
	methods map[string]bool
	levels  map[string]bool
}

// NewFilterHook tạo filter hook mới từ cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	return &FilterHook{
		modules: parseFilter(cfg.FilterModules),
		methods: parseFilter(cfg.FilterMethods),
		levels:  parseFilter(cfg.FilterLevels),
	}
}

// parseFilter trả về nil khi cho phép tất cả
func parseFilter(s string) map[string]bool {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return nil
	}
	result := make(map[string]bool)
	for _, v := range strings.Split(s, ",") {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			result[v] = true
		}
	}
	return result
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry bị lọc. Entry thiếu field module/method thì không bị lọc theo field đó.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if !allowed(h.levels, entry.Level.String()) ||
		!allowedField(h.modules, entry.Data["module"]) ||
		!allowedField(h.methods, entry.Data["method"]) {
		entry.Data[filteredKey] = true
	}
	return nil
}

func allowed(set map[string]bool, v string) bool {
	return set == nil || set[strings.ToLower(v)]
}

func allowedField(set map[string]bool, v interface{}) bool {
	s, ok := v.(string)
	if !ok || s == "" {
		return true
	}
	return allowed(set, s)
}
