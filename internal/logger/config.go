package logger

import (
	"os"
	"strings"

	"github.com/caarlos0/env"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	// trace, debug, info, warn, error, fatal
	Level string `env:"LOG_LEVEL"`
	// json, text
	Format string `env:"LOG_FORMAT"`
	// file, stdout, both
	Output string `env:"LOG_OUTPUT" envDefault:"stdout"`

	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"` // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"` // ngày
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`

	LogPath   string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile   string `env:"LOG_APP_FILE" envDefault:"app.log"`
	AuditFile string `env:"LOG_AUDIT_FILE" envDefault:"audit.log"`
	ErrorFile string `env:"LOG_ERROR_FILE" envDefault:"error.log"`

	// Bộ lọc, phân cách bởi dấu phẩy. Rỗng hoặc "*" = cho phép tất cả
	FilterModules string `env:"LOG_FILTER_MODULES"`
	FilterMethods string `env:"LOG_FILTER_METHODS"`
	FilterLevels  string `env:"LOG_FILTER_LEVELS"`

	// Kích thước buffer của async hook
	BufferSize int `env:"LOG_BUFFER_SIZE" envDefault:"1000"`
}

// DefaultConfig trả về cấu hình mặc định, điều chỉnh theo GO_ENV rồi
// override bằng biến môi trường LOG_*
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{}
	if err := env.Parse(cfg); err != nil {
		// Giá trị env sai định dạng: dùng mặc định cứng
		cfg = &LogConfig{
			Output:     "stdout",
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   true,
			LogPath:    "./logs",
			AppFile:    "app.log",
			AuditFile:  "audit.log",
			ErrorFile:  "error.log",
			BufferSize: 1000,
		}
	}

	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	if cfg.Level == "" {
		if goEnv == "development" {
			cfg.Level = "debug"
		} else {
			cfg.Level = "info"
		}
	}
	if cfg.Format == "" {
		if goEnv == "development" {
			cfg.Format = "text"
		} else {
			cfg.Format = "json"
		}
	}

	cfg.Level = strings.ToLower(cfg.Level)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Output = strings.ToLower(cfg.Output)
	return cfg
}
