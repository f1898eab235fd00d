package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// loggers lưu các logger instances theo tên
	loggers   = make(map[string]*logrus.Logger)
	hooks     []*AsyncHook
	loggersMu sync.Mutex

	config *LogConfig
)

// Init khởi tạo hệ thống logging với cấu hình (nil = DefaultConfig)
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if cfg.Output == "file" || cfg.Output == "both" {
		if err := os.MkdirAll(cfg.LogPath, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}

	loggersMu.Lock()
	config = cfg
	loggersMu.Unlock()
	return nil
}

// GetLogger trả về logger theo tên (app, audit, error)
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		config = DefaultConfig()
	}

	if l, ok := loggers[name]; ok {
		return l
	}

	l := createLogger(name, config)
	loggers[name] = l
	return l
}

// createLogger tạo logger mới: FilterHook trước, AsyncHook sau, output gốc bị discard
func createLogger(name string, cfg *LogConfig) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				s := strings.Split(f.Function, ".")
				return s[len(s)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
			},
		})
	}

	var writers []io.Writer
	if cfg.Output == "file" || cfg.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   logFilePath(name, cfg),
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}
	if cfg.Output == "stdout" || cfg.Output == "both" || len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	l.AddHook(NewFilterHook(cfg))
	asyncHook := NewAsyncHook(writers, cfg.BufferSize)
	l.AddHook(asyncHook)
	hooks = append(hooks, asyncHook)
	l.SetOutput(io.Discard)

	l.SetReportCaller(true)
	return l
}

// logFilePath trả về đường dẫn file log cho logger name
func logFilePath(name string, cfg *LogConfig) string {
	var filename string
	switch name {
	case "app":
		filename = cfg.AppFile
	case "audit":
		filename = cfg.AuditFile
	case "error":
		filename = cfg.ErrorFile
	default:
		filename = fmt.Sprintf("%s.log", name)
	}
	return filepath.Join(cfg.LogPath, filename)
}

// Shutdown flush và đóng tất cả async hooks
func Shutdown() {
	loggersMu.Lock()
	pending := hooks
	hooks = nil
	loggers = make(map[string]*logrus.Logger)
	loggersMu.Unlock()

	for _, h := range pending {
		_ = h.Close()
	}
}

// GetAppLogger trả về logger chính của ứng dụng
func GetAppLogger() *logrus.Logger {
	return GetLogger("app")
}

// GetAuditLogger trả về logger cho audit
func GetAuditLogger() *logrus.Logger {
	return GetLogger("audit")
}

// GetErrorLogger trả về logger cho errors
func GetErrorLogger() *logrus.Logger {
	return GetLogger("error")
}
