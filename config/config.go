package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":5000"`                           // Địa chỉ server
	Port                  string `env:"PORT"`                                                 // Nếu có, ghi đè ADDRESS thành ":<PORT>"
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`                      // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"user-billing-rumon"`       // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`      // Các origins được phép (phân cách bởi dấu phẩy)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`             // Cho phép gửi credentials
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"false"`                // Bật/tắt rate limiting
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`                      // Số request tối đa trong window
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`                    // Thời gian window (giây)
	Timezone              string `env:"TIMEZONE" envDefault:"Local"`                          // Múi giờ dùng cho ranh giới ngày/tháng

	// Job archive-then-clear hàng tháng
	MonthlyClear_Enabled      bool `env:"MONTHLY_CLEAR_ENABLED" envDefault:"false"`
	MonthlyArchiveBeforeClear bool `env:"MONTHLY_ARCHIVE_BEFORE_CLEAR" envDefault:"true"`

	// AMQP (tùy chọn - rỗng thì không publish sự kiện)
	AMQP_URL      string `env:"AMQP_URL"`
	AMQP_Exchange string `env:"AMQP_EXCHANGE" envDefault:"billing"`

	// SMTP (tùy chọn - có SMTP_HOST thì gửi biên nhận thanh toán qua email)
	SMTP_Host     string `env:"SMTP_HOST"`
	SMTP_Port     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTP_Username string `env:"SMTP_USERNAME"`
	SMTP_Password string `env:"SMTP_PASSWORD"`
	SMTP_From     string `env:"SMTP_FROM"`
}

// SMTPEnabled trả về true khi đủ host và địa chỉ gửi
func (c *Configuration) SMTPEnabled() bool {
	return strings.TrimSpace(c.SMTP_Host) != "" && strings.TrimSpace(c.SMTP_From) != ""
}

// ListenAddress trả về địa chỉ listen, PORT được ưu tiên hơn ADDRESS
func (c *Configuration) ListenAddress() string {
	if c.Port != "" {
		return ":" + strings.TrimPrefix(c.Port, ":")
	}
	return c.Address
}

// Location trả về múi giờ đã cấu hình, mặc định time.Local
func (c *Configuration) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q không hợp lệ: %w", c.Timezone, err)
	}
	return loc, nil
}

// CORSOrigins tách CORS_ORIGINS thành danh sách đã trim
func (c *Configuration) CORSOrigins() []string {
	if strings.TrimSpace(c.CORS_Origins) == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, origin := range strings.Split(c.CORS_Origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Đi lên từng cấp tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// loadEnvFiles nạp các file env nếu tồn tại. Thiếu file không phải lỗi,
// biến môi trường của process vẫn được dùng.
func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = append(files, envPath)
		}
		files = append(files, ".env")
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("không thể load file env tại %s: %w", f, err)
		}
	}
	return nil
}

// NewConfig đọc cấu hình từ các file env (nếu có) rồi parse biến môi trường
func NewConfig(files ...string) (*Configuration, error) {
	if err := loadEnvFiles(files...); err != nil {
		return nil, err
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("lỗi khi parse config: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
