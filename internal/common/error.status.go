package common

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	StatusOK                  = 200 // Thành công
	StatusCreated             = 201 // Tạo mới thành công
	StatusBadRequest          = 400 // Yêu cầu không hợp lệ
	StatusNotFound            = 404 // Không tìm thấy tài nguyên
	StatusConflict            = 409 // Xung đột dữ liệu
	StatusTooManyRequests     = 429 // Quá nhiều yêu cầu
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages dùng trên HTTP surface
const (
	MsgServiceRunning  = "Customer Service Running"
	MsgCustomerMissing = "Customer not found"
	MsgReportMissing   = "Monthly report not found"
	MsgRouteMissing    = "404 Page Not Found"
	MsgSomethingWrong  = "Something went wrong!"
	MsgReportArchived  = "Monthly report saved successfully"
	MsgQueryRequired   = "Search query is required"
	MsgInvalidPeriod   = "Invalid year or month"
	MsgUpdateConflict  = "Customer was modified concurrently, please retry"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: VAL_001)
	Category    string // Phân loại lỗi (ví dụ: Validation)
	SubCategory string // Phân loại con (ví dụ: Input)
	Description string // Mô tả chi tiết
}

var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	ErrCodeValidationRequired = ErrorCode{
		Code:        "VAL_003",
		Category:    "Validation",
		SubCategory: "Required",
		Description: "Thiếu trường bắt buộc",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi cơ sở dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessState = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "State",
		Description: "Lỗi trạng thái nghiệp vụ",
	}

	ErrCodeBusinessDuplicate = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Duplicate",
		Description: "Dữ liệu đã tồn tại",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is so sánh theo mã lỗi, để các lỗi được tạo lại với message khác
// (ví dụ WithMessage) vẫn khớp với sentinel gốc khi dùng errors.Is
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if !errors.As(target, &targetErr) {
		return false
	}
	return e.Code.Code == targetErr.Code.Code && e.StatusCode == targetErr.StatusCode
}

// WithMessage trả về bản sao lỗi với message mới, giữ nguyên mã và status
func (e *Error) WithMessage(message string) *Error {
	cp := *e
	cp.Message = message
	return &cp
}

// WithDetails trả về bản sao lỗi kèm details
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors. Mỗi sentinel một mã riêng để errors.Is không nhầm lẫn.
var (
	ErrValidation    = NewError(ErrCodeValidationInput, "Invalid input", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Invalid data format", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationRequired, "Required field is missing", StatusBadRequest, nil)

	ErrNotFound  = NewError(ErrCodeDatabaseQuery, "Document not found", StatusNotFound, nil)
	ErrDuplicate = NewError(ErrCodeBusinessDuplicate, "Document already exists", StatusConflict, nil)
	ErrConflict  = NewError(ErrCodeBusinessState, MsgUpdateConflict, StatusConflict, nil)
	ErrInternal  = NewError(ErrCodeInternalServer, MsgSomethingWrong, StatusInternalServerError, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống.
// Các lỗi không nhận diện được giữ nguyên message của driver với status 500.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Đã là lỗi hệ thống thì giữ nguyên
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate.WithDetails(err.Error())
	}

	// Timeout và lỗi mạng vẫn là 500, giữ message của driver
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return NewError(ErrCodeDatabaseConnection, err.Error(), StatusInternalServerError, nil)
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return NewError(ErrCodeDatabaseQuery, cmdErr.Message, StatusInternalServerError, fmt.Sprintf("code=%d name=%s", cmdErr.Code, cmdErr.Name))
	}

	return NewError(ErrCodeDatabase, err.Error(), StatusInternalServerError, nil)
}

// StatusOf trả về HTTP status tương ứng với lỗi, mặc định 500
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return StatusInternalServerError
}
