package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Các action audit
const (
	ActionCustomerCreate = "customer_create"
	ActionCustomerUpdate = "customer_update"
	ActionCustomerDelete = "customer_delete"
	ActionPaymentAppend  = "payment_append"
	ActionReportArchive  = "report_archive"
	ActionCustomersClear = "customers_clear"
)

// AuditAction mô tả một hành động làm thay đổi dữ liệu
type AuditAction struct {
	Action       string                 `json:"action"`
	ResourceID   string                 `json:"resource_id"`
	ResourceType string                 `json:"resource_type"`
	IP           string                 `json:"ip"`
	UserAgent    string                 `json:"user_agent"`
	RequestID    string                 `json:"request_id"`
	Details      map[string]interface{} `json:"details"`
	Timestamp    time.Time              `json:"timestamp"`
}

// LogAction ghi audit cho một request. c có thể nil khi gọi từ worker.
func LogAction(action string, c fiber.Ctx, resourceType, resourceID string, details map[string]interface{}) {
	audit := AuditAction{
		Action:       action,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		Details:      details,
		Timestamp:    time.Now(),
	}
	if audit.Details == nil {
		audit.Details = map[string]interface{}{}
	}
	if c != nil {
		audit.IP = c.IP()
		audit.UserAgent = c.Get("User-Agent")
		audit.RequestID = RequestID(c)
	}

	GetAuditLogger().WithFields(logrus.Fields{
		"action":        audit.Action,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"request_id":    audit.RequestID,
		"details":       audit.Details,
	}).Info("Audit log")
}
