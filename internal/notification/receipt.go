// Package notification gửi biên nhận thanh toán qua email (SMTP) khi có
// sự kiện payment.appended trên bus.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/rezvirumon/user-billing-server/internal/api/customer/models"
	"github.com/rezvirumon/user-billing-server/internal/events"
	"github.com/rezvirumon/user-billing-server/internal/logger"
)

// ReceiptSubject là tiêu đề email biên nhận
const ReceiptSubject = "Payment received"

// Sender là phần của *gomail.Dialer mà ReceiptMailer sử dụng
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPConfig là thông tin máy chủ SMTP
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// ReceiptMailer dựng và gửi email biên nhận cho lần thanh toán mới nhất
type ReceiptMailer struct {
	sender Sender
	from   string
}

// NewReceiptMailer tạo mailer dùng gomail.Dialer
func NewReceiptMailer(cfg SMTPConfig) *ReceiptMailer {
	return &ReceiptMailer{
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// BuildReceipt dựng email cho payment cuối cùng của khách hàng
func (m *ReceiptMailer) BuildReceipt(c models.Customer) (*gomail.Message, error) {
	recipient := strings.TrimSpace(c.Email)
	if recipient == "" {
		return nil, errors.New("customer has no email")
	}
	if len(c.Payments) == 0 {
		return nil, errors.New("customer has no payments")
	}
	last := c.Payments[len(c.Payments)-1]

	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\n\n", c.Name)
	fmt.Fprintf(&body, "We received your payment of %.2f on %s.\n", last.Amount, last.Date.Format(time.DateOnly))
	if last.Receiver != "" {
		fmt.Fprintf(&body, "Received by: %s\n", last.Receiver)
	}
	fmt.Fprintf(&body, "\nMonthly bill: %.2f\n", c.Bill)
	fmt.Fprintf(&body, "Due: %.2f\n", c.Due)
	fmt.Fprintf(&body, "Status: %s\n", c.PaymentStatus)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", ReceiptSubject)
	msg.SetBody("text/plain", body.String())
	return msg, nil
}

// Handler trả về events.Handler gửi biên nhận cho payment.appended, các sự kiện khác bỏ qua.
// Gửi lỗi chỉ log, thanh toán đã được ghi.
func (m *ReceiptMailer) Handler() events.Handler {
	log := logger.WithModule("notification")
	return func(_ context.Context, e events.Event) {
		if e.Name != events.PaymentAppended {
			return
		}
		c, ok := e.Document.(models.Customer)
		if !ok {
			log.WithField("document_id", e.DocumentID).Warn("Payment event without customer document")
			return
		}

		msg, err := m.BuildReceipt(c)
		if err != nil {
			log.WithError(err).WithField("document_id", e.DocumentID).Warn("Payment receipt skipped")
			return
		}
		if err := m.sender.DialAndSend(msg); err != nil {
			log.WithError(err).WithField("document_id", e.DocumentID).Error("Failed to send payment receipt")
			return
		}
		log.WithField("document_id", e.DocumentID).Info("Payment receipt sent")
	}
}
