package customersvc

import (
	"github.com/rezvirumon/user-billing-server/internal/api/customer/models"
)

// TotalPaid cộng tất cả amount của payments
func TotalPaid(payments []models.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// RecomputeStatus tính due và paymentStatus từ bill và payments.
// Trả thừa thì due = 0 và status Advanced, phần thừa không lưu vào due.
func RecomputeStatus(bill float64, payments []models.Payment) (float64, models.PaymentStatus) {
	due := bill - TotalPaid(payments)
	switch {
	case due == 0:
		return 0, models.PaymentStatusPaid
	case due < 0:
		return 0, models.PaymentStatusAdvanced
	default:
		return due, models.PaymentStatusUnpaid
	}
}

// applyLedger gán lại các field dẫn xuất của c
func applyLedger(c *models.Customer) {
	c.Due, c.PaymentStatus = RecomputeStatus(c.Bill, c.Payments)
}
