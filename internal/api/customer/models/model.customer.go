package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus là trạng thái thanh toán dẫn xuất từ bill và payments
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusAdvanced PaymentStatus = "Advanced"
	PaymentStatusUnpaid   PaymentStatus = "Unpaid"
)

// DefaultStatus gán cho khách hàng khi tạo mà không có status
const DefaultStatus = "Active"

// Payment là một lần thanh toán, chỉ được append
type Payment struct {
	Amount   float64   `json:"amount" bson:"amount"`
	Date     time.Time `json:"date" bson:"date"`
	Receiver string    `json:"receiver,omitempty" bson:"receiver,omitempty"`
}

// Customer là bản ghi khách hàng trong collection customers.
// Due, LastPayDate, PaymentStatus là dẫn xuất, chỉ được service tính lại.
type Customer struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Mobile        string             `json:"mobile" bson:"mobile"`
	Area          string             `json:"area" bson:"area"`
	Email         string             `json:"email" bson:"email"`
	Bill          float64            `json:"bill" bson:"bill"`
	Payments      []Payment          `json:"payments" bson:"payments"`
	Due           float64            `json:"due" bson:"due"`
	LastPayDate   *time.Time         `json:"lastPayDate,omitempty" bson:"lastPayDate,omitempty"`
	PaymentStatus PaymentStatus      `json:"paymentStatus" bson:"paymentStatus"`
	Status        string             `json:"status" bson:"status"`
	Version       int64              `json:"version" bson:"version"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
