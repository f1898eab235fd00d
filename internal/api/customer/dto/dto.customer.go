// Package dto chứa các input body cho API customer và billing.
package dto

import "strings"

// CustomerCreateInput là body của POST /customers
type CustomerCreateInput struct {
	Name   string  `json:"name" validate:"required"`
	Mobile string  `json:"mobile" validate:"required"`
	Area   string  `json:"area" validate:"required"`
	Email  string  `json:"email" validate:"required"`
	Bill   float64 `json:"bill" validate:"gte=0"`
	Status string  `json:"status"`
}

// Normalize cắt khoảng trắng hai đầu, để "   " bị required từ chối
func (in CustomerCreateInput) Normalize() CustomerCreateInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.Area = strings.TrimSpace(in.Area)
	in.Email = strings.TrimSpace(in.Email)
	in.Status = strings.TrimSpace(in.Status)
	return in
}

// CustomerUpdateInput là body của PUT /customers/:id. Field nil giữ nguyên giá trị cũ.
type CustomerUpdateInput struct {
	Name   *string  `json:"name" validate:"omitempty,min=1"`
	Mobile *string  `json:"mobile" validate:"omitempty,min=1"`
	Area   *string  `json:"area" validate:"omitempty,min=1"`
	Email  *string  `json:"email" validate:"omitempty,min=1"`
	Bill   *float64 `json:"bill" validate:"omitempty,gte=0"`
	Status *string  `json:"status"`
}

// IsEmpty trả về true khi body không có field nào
func (in CustomerUpdateInput) IsEmpty() bool {
	return in.Name == nil && in.Mobile == nil && in.Area == nil &&
		in.Email == nil && in.Bill == nil && in.Status == nil
}

// Normalize cắt khoảng trắng các field chuỗi có mặt trong body
func (in CustomerUpdateInput) Normalize() CustomerUpdateInput {
	in.Name = trimPtr(in.Name)
	in.Mobile = trimPtr(in.Mobile)
	in.Area = trimPtr(in.Area)
	in.Email = trimPtr(in.Email)
	in.Status = trimPtr(in.Status)
	return in
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// PaymentInput là body của PUT /billing/:id
type PaymentInput struct {
	Payment  *float64 `json:"payment" validate:"required,gt=0"`
	Receiver string   `json:"receiver"`
}
