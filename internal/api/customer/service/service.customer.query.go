package customersvc

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rezvirumon/user-billing-server/internal/api/customer/dto"
	"github.com/rezvirumon/user-billing-server/internal/api/customer/models"
	"github.com/rezvirumon/user-billing-server/internal/utility"
)

// searchFields là các field được tìm theo chuỗi con
var searchFields = []string{"name", "mobile", "area", "email"}

// NewCustomer validate input và dựng bản ghi mới (chưa lưu): due = bill,
// payments rỗng, status mặc định Active. Chuỗi được trim trước khi validate.
func NewCustomer(v *validator.Validate, in dto.CustomerCreateInput, now time.Time) (models.Customer, error) {
	in = in.Normalize()
	if err := utility.ValidateStruct(v, in); err != nil {
		return models.Customer{}, err
	}

	status := in.Status
	if status == "" {
		status = models.DefaultStatus
	}

	c := models.Customer{
		Name:      in.Name,
		Mobile:    in.Mobile,
		Area:      in.Area,
		Email:     in.Email,
		Bill:      in.Bill,
		Payments:  []models.Payment{},
		Due:       in.Bill,
		Status:    status,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyLedger(&c)
	return c, nil
}

// ApplyUpdate ghi các field khác nil của input vào c
func ApplyUpdate(c *models.Customer, in dto.CustomerUpdateInput) {
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Mobile != nil {
		c.Mobile = *in.Mobile
	}
	if in.Area != nil {
		c.Area = *in.Area
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Bill != nil {
		c.Bill = *in.Bill
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
}

// SearchFilter tạo filter $or regex không phân biệt hoa thường trên các field tìm kiếm.
// query được escape nên luôn là tìm chuỗi con.
func SearchFilter(query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	or := make(bson.A, 0, len(searchFields))
	for _, f := range searchFields {
		or = append(or, bson.M{f: bson.M{"$regex": pattern}})
	}
	return bson.M{"$or": or}
}

// VersionFilter khớp đúng bản ghi đã đọc. Bản ghi cũ chưa có field version
// được xem là version 0.
func VersionFilter(id primitive.ObjectID, version int64) bson.M {
	if version == 0 {
		return bson.M{
			"_id": id,
			"$or": bson.A{
				bson.M{"version": 0},
				bson.M{"version": bson.M{"$exists": false}},
			},
		}
	}
	return bson.M{"_id": id, "version": version}
}

// BuildUpdate tạo update document từ trạng thái trước và sau. Payments mới
// được $push để giữ tính append-only, version luôn được tăng.
func BuildUpdate(prev, next models.Customer) bson.M {
	set := bson.M{
		"name":          next.Name,
		"mobile":        next.Mobile,
		"area":          next.Area,
		"email":         next.Email,
		"bill":          next.Bill,
		"status":        next.Status,
		"due":           next.Due,
		"paymentStatus": next.PaymentStatus,
		"updatedAt":     next.UpdatedAt,
	}
	if next.LastPayDate != nil {
		set["lastPayDate"] = *next.LastPayDate
	}

	update := bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	}

	if len(next.Payments) > len(prev.Payments) {
		added := next.Payments[len(prev.Payments):]
		each := make(bson.A, 0, len(added))
		for _, p := range added {
			each = append(each, p)
		}
		update["$push"] = bson.M{"payments": bson.M{"$each": each}}
	}
	return update
}

// AreaStrings chuyển kết quả Distinct sang []string, bỏ giá trị null
func AreaStrings(values []interface{}) []string {
	areas := make([]string, 0, len(values))
	for _, v := range values {
		switch a := v.(type) {
		case nil:
			continue
		case string:
			areas = append(areas, a)
		default:
			areas = append(areas, fmt.Sprint(a))
		}
	}
	return areas
}
