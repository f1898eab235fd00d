package customersvc

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rezvirumon/user-billing-server/internal/api/customer/dto"
	"github.com/rezvirumon/user-billing-server/internal/api/customer/models"
	"github.com/rezvirumon/user-billing-server/internal/common"
	"github.com/rezvirumon/user-billing-server/internal/utility"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestNewCustomer(t *testing.T) {
	v := utility.NewValidator()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	c, err := NewCustomer(v, dto.CustomerCreateInput{Name: "A", Mobile: "1", Area: "X", Email: "a@a.com", Bill: 100}, now)
	require.NoError(t, err)
	assert.Equal(t, 100.0, c.Due)
	assert.Equal(t, models.PaymentStatusUnpaid, c.PaymentStatus)
	assert.Equal(t, models.DefaultStatus, c.Status)
	assert.NotNil(t, c.Payments)
	assert.Empty(t, c.Payments)
	assert.Equal(t, int64(1), c.Version)
	assert.Equal(t, now, c.CreatedAt)
	assert.Nil(t, c.LastPayDate)

	c, err = NewCustomer(v, dto.CustomerCreateInput{Name: "B", Mobile: "2", Area: "Y", Email: "b@b.com", Status: "Inactive"}, now)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, c.PaymentStatus)
	assert.Equal(t, "Inactive", c.Status)
}

func TestNewCustomer_MissingFields(t *testing.T) {
	_, err := NewCustomer(utility.NewValidator(), dto.CustomerCreateInput{Name: "A"}, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Contains(t, err.Error(), "mobile is required")
	assert.Contains(t, err.Error(), "email is required")
}

func TestNewCustomer_BlankFieldsRejected(t *testing.T) {
	_, err := NewCustomer(utility.NewValidator(), dto.CustomerCreateInput{Name: "   ", Mobile: "\t", Area: "X", Email: "a@a.com"}, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "mobile is required")

	c, err := NewCustomer(utility.NewValidator(), dto.CustomerCreateInput{Name: "  A ", Mobile: "1", Area: " X", Email: "a@a.com "}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "A", c.Name)
	assert.Equal(t, "X", c.Area)
	assert.Equal(t, "a@a.com", c.Email)
}

func TestCustomerUpdateInput_NormalizeAndIsEmpty(t *testing.T) {
	assert.True(t, dto.CustomerUpdateInput{}.IsEmpty())

	in := dto.CustomerUpdateInput{Name: strPtr("  ")}.Normalize()
	assert.False(t, in.IsEmpty())
	assert.Equal(t, "", *in.Name)
	err := utility.ValidateStruct(utility.NewValidator(), in)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestApplyUpdate_PartialFields(t *testing.T) {
	c := models.Customer{Name: "A", Mobile: "1", Area: "X", Email: "a@a.com", Bill: 100, Status: "Active"}
	ApplyUpdate(&c, dto.CustomerUpdateInput{Bill: floatPtr(150), Status: strPtr("Suspended")})

	assert.Equal(t, "A", c.Name)
	assert.Equal(t, 150.0, c.Bill)
	assert.Equal(t, "Suspended", c.Status)
}

func TestSearchFilter(t *testing.T) {
	filter := SearchFilter("a.b")
	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 4)

	fields := []string{}
	for _, cond := range or {
		m := cond.(bson.M)
		for k, v := range m {
			fields = append(fields, k)
			re := v.(bson.M)["$regex"].(primitive.Regex)
			assert.Equal(t, regexp.QuoteMeta("a.b"), re.Pattern)
			assert.Equal(t, "i", re.Options)
		}
	}
	assert.ElementsMatch(t, []string{"name", "mobile", "area", "email"}, fields)
}

func TestVersionFilter(t *testing.T) {
	id := primitive.NewObjectID()

	f := VersionFilter(id, 3)
	assert.Equal(t, bson.M{"_id": id, "version": int64(3)}, f)

	legacy := VersionFilter(id, 0)
	assert.Equal(t, id, legacy["_id"])
	assert.Len(t, legacy["$or"], 2)
}

func TestBuildUpdate_AppendPayment(t *testing.T) {
	now := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	prev := models.Customer{Bill: 100, Payments: []models.Payment{{Amount: 100}}}
	next := prev
	next.Payments = append(append([]models.Payment(nil), prev.Payments...), models.Payment{Amount: 50, Date: now, Receiver: "bob"})
	next.LastPayDate = &now
	applyLedger(&next)

	update := BuildUpdate(prev, next)

	set := update["$set"].(bson.M)
	assert.Equal(t, 0.0, set["due"])
	assert.Equal(t, models.PaymentStatusAdvanced, set["paymentStatus"])
	assert.Equal(t, now, set["lastPayDate"])
	assert.Equal(t, bson.M{"version": 1}, update["$inc"])

	push := update["$push"].(bson.M)["payments"].(bson.M)["$each"].(bson.A)
	require.Len(t, push, 1)
	assert.Equal(t, 50.0, push[0].(models.Payment).Amount)
	assert.Equal(t, "bob", push[0].(models.Payment).Receiver)
}

func TestBuildUpdate_FieldUpdateHasNoPush(t *testing.T) {
	prev := models.Customer{Bill: 100, Payments: []models.Payment{{Amount: 40}}}
	next := prev
	next.Bill = 40
	applyLedger(&next)

	update := BuildUpdate(prev, next)
	_, hasPush := update["$push"]
	assert.False(t, hasPush)
	_, hasLastPay := update["$set"].(bson.M)["lastPayDate"]
	assert.False(t, hasLastPay)
	assert.Equal(t, models.PaymentStatusPaid, update["$set"].(bson.M)["paymentStatus"])
}

func TestAreaStrings(t *testing.T) {
	assert.Equal(t, []string{"North", "South", "7"}, AreaStrings([]interface{}{"North", nil, "South", int32(7)}))
	assert.Equal(t, []string{}, AreaStrings(nil))
}
