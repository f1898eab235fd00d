// Package customersvc chứa repository khách hàng: CRUD, tìm kiếm, append payment
// và xóa hàng loạt. Mọi thay đổi bill/payments đều tính lại due/paymentStatus.
package customersvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rezvirumon/user-billing-server/internal/api/customer/dto"
	"github.com/rezvirumon/user-billing-server/internal/api/customer/models"
	basesvc "github.com/rezvirumon/user-billing-server/internal/api/base/service"
	"github.com/rezvirumon/user-billing-server/internal/clock"
	"github.com/rezvirumon/user-billing-server/internal/common"
	"github.com/rezvirumon/user-billing-server/internal/database"
	"github.com/rezvirumon/user-billing-server/internal/events"
	"github.com/rezvirumon/user-billing-server/internal/logger"
	"github.com/rezvirumon/user-billing-server/internal/utility"
)

// DefaultMaxRetries là số lần thử lại compare-and-swap khi bản ghi bị sửa đồng thời
const DefaultMaxRetries = 5

// CustomerService là repository của collection customers
type CustomerService struct {
	*basesvc.BaseServiceMongoImpl[models.Customer]
	clock      clock.Clock
	bus        *events.Bus
	validate   *validator.Validate
	maxRetries int
}

// NewCustomerService tạo CustomerService từ registry collections. bus có thể nil.
func NewCustomerService(cols *database.Collections, clk clock.Clock, bus *events.Bus) (*CustomerService, error) {
	base, err := basesvc.NewBaseServiceFromRegistry[models.Customer](cols, database.ColCustomers)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &CustomerService{
		BaseServiceMongoImpl: base,
		clock:                clk,
		bus:                  bus,
		validate:             utility.NewValidator(),
		maxRetries:           DefaultMaxRetries,
	}, nil
}

// Create validate input rồi tạo khách hàng với due = bill
func (s *CustomerService) Create(ctx context.Context, in dto.CustomerCreateInput) (models.Customer, error) {
	c, err := NewCustomer(s.validate, in, s.clock.Now())
	if err != nil {
		return models.Customer{}, err
	}

	created, err := s.InsertOne(ctx, c)
	if err != nil {
		return models.Customer{}, err
	}

	s.emit(ctx, events.CustomerCreated, created)
	return created, nil
}

// List trả về tất cả khách hàng
func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.Find(ctx, nil, nil)
}

// Get trả về khách hàng theo id
func (s *CustomerService) Get(ctx context.Context, id string) (models.Customer, error) {
	oid, err := basesvc.ParseObjectID(id)
	if err != nil {
		return models.Customer{}, err
	}
	return s.FindOneById(ctx, oid)
}

// Search tìm khách hàng có name/mobile/area/email chứa query, không phân biệt hoa thường
func (s *CustomerService) Search(ctx context.Context, query string) ([]models.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, common.ErrValidation.WithMessage(common.MsgQueryRequired)
	}
	return s.Find(ctx, SearchFilter(query), nil)
}

// Update ghi các field có trong input rồi tính lại due/paymentStatus theo bill mới.
// Body rỗng không ghi gì, trả về bản ghi hiện tại.
func (s *CustomerService) Update(ctx context.Context, id string, in dto.CustomerUpdateInput) (models.Customer, error) {
	in = in.Normalize()
	if err := utility.ValidateStruct(s.validate, in); err != nil {
		return models.Customer{}, err
	}
	if in.IsEmpty() {
		return s.Get(ctx, id)
	}

	updated, err := s.mutate(ctx, id, func(c *models.Customer) {
		ApplyUpdate(c, in)
	})
	if err != nil {
		return models.Customer{}, err
	}

	s.emit(ctx, events.CustomerUpdated, updated)
	return updated, nil
}

// AppendPayment thêm một payment với date = now, cập nhật lastPayDate và tính lại trạng thái
func (s *CustomerService) AppendPayment(ctx context.Context, id string, in dto.PaymentInput) (models.Customer, error) {
	if err := utility.ValidateStruct(s.validate, in); err != nil {
		return models.Customer{}, err
	}

	updated, err := s.mutate(ctx, id, func(c *models.Customer) {
		now := s.clock.Now()
		c.Payments = append(c.Payments, models.Payment{
			Amount:   *in.Payment,
			Date:     now,
			Receiver: in.Receiver,
		})
		c.LastPayDate = &now
	})
	if err != nil {
		return models.Customer{}, err
	}

	s.emit(ctx, events.PaymentAppended, updated)
	return updated, nil
}

// Delete xóa khách hàng và trả về bản ghi đã xóa
func (s *CustomerService) Delete(ctx context.Context, id string) (models.Customer, error) {
	oid, err := basesvc.ParseObjectID(id)
	if err != nil {
		return models.Customer{}, err
	}

	deleted, err := s.FindOneAndDelete(ctx, bson.M{"_id": oid})
	if err != nil {
		return models.Customer{}, err
	}

	s.emit(ctx, events.CustomerDeleted, deleted)
	return deleted, nil
}

// Areas trả về các giá trị area khác nhau
func (s *CustomerService) Areas(ctx context.Context) ([]string, error) {
	values, err := s.Distinct(ctx, "area", nil)
	if err != nil {
		return nil, err
	}
	return AreaStrings(values), nil
}

// ClearAll xóa toàn bộ khách hàng, trả về số bản ghi đã xóa
func (s *CustomerService) ClearAll(ctx context.Context) (int64, error) {
	count, err := s.DeleteMany(ctx, nil)
	if err != nil {
		return 0, err
	}

	s.bus.Emit(ctx, events.Event{
		Name:       events.CustomersCleared,
		Collection: database.ColCustomers,
		Count:      count,
		OccurredAt: s.clock.Now(),
	})
	return count, nil
}

// mutate đọc bản ghi, áp dụng change trong bộ nhớ, tính lại ledger rồi ghi bằng
// compare-and-swap trên version. Thua race thì đọc lại và thử lại tối đa maxRetries lần.
func (s *CustomerService) mutate(ctx context.Context, id string, change func(c *models.Customer)) (models.Customer, error) {
	oid, err := basesvc.ParseObjectID(id)
	if err != nil {
		return models.Customer{}, err
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		current, err := s.FindOneById(ctx, oid)
		if err != nil {
			return models.Customer{}, err
		}

		next := current
		next.Payments = append([]models.Payment(nil), current.Payments...)
		change(&next)
		applyLedger(&next)
		next.UpdatedAt = s.clock.Now()

		updated, err := s.FindOneAndUpdate(ctx, VersionFilter(oid, current.Version), BuildUpdate(current, next))
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return models.Customer{}, err
		}

		logger.WithModule("customer").WithFields(map[string]interface{}{
			"id":      id,
			"version": current.Version,
			"attempt": attempt,
		}).Debug("Customer version changed during update, retrying")
	}

	return models.Customer{}, fmt.Errorf("update customer %s: %w", id, common.ErrConflict)
}

func (s *CustomerService) emit(ctx context.Context, name string, c models.Customer) {
	s.bus.Emit(ctx, events.Event{
		Name:       name,
		Collection: database.ColCustomers,
		DocumentID: c.ID.Hex(),
		Document:   c,
		OccurredAt: s.clock.Now(),
	})
}
