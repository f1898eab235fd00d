// Package events cung cấp bus sự kiện in-process cho các thay đổi dữ liệu
// billing. Service phát sự kiện sau khi ghi thành công, các handler
// (AMQP publisher, audit, ...) đăng ký qua Subscribe.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/rezvirumon/user-billing-server/internal/logger"
)

// Tên các sự kiện, đồng thời là routing key khi publish AMQP
const (
	CustomerCreated  = "customer.created"
	CustomerUpdated  = "customer.updated"
	CustomerDeleted  = "customer.deleted"
	PaymentAppended  = "payment.appended"
	CustomersCleared = "customers.cleared"
	ReportArchived   = "report.archived"
)

// Event mô tả một thay đổi dữ liệu. Document là bản ghi sau khi thay đổi
// (bản ghi bị xóa với delete, nil với clear).
type Event struct {
	Name       string      `json:"name"`
	Collection string      `json:"collection"`
	DocumentID string      `json:"documentId,omitempty"`
	Document   interface{} `json:"document,omitempty"`
	Count      int64       `json:"count,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// Handler xử lý một sự kiện
type Handler func(ctx context.Context, e Event)

// Bus phân phối sự kiện tới các handler. Bus nil là hợp lệ và bỏ qua mọi sự kiện.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	closed   bool
	wg       sync.WaitGroup
}

// NewBus tạo bus rỗng
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe đăng ký handler
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Emit phát sự kiện. Mỗi handler chạy trong goroutine riêng với context tách
// khỏi request, panic được recover để không ảnh hưởng handler khác.
// Sự kiện phát sau Close bị bỏ qua.
func (b *Bus) Emit(ctx context.Context, e Event) {
	if b == nil {
		return
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	// Giữ RLock tới khi wg.Add xong để Close không Wait song song với Add
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		logger.WithModule("events").WithField("event", e.Name).Warn("Event emitted after bus closed, dropped")
		return
	}

	hctx := context.WithoutCancel(ctx)
	for _, h := range b.handlers {
		b.wg.Add(1)
		go func(fn Handler) {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.WithModule("events").WithFields(map[string]interface{}{
						"panic": r,
						"event": e.Name,
					}).Error("Event handler panic recovered")
				}
			}()
			fn(hctx, e)
		}(h)
	}
}

// Close ngừng nhận sự kiện mới rồi đợi các handler đang chạy hoàn tất.
// Gọi nhiều lần vẫn an toàn.
func (b *Bus) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.wg.Wait()
}
