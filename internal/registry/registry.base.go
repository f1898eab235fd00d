// Package registry cung cấp registry generic, thread-safe, dùng để giữ các
// collection MongoDB đã đăng ký và truyền vào các service.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rezvirumon/user-billing-server/internal/common"
)

// Registry quản lý các item theo tên, an toàn khi dùng đồng thời
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo registry mới
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký item, ghi đè nếu đã tồn tại.
// isNew = false khi ghi đè item cũ.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// MustGet lấy item, trả về lỗi NotFound nếu chưa đăng ký
func (r *Registry[T]) MustGet(name string) (T, error) {
	item, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%q chưa được đăng ký: %w", name, common.ErrNotFound)
	}
	return item, nil
}

// Names trả về danh sách tên đã đăng ký, đã sắp xếp
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
