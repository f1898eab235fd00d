// Package clock cung cấp nguồn thời gian có thể thay thế và các ranh giới
// lịch (ngày, tháng) theo múi giờ cấu hình.
package clock

import (
	"sync"
	"time"
)

// Clock là nguồn thời gian hiện tại
type Clock interface {
	Now() time.Time
}

// SystemClock dùng đồng hồ hệ thống trong một múi giờ
type SystemClock struct {
	Loc *time.Location
}

// Now trả về thời gian hiện tại theo Loc (nil = time.Local)
func (c SystemClock) Now() time.Time {
	if c.Loc == nil {
		return time.Now()
	}
	return time.Now().In(c.Loc)
}

// FixedClock trả về một thời điểm cố định, có thể dịch chuyển. Dùng cho test.
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixedClock tạo FixedClock tại t
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

// Now trả về thời điểm hiện tại của clock
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Set đặt lại thời điểm
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// Advance dịch chuyển thời điểm thêm d
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
