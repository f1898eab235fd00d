package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

const filteredKey = "_filtered"

// AsyncHook ghi log bất đồng bộ vào các writers trong một goroutine riêng,
// Fire không bao giờ block request handling
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsyncHook tạo async hook với nhiều writers (bufferSize <= 0 dùng 1000)
func NewAsyncHook(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đưa entry vào channel. Channel đầy thì bỏ entry.
// Hook đã đóng thì ghi trực tiếp.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		h.write(entry)
		return nil
	}

	select {
	case h.entries <- entry:
	default:
	}
	return nil
}

func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Không dùng logger ở đây để tránh vòng lặp
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] %v\n", r)
				}
			}()
			h.write(entry)
		}()
	}
}

// write format entry và ghi vào tất cả writers, bỏ qua entry bị FilterHook đánh dấu
func (h *AsyncHook) write(entry *logrus.Entry) {
	if filtered, ok := entry.Data[filteredKey].(bool); ok && filtered {
		return
	}
	delete(entry.Data, filteredKey)

	var data []byte
	var err error
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		data, err = entry.Logger.Formatter.Format(entry)
	} else {
		var line string
		line, err = entry.String()
		data = []byte(line)
	}
	if err != nil {
		return
	}

	for _, w := range h.writers {
		_, _ = w.Write(data)
	}
}

// Close đóng hook và đợi ghi hết các entries còn trong buffer
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}
