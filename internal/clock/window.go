package clock

import "time"

// Window là khoảng nửa mở [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// StartOfDay trả về 00:00 của ngày chứa now, theo múi giờ của now
func StartOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// StartOfMonth trả về 00:00 ngày 1 của tháng chứa now
func StartOfMonth(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
}

// DayWindow trả về [đầu ngày, đầu ngày kế tiếp).
// Dùng AddDate để đúng cả ngày chuyển giờ mùa hè.
func DayWindow(now time.Time) Window {
	start := StartOfDay(now)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// MonthWindow trả về [đầu tháng, đầu tháng kế tiếp)
func MonthWindow(now time.Time) Window {
	start := StartOfMonth(now)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// TrailingDays trả về [đầu ngày của (now - days), now]. End là now cộng 1ns
// để giữ dạng nửa mở.
func TrailingDays(now time.Time, days int) Window {
	start := StartOfDay(now.AddDate(0, 0, -days))
	return Window{Start: start, End: now.Add(time.Nanosecond)}
}

// NextMonthStart trả về đầu tháng kế tiếp sau now
func NextMonthStart(now time.Time) time.Time {
	return MonthWindow(now).End
}

// UntilNextMonth trả về thời gian chờ tới đầu tháng kế tiếp
func UntilNextMonth(now time.Time) time.Duration {
	return NextMonthStart(now).Sub(now)
}
