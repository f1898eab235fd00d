package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Totals là ba tổng dùng chung cho dashboard và báo cáo tháng
type Totals struct {
	TotalCollections float64 `json:"totalCollections"`
	TotalDues        float64 `json:"totalDues"`
	TotalAdvanced    float64 `json:"totalAdvanced"`
}

// AreaCount là số khách hàng trong một khu vực
type AreaCount struct {
	Area  string `json:"area" bson:"area"`
	Count int64  `json:"count" bson:"count"`
}

// TopPayer là khách hàng có tổng thanh toán cao
type TopPayer struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	TotalPaid float64            `json:"totalPaid" bson:"totalPaid"`
}

// MonthRevenue là doanh thu của một tháng trong năm (1-12), gộp mọi năm
type MonthRevenue struct {
	Month int     `json:"month" bson:"month"`
	Total float64 `json:"total" bson:"total"`
}

// Stats là kết quả GET /dashboard
type Stats struct {
	TotalCustomers       int64          `json:"totalCustomers"`
	TotalCollections     float64        `json:"totalCollections"`
	TotalDues            float64        `json:"totalDues"`
	TotalAdvanced        float64        `json:"totalAdvanced"`
	TodaysCollection     float64        `json:"todaysCollection"`
	ThisMonthsCollection float64        `json:"thisMonthsCollection"`
	CustomerDistribution []AreaCount    `json:"customerDistribution"`
	TopPayers            []TopPayer     `json:"topPayers"`
	MonthlyRevenue       []MonthRevenue `json:"monthlyRevenue"`
}

// ChartPoint là số liệu một ngày của chart-data. Total và Pay luôn bằng nhau.
type ChartPoint struct {
	Date  string  `json:"date" bson:"date"`
	Total float64 `json:"total" bson:"total"`
	Pay   float64 `json:"pay" bson:"pay"`
	Due   float64 `json:"due" bson:"due"`
}
