package dashboardsvc

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rezvirumon/user-billing-server/internal/api/customer/models"
	"github.com/rezvirumon/user-billing-server/internal/clock"
)

const (
	// TopPayersLimit là số khách hàng trong topPayers
	TopPayersLimit = 5
	// ChartDays là số ngày lùi lại của chart-data
	ChartDays = 30
)

var unwindPayments = bson.D{{Key: "$unwind", Value: "$payments"}}

func sumInto(expr interface{}) bson.D {
	return bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: nil},
		{Key: "total", Value: bson.D{{Key: "$sum", Value: expr}}},
	}}}
}

// TotalCollectionsPipeline cộng mọi payments.amount
func TotalCollectionsPipeline() mongo.Pipeline {
	return mongo.Pipeline{unwindPayments, sumInto("$payments.amount")}
}

// TotalDuesPipeline cộng due của khách hàng Unpaid
func TotalDuesPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "paymentStatus", Value: models.PaymentStatusUnpaid}}}},
		sumInto("$due"),
	}
}

// TotalAdvancedPipeline cộng (amount - bill) của từng payment lớn hơn bill.
// So sánh theo từng payment, không theo tổng đã trả.
func TotalAdvancedPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		unwindPayments,
		{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
			{Key: "$gt", Value: bson.A{"$payments.amount", "$bill"}},
		}}}}},
		sumInto(bson.D{{Key: "$subtract", Value: bson.A{"$payments.amount", "$bill"}}}),
	}
}

// WindowCollectionPipeline cộng payments có date trong [w.Start, w.End)
func WindowCollectionPipeline(w clock.Window) mongo.Pipeline {
	return mongo.Pipeline{
		unwindPayments,
		{{Key: "$match", Value: bson.D{{Key: "payments.date", Value: bson.D{
			{Key: "$gte", Value: w.Start},
			{Key: "$lt", Value: w.End},
		}}}}},
		sumInto("$payments.amount"),
	}
}

// DistributionPipeline đếm khách hàng theo area, sắp theo area
func DistributionPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$area"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "area", Value: "$_id"},
			{Key: "count", Value: 1},
		}}},
	}
}

// TopPayersPipeline lấy limit khách hàng có tổng payments.amount cao nhất
func TopPayersPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "totalPaid", Value: bson.D{{Key: "$sum", Value: "$payments.amount"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalPaid", Value: -1}}}},
		{{Key: "$limit", Value: int64(limit)}},
	}
}

// MonthlyRevenuePipeline cộng payments theo tháng trong năm (bỏ qua năm), theo múi giờ tz
func MonthlyRevenuePipeline(tz string) mongo.Pipeline {
	return mongo.Pipeline{
		unwindPayments,
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$month", Value: bson.D{
				{Key: "date", Value: "$payments.date"},
				{Key: "timezone", Value: tz},
			}}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$payments.amount"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "month", Value: "$_id"},
			{Key: "total", Value: 1},
		}}},
	}
}

// ChartPipeline gom payments từ since theo ngày YYYY-MM-DD. due = bill của
// khách hàng đầu tiên trong nhóm trừ tổng payments của nhóm.
func ChartPipeline(since time.Time, tz string) mongo.Pipeline {
	return mongo.Pipeline{
		unwindPayments,
		{{Key: "$match", Value: bson.D{{Key: "payments.date", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$payments.date"},
				{Key: "timezone", Value: tz},
			}}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$payments.amount"}}},
			{Key: "bill", Value: bson.D{{Key: "$first", Value: "$bill"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "date", Value: "$_id"},
			{Key: "total", Value: 1},
			{Key: "pay", Value: "$total"},
			{Key: "due", Value: bson.D{{Key: "$subtract", Value: bson.A{"$bill", "$total"}}}},
		}}},
	}
}

// MongoTimezone trả về tên múi giờ MongoDB hiểu được. "Local" không phải tên
// IANA nên được đổi thành offset "+hh:mm" tại thời điểm now.
func MongoTimezone(now time.Time) string {
	name := now.Location().String()
	if name == "" || name == "Local" {
		return now.Format("-07:00")
	}
	return name
}
