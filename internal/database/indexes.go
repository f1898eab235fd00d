package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpecs trả về các index cần có theo từng collection
func IndexSpecs() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		ColCustomers: {
			// GET /areas, customerDistribution
			{Keys: bson.D{{Key: "area", Value: 1}}, Options: options.Index().SetName("customer_area")},
			// totalDues
			{Keys: bson.D{{Key: "paymentStatus", Value: 1}}, Options: options.Index().SetName("customer_payment_status")},
			// todaysCollection, thisMonthsCollection, chart-data
			{Keys: bson.D{{Key: "payments.date", Value: 1}}, Options: options.Index().SetName("customer_payment_date")},
		},
		ColMonthlyReports: {
			// GET /monthly-reports/:year/:month lấy bản mới nhất
			{
				Keys: bson.D{
					{Key: "year", Value: 1},
					{Key: "month", Value: 1},
					{Key: "createdAt", Value: -1},
				},
				Options: options.Index().SetName("monthly_report_period"),
			},
		},
	}
}

// CreateIndexes tạo các index, bỏ qua lỗi index đã tồn tại
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	for colName, models := range IndexSpecs() {
		col := db.Collection(colName)
		for _, m := range models {
			if _, err := col.Indexes().CreateOne(ctx, m); err != nil && !isIndexExistsError(err) {
				return err
			}
		}
	}
	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
