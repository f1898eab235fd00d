package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MonthlyReport là snapshot tổng hợp của một tháng. Không sửa sau khi tạo;
// một tháng có thể có nhiều snapshot.
type MonthlyReport struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Year             int                `json:"year" bson:"year"`
	Month            int                `json:"month" bson:"month"`
	TotalCollections float64            `json:"totalCollections" bson:"totalCollections"`
	TotalDues        float64            `json:"totalDues" bson:"totalDues"`
	TotalAdvanced    float64            `json:"totalAdvanced" bson:"totalAdvanced"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
}
