package dashboardsvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rezvirumon/user-billing-server/internal/api/customer/models"
	"github.com/rezvirumon/user-billing-server/internal/clock"
)

func stage(t *testing.T, p mongo.Pipeline, i int) (string, interface{}) {
	t.Helper()
	require.Greater(t, len(p), i)
	require.Len(t, p[i], 1)
	return p[i][0].Key, p[i][0].Value
}

func field(t *testing.T, d interface{}, key string) interface{} {
	t.Helper()
	doc, ok := d.(bson.D)
	require.True(t, ok, "expected bson.D, got %T", d)
	for _, e := range doc {
		if e.Key == key {
			return e.Value
		}
	}
	t.Fatalf("key %q not found in %v", key, doc)
	return nil
}

func TestTotalCollectionsPipeline(t *testing.T) {
	p := TotalCollectionsPipeline()
	k, v := stage(t, p, 0)
	assert.Equal(t, "$unwind", k)
	assert.Equal(t, "$payments", v)

	k, v = stage(t, p, 1)
	assert.Equal(t, "$group", k)
	assert.Nil(t, field(t, v, "_id"))
	assert.Equal(t, "$payments.amount", field(t, field(t, v, "total"), "$sum"))
}

func TestTotalDuesPipeline_OnlyUnpaid(t *testing.T) {
	p := TotalDuesPipeline()
	k, v := stage(t, p, 0)
	assert.Equal(t, "$match", k)
	assert.Equal(t, models.PaymentStatusUnpaid, field(t, v, "paymentStatus"))

	_, v = stage(t, p, 1)
	assert.Equal(t, "$due", field(t, field(t, v, "total"), "$sum"))
}

func TestTotalAdvancedPipeline_PerPayment(t *testing.T) {
	p := TotalAdvancedPipeline()
	require.Len(t, p, 3)
	k, _ := stage(t, p, 0)
	assert.Equal(t, "$unwind", k)

	_, v := stage(t, p, 1)
	gt := field(t, field(t, v, "$expr"), "$gt")
	assert.Equal(t, bson.A{"$payments.amount", "$bill"}, gt)

	_, v = stage(t, p, 2)
	sub := field(t, field(t, field(t, v, "total"), "$sum"), "$subtract")
	assert.Equal(t, bson.A{"$payments.amount", "$bill"}, sub)
}

func TestWindowCollectionPipeline(t *testing.T) {
	now := time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC)
	w := clock.DayWindow(now)
	p := WindowCollectionPipeline(w)

	_, v := stage(t, p, 1)
	rng := field(t, v, "payments.date")
	assert.Equal(t, w.Start, field(t, rng, "$gte"))
	assert.Equal(t, w.End, field(t, rng, "$lt"))
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), w.End)
}

func TestDistributionPipeline_SortedByArea(t *testing.T) {
	p := DistributionPipeline()
	_, v := stage(t, p, 0)
	assert.Equal(t, "$area", field(t, v, "_id"))

	k, v := stage(t, p, 1)
	assert.Equal(t, "$sort", k)
	assert.Equal(t, 1, field(t, v, "_id"))

	_, v = stage(t, p, 2)
	assert.Equal(t, "$_id", field(t, v, "area"))
}

func TestTopPayersPipeline(t *testing.T) {
	p := TopPayersPipeline(TopPayersLimit)
	_, v := stage(t, p, 0)
	assert.Equal(t, "$payments.amount", field(t, field(t, v, "totalPaid"), "$sum"))

	_, v = stage(t, p, 1)
	assert.Equal(t, -1, field(t, v, "totalPaid"))

	k, v := stage(t, p, 2)
	assert.Equal(t, "$limit", k)
	assert.Equal(t, int64(5), v)
}

func TestMonthlyRevenuePipeline_UsesTimezone(t *testing.T) {
	p := MonthlyRevenuePipeline("Asia/Dhaka")
	_, v := stage(t, p, 1)
	month := field(t, field(t, v, "_id"), "$month")
	assert.Equal(t, "$payments.date", field(t, month, "date"))
	assert.Equal(t, "Asia/Dhaka", field(t, month, "timezone"))

	_, v = stage(t, p, 2)
	assert.Equal(t, 1, field(t, v, "_id"))
}

func TestChartPipeline(t *testing.T) {
	since := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	p := ChartPipeline(since, "UTC")
	require.Len(t, p, 5)

	_, v := stage(t, p, 1)
	assert.Equal(t, since, field(t, field(t, v, "payments.date"), "$gte"))

	_, v = stage(t, p, 2)
	dts := field(t, field(t, v, "_id"), "$dateToString")
	assert.Equal(t, "%Y-%m-%d", field(t, dts, "format"))
	assert.Equal(t, "$bill", field(t, field(t, v, "bill"), "$first"))

	_, v = stage(t, p, 4)
	assert.Equal(t, "$total", field(t, v, "pay"))
	assert.Equal(t, bson.A{"$bill", "$total"}, field(t, field(t, v, "due"), "$subtract"))
}

func TestMongoTimezone(t *testing.T) {
	dhaka, err := time.LoadLocation("Asia/Dhaka")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Dhaka", MongoTimezone(time.Date(2024, 1, 1, 0, 0, 0, 0, dhaka)))
	assert.Equal(t, "UTC", MongoTimezone(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	local := MongoTimezone(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	if time.Local.String() == "Local" {
		assert.Regexp(t, `^[+-]\d\d:\d\d$`, local)
	}
}
