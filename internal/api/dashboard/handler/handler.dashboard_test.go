package dashboardhdl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezvirumon/user-billing-server/internal/api/dashboard/models"
)

type fakeReader struct {
	stats  models.Stats
	points []models.ChartPoint
	err    error
}

func (f *fakeReader) Stats(context.Context) (models.Stats, error) { return f.stats, f.err }

func (f *fakeReader) ChartData(context.Context) ([]models.ChartPoint, error) {
	return f.points, f.err
}

func newApp(t *testing.T, r DashboardReader) *fiber.App {
	t.Helper()
	h, err := NewDashboardHandler(r)
	require.NoError(t, err)
	app := fiber.New()
	app.Get("/dashboard", h.HandleStats)
	app.Get("/dashboard/chart-data", h.HandleChartData)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHandleStats(t *testing.T) {
	app := newApp(t, &fakeReader{stats: models.Stats{
		TotalCustomers:       2,
		TotalCollections:     150,
		TotalDues:            50,
		CustomerDistribution: []models.AreaCount{{Area: "North", Count: 2}},
		TopPayers:            []models.TopPayer{},
		MonthlyRevenue:       []models.MonthRevenue{{Month: 6, Total: 150}},
	}})

	status, body := get(t, app, "/dashboard")
	require.Equal(t, http.StatusOK, status)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &got))
	for _, key := range []string{"totalCustomers", "totalCollections", "totalDues", "totalAdvanced",
		"todaysCollection", "thisMonthsCollection", "customerDistribution", "topPayers", "monthlyRevenue"} {
		assert.Contains(t, got, key)
	}
	assert.Equal(t, 2.0, got["totalCustomers"])
	assert.Equal(t, 150.0, got["totalCollections"])
}

func TestHandleChartData(t *testing.T) {
	app := newApp(t, &fakeReader{points: []models.ChartPoint{{Date: "2024-06-01", Total: 40, Pay: 40, Due: 60}}})

	status, body := get(t, app, "/dashboard/chart-data")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"date":"2024-06-01","total":40,"pay":40,"due":60}]`, string(body))
}

func TestHandleStats_Failure(t *testing.T) {
	app := newApp(t, &fakeReader{err: errors.New("aggregate failed")})

	status, body := get(t, app, "/dashboard")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "aggregate failed", string(body))
}

func TestNewDashboardHandler_Nil(t *testing.T) {
	_, err := NewDashboardHandler(nil)
	assert.Error(t, err)
}
