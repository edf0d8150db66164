package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRejections(t *testing.T) {
	before := testutil.ToFloat64(PipelineRejectedRecords.WithLabelValues("raw_events", "missing_user_id"))

	RecordRejections("raw_events", map[string]int{"missing_user_id": 3, "missing_firm_id": 0})

	after := testutil.ToFloat64(PipelineRejectedRecords.WithLabelValues("raw_events", "missing_user_id"))
	assert.Equal(t, 3.0, after-before)
}

func TestRecordRun_OnlySuccessUpdatesRowGauges(t *testing.T) {
	RecordRun("success", time.Second, map[string]int{"engagement_records": 12})
	assert.Equal(t, 12.0, testutil.ToFloat64(PipelineDerivedRows.WithLabelValues("engagement_records")))

	RecordRun("error", time.Second, map[string]int{"engagement_records": 99})
	assert.Equal(t, 12.0, testutil.ToFloat64(PipelineDerivedRows.WithLabelValues("engagement_records")))
}

func TestFiberMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(FiberMiddleware())
	app.Get("/reports/:name", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/reports/:name", "204"))

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/cohorts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/reports/:name", "204"))
	assert.Equal(t, 1.0, after-before)
}
