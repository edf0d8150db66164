package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"usage-metrics-service/internal/reports/core/domain"
	"usage-metrics-service/internal/reports/core/usecase"
)

type GetReportsUseCase interface {
	Engagement(ctx context.Context, in usecase.GetReportInput) (domain.Page[domain.EngagementRow], error)
	Cohorts(ctx context.Context, in usecase.GetReportInput) (domain.Page[domain.CohortRow], error)
	FirmHealth(ctx context.Context, in usecase.GetReportInput) (domain.Page[domain.FirmHealthRow], error)
	EventPerformance(ctx context.Context, in usecase.GetReportInput) (domain.Page[domain.PerformanceRow], error)
}

type ReportsHandler struct {
	uc GetReportsUseCase
}

func NewReportsHandler(uc GetReportsUseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

// GetEngagement godoc
// @Summary Monthly user engagement
// @Description Returns engagement rows ordered by month (newest first) and query count
// @Tags Reports
// @Produce json
// @Param month query string false "Activity month (YYYY-MM)"
// @Param firm_id query string false "Firm id"
// @Param user_title query string false "User title"
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} PageResponse[EngagementRowResponse]
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/engagement [get]
func (h *ReportsHandler) GetEngagement(c *fiber.Ctx) error {
	in, err := parseInput(c)
	if err != nil {
		return badQuery(c, err)
	}

	page, err := h.uc.Engagement(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapPage(page, func(r domain.EngagementRow) EngagementRowResponse {
		return EngagementRowResponse{
			UserID:           r.UserID,
			FirmID:           r.FirmID,
			UserTitle:        r.UserTitle,
			Month:            r.Month.UTC().Format(monthLayout),
			QueryCount:       r.QueryCount,
			ActiveDays:       r.ActiveDays,
			AvgFeedbackScore: r.AvgFeedbackScore,
			SatisfactionRate: r.SatisfactionRate,
			EngagementLevel:  r.EngagementLevel,
		}
	}))
}

// GetCohorts godoc
// @Summary Cohort retention
// @Description Returns cohort rows by signup month, title and months since signup
// @Tags Reports
// @Produce json
// @Param month query string false "Cohort month (YYYY-MM)"
// @Param user_title query string false "User title"
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} PageResponse[CohortRowResponse]
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/cohorts [get]
func (h *ReportsHandler) GetCohorts(c *fiber.Ctx) error {
	in, err := parseInput(c)
	if err != nil {
		return badQuery(c, err)
	}

	page, err := h.uc.Cohorts(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapPage(page, func(r domain.CohortRow) CohortRowResponse {
		return CohortRowResponse{
			CohortMonth:          r.CohortMonth.UTC().Format(monthLayout),
			UserTitle:            r.UserTitle,
			MonthsSinceSignup:    r.MonthsSinceSignup,
			TotalUsers:           r.TotalUsers,
			RetainedUsers:        r.RetainedUsers,
			PowerUsers:           r.PowerUsers,
			RetentionRatePct:     r.RetentionRatePct,
			PowerUserRatePct:     r.PowerUserRatePct,
			CohortSize:           r.CohortSize,
			RetentionPerformance: r.RetentionPerformance,
		}
	}))
}

// GetFirmHealth godoc
// @Summary Firm health scores
// @Description Returns firm health rows ordered by month (newest first) and score
// @Tags Reports
// @Produce json
// @Param month query string false "Activity month (YYYY-MM)"
// @Param firm_id query string false "Firm id"
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} PageResponse[FirmHealthRowResponse]
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/firm-health [get]
func (h *ReportsHandler) GetFirmHealth(c *fiber.Ctx) error {
	in, err := parseInput(c)
	if err != nil {
		return badQuery(c, err)
	}

	page, err := h.uc.FirmHealth(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapPage(page, func(r domain.FirmHealthRow) FirmHealthRowResponse {
		return FirmHealthRowResponse{
			FirmID:             r.FirmID,
			Month:              r.Month.UTC().Format(monthLayout),
			SizeCategory:       r.SizeCategory,
			ARRCategory:        r.ARRCategory,
			ActiveUsers:        r.ActiveUsers,
			PowerUsers:         r.PowerUsers,
			TotalQueries:       r.TotalQueries,
			AvgFeedbackScore:   r.AvgFeedbackScore,
			UserEngagementRate: r.UserEngagementRate,
			HealthScore:        r.HealthScore,
			HealthStatus:       r.HealthStatus,
		}
	}))
}

// GetEventPerformance godoc
// @Summary Event performance by grain
// @Description Returns daily, weekly and monthly event performance rows
// @Tags Reports
// @Produce json
// @Param grain query string false "daily | weekly | monthly"
// @Param month query string false "Restrict periods to one month (YYYY-MM)"
// @Param event_type query string false "ASSISTANT | VAULT | WORKFLOW | OTHER"
// @Param user_title query string false "User title"
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} PageResponse[PerformanceRowResponse]
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/event-performance [get]
func (h *ReportsHandler) GetEventPerformance(c *fiber.Ctx) error {
	in, err := parseInput(c)
	if err != nil {
		return badQuery(c, err)
	}

	page, err := h.uc.EventPerformance(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapPage(page, func(r domain.PerformanceRow) PerformanceRowResponse {
		return PerformanceRowResponse{
			TimeGrain:             r.TimeGrain,
			TimePeriod:            r.TimePeriod.UTC().Format(dayLayout),
			EventType:             r.EventType,
			UserTitle:             r.UserTitle,
			UserSegment:           r.UserSegment,
			TotalEvents:           r.TotalEvents,
			UniqueUsers:           r.UniqueUsers,
			AvgFeedbackScore:      r.AvgFeedbackScore,
			SatisfactionRatePct:   r.SatisfactionRatePct,
			WeekOverWeekGrowthPct: r.WeekOverWeekGrowthPct,
		}
	}))
}

var errBadPaging = errors.New("limit and offset must be integers")

func parseInput(c *fiber.Ctx) (usecase.GetReportInput, error) {
	in := usecase.GetReportInput{
		Month:     c.Query("month", ""),
		FirmID:    c.Query("firm_id", ""),
		UserTitle: c.Query("user_title", ""),
		Grain:     c.Query("grain", ""),
		EventType: c.Query("event_type", ""),
	}

	var err error
	if s := c.Query("limit", ""); s != "" {
		if in.Limit, err = strconv.Atoi(s); err != nil {
			return in, errBadPaging
		}
	}
	if s := c.Query("offset", ""); s != "" {
		if in.Offset, err = strconv.Atoi(s); err != nil {
			return in, errBadPaging
		}
	}
	return in, nil
}

func badQuery(c *fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_query",
		Message: err.Error(),
	})
}

func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidReportQuery),
		errors.Is(err, usecase.ErrInvalidMonth),
		errors.Is(err, usecase.ErrInvalidGrain):
		return badQuery(c, err)
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func mapPage[T, R any](p domain.Page[T], conv func(T) R) PageResponse[R] {
	out := PageResponse[R]{
		Items:  make([]R, 0, len(p.Items)),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	for _, item := range p.Items {
		out.Items = append(out.Items, conv(item))
	}
	return out
}
