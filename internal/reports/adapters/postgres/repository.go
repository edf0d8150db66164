package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"usage-metrics-service/internal/reports/core/domain"
	"usage-metrics-service/internal/reports/core/ports"
)

type ReportRepository struct {
	db DB
}

func NewReportRepository(db DB) *ReportRepository {
	return &ReportRepository{db: db}
}

var _ ports.ReportReaderPort = (*ReportRepository)(nil)

// where collects AND-ed predicates with positional args.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET as the last two args.
func (w *where) page(f ports.ReportFilter) string {
	w.args = append(w.args, f.Limit, f.Offset)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

func (r *ReportRepository) Engagement(ctx context.Context, f ports.ReportFilter) ([]domain.EngagementRow, error) {
	var w where
	if f.Month != nil {
		w.add("activity_month = $%d", *f.Month)
	}
	if f.FirmID != "" {
		w.add("firm_id = $%d", f.FirmID)
	}
	if f.UserTitle != "" {
		w.add("user_title = $%d", f.UserTitle)
	}

	query := `
SELECT
    user_id,
    firm_id,
    user_title,
    activity_month,
    query_count,
    active_days,
    avg_feedback_score,
    satisfaction_rate,
    engagement_level
FROM engagement_records
` + w.sql() + `
ORDER BY activity_month DESC, query_count DESC, user_id
` + w.page(f)

	var out []domain.EngagementRow
	err := r.each(ctx, query, w.args, func(rows RowScanner) error {
		var row domain.EngagementRow
		var avg sql.NullFloat64
		if err := rows.Scan(
			&row.UserID, &row.FirmID, &row.UserTitle, &row.Month,
			&row.QueryCount, &row.ActiveDays, &avg, &row.SatisfactionRate, &row.EngagementLevel,
		); err != nil {
			return err
		}
		row.AvgFeedbackScore = floatPtr(avg)
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query engagement_records: %w", err)
	}
	return out, nil
}

func (r *ReportRepository) Cohorts(ctx context.Context, f ports.ReportFilter) ([]domain.CohortRow, error) {
	var w where
	if f.Month != nil {
		w.add("cohort_month = $%d", *f.Month)
	}
	if f.UserTitle != "" {
		w.add("user_title = $%d", f.UserTitle)
	}

	query := `
SELECT
    cohort_month,
    user_title,
    months_since_signup,
    total_users,
    retained_users,
    power_users,
    retention_rate_pct,
    power_user_rate_pct,
    cohort_size,
    retention_performance
FROM cohort_records
` + w.sql() + `
ORDER BY cohort_month, user_title, months_since_signup
` + w.page(f)

	var out []domain.CohortRow
	err := r.each(ctx, query, w.args, func(rows RowScanner) error {
		var row domain.CohortRow
		if err := rows.Scan(
			&row.CohortMonth, &row.UserTitle, &row.MonthsSinceSignup,
			&row.TotalUsers, &row.RetainedUsers, &row.PowerUsers,
			&row.RetentionRatePct, &row.PowerUserRatePct,
			&row.CohortSize, &row.RetentionPerformance,
		); err != nil {
			return err
		}
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query cohort_records: %w", err)
	}
	return out, nil
}

func (r *ReportRepository) FirmHealth(ctx context.Context, f ports.ReportFilter) ([]domain.FirmHealthRow, error) {
	var w where
	if f.Month != nil {
		w.add("activity_month = $%d", *f.Month)
	}
	if f.FirmID != "" {
		w.add("firm_id = $%d", f.FirmID)
	}

	query := `
SELECT
    firm_id,
    activity_month,
    firm_size_category,
    arr_category,
    active_users,
    power_users,
    total_queries,
    avg_feedback_score,
    user_engagement_rate,
    health_score,
    health_status
FROM firm_health_records
` + w.sql() + `
ORDER BY activity_month DESC, health_score DESC, firm_id
` + w.page(f)

	var out []domain.FirmHealthRow
	err := r.each(ctx, query, w.args, func(rows RowScanner) error {
		var row domain.FirmHealthRow
		var avg sql.NullFloat64
		if err := rows.Scan(
			&row.FirmID, &row.Month, &row.SizeCategory, &row.ARRCategory,
			&row.ActiveUsers, &row.PowerUsers, &row.TotalQueries, &avg,
			&row.UserEngagementRate, &row.HealthScore, &row.HealthStatus,
		); err != nil {
			return err
		}
		row.AvgFeedbackScore = floatPtr(avg)
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query firm_health_records: %w", err)
	}
	return out, nil
}

func (r *ReportRepository) EventPerformance(ctx context.Context, f ports.ReportFilter) ([]domain.PerformanceRow, error) {
	var w where
	if f.Grain != "" {
		w.add("time_grain = $%d", f.Grain)
	}
	if f.Month != nil {
		w.add("time_period >= $%d", *f.Month)
		w.add("time_period < $%d", f.Month.AddDate(0, 1, 0))
	}
	if f.EventType != "" {
		w.add("event_type = $%d", f.EventType)
	}
	if f.UserTitle != "" {
		w.add("user_title = $%d", f.UserTitle)
	}

	query := `
SELECT
    time_grain,
    time_period,
    event_type,
    user_title,
    user_segment,
    total_events,
    unique_users,
    avg_feedback_score,
    satisfaction_rate_pct,
    week_over_week_growth_pct
FROM event_performance_records
` + w.sql() + `
ORDER BY
    CASE time_grain WHEN 'daily' THEN 0 WHEN 'weekly' THEN 1 ELSE 2 END,
    time_period DESC,
    total_events DESC,
    event_type,
    user_title
` + w.page(f)

	var out []domain.PerformanceRow
	err := r.each(ctx, query, w.args, func(rows RowScanner) error {
		var row domain.PerformanceRow
		var segment sql.NullString
		var avg, growth sql.NullFloat64
		if err := rows.Scan(
			&row.TimeGrain, &row.TimePeriod, &row.EventType, &row.UserTitle, &segment,
			&row.TotalEvents, &row.UniqueUsers, &avg, &row.SatisfactionRatePct, &growth,
		); err != nil {
			return err
		}
		row.UserSegment = segment.String
		row.AvgFeedbackScore = floatPtr(avg)
		row.WeekOverWeekGrowthPct = floatPtr(growth)
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query event_performance_records: %w", err)
	}
	return out, nil
}

func (r *ReportRepository) each(ctx context.Context, query string, args []any, scan func(RowScanner) error) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
