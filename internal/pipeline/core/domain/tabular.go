package domain

import "time"

// TableData is a derived table flattened into named columns. Cell values
// are string, int64, float64, bool, time.Time or nil.
type TableData struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Tabular flattens every derived table in a fixed order. Column names
// match the warehouse schema.
func (t Tables) Tabular() []TableData {
	return []TableData{
		engagementTable(t.Engagement),
		cohortTable(t.Cohorts),
		firmHealthTable(t.FirmHealth),
		performanceTable(t.EventPerformance),
		acquisitionTable(t.Acquisition),
		acquisitionSummaryTable(t.AcquisitionSummary),
	}
}

func optFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func optInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func optTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}

func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func engagementTable(recs []EngagementRecord) TableData {
	td := TableData{
		Name: TableEngagement,
		Columns: []string{
			"user_id", "firm_id", "user_title", "activity_month",
			"query_count", "active_days", "assistant_queries", "vault_queries", "workflow_queries",
			"avg_feedback_score", "feedback_count", "high_satisfaction_count", "low_satisfaction_count",
			"total_documents", "avg_documents_per_query", "max_documents_in_query",
			"satisfaction_rate", "queries_per_active_day",
			"first_activity_at", "last_activity_at", "engagement_level",
		},
	}
	for _, r := range recs {
		td.Rows = append(td.Rows, []any{
			r.UserID, r.FirmID, r.UserTitle, r.Month,
			r.QueryCount, r.ActiveDays, r.AssistantQueries, r.VaultQueries, r.WorkflowQueries,
			optFloat(r.AvgFeedbackScore), r.FeedbackCount, r.HighSatisfactionCount, r.LowSatisfactionCount,
			r.TotalDocuments, r.AvgDocumentsPerQuery, r.MaxDocumentsInQuery,
			r.SatisfactionRate, r.QueriesPerActiveDay,
			r.FirstActivityAt, r.LastActivityAt, string(r.EngagementLevel),
		})
	}
	return td
}

func cohortTable(recs []CohortRecord) TableData {
	td := TableData{
		Name: TableCohorts,
		Columns: []string{
			"cohort_month", "user_title", "months_since_signup",
			"total_users", "retained_users", "power_users",
			"avg_events_per_user", "avg_active_days",
			"retention_rate_pct", "power_user_rate_pct",
			"cohort_size", "retention_performance",
		},
	}
	for _, r := range recs {
		td.Rows = append(td.Rows, []any{
			r.CohortMonth, r.UserTitle, int64(r.MonthsSinceSignup),
			r.TotalUsers, r.RetainedUsers, r.PowerUsers,
			r.AvgEventsPerUser, r.AvgActiveDays,
			r.RetentionRatePct, r.PowerUserRatePct,
			r.CohortSize, r.RetentionPerformance,
		})
	}
	return td
}

func firmHealthTable(recs []FirmHealthRecord) TableData {
	td := TableData{
		Name: TableFirmHealth,
		Columns: []string{
			"firm_id", "activity_month", "employee_count", "arr_in_thousands", "firm_size_category", "arr_category",
			"active_users", "power_users", "active_tier_users", "engaged_users",
			"total_queries", "total_documents", "assistant_queries", "vault_queries", "workflow_queries",
			"avg_feedback_score", "high_satisfaction_count", "low_satisfaction_count",
			"first_activity_at", "last_activity_at",
			"avg_queries_per_active_day", "avg_documents_per_query", "user_engagement_rate", "power_user_rate",
			"satisfaction_rate", "queries_per_active_user", "documents_per_active_user", "arr_per_active_user",
			"health_score", "health_status",
		},
	}
	for _, r := range recs {
		td.Rows = append(td.Rows, []any{
			r.FirmID, r.Month, r.EmployeeCount, r.ARRThousands, string(r.SizeCategory), string(r.ARRCategory),
			r.ActiveUsers, r.PowerUsers, r.ActiveTierUsers, r.EngagedUsers,
			r.TotalQueries, r.TotalDocuments, r.AssistantQueries, r.VaultQueries, r.WorkflowQueries,
			optFloat(r.AvgFeedbackScore), r.HighSatisfactionCount, r.LowSatisfactionCount,
			r.FirstActivityAt, r.LastActivityAt,
			r.AvgQueriesPerActiveDay, r.AvgDocumentsPerQuery, r.UserEngagementRate, r.PowerUserRate,
			r.SatisfactionRate, r.QueriesPerActiveUser, r.DocumentsPerActiveUser, r.ARRPerActiveUser,
			r.HealthScore, r.HealthStatus,
		})
	}
	return td
}

func performanceTable(recs []PerformanceRecord) TableData {
	td := TableData{
		Name: TableEventPerformance,
		Columns: []string{
			"time_grain", "time_period", "event_type", "user_title", "user_segment",
			"total_events", "unique_users", "unique_firms", "total_documents", "avg_documents_per_event",
			"avg_feedback_score", "high_satisfaction_events", "high_volume_events",
			"satisfaction_rate_pct", "high_volume_rate_pct",
			"events_per_user", "documents_per_user",
			"prev_week_events", "week_over_week_growth_pct",
			"satisfaction_performance", "volume_performance",
		},
	}
	for _, r := range recs {
		td.Rows = append(td.Rows, []any{
			string(r.TimeGrain), r.TimePeriod, string(r.EventType), r.UserTitle, optString(string(r.UserSegment)),
			r.TotalEvents, r.UniqueUsers, r.UniqueFirms, r.TotalDocuments, r.AvgDocumentsPerEvent,
			optFloat(r.AvgFeedbackScore), r.HighSatisfactionEvents, r.HighVolumeEvents,
			r.SatisfactionRatePct, r.HighVolumeRatePct,
			optFloat(r.EventsPerUser), optFloat(r.DocumentsPerUser),
			optInt(r.PrevWeekEvents), optFloat(r.WeekOverWeekGrowthPct),
			optString(r.SatisfactionPerformance), optString(r.VolumePerformance),
		})
	}
	return td
}

func acquisitionTable(recs []AcquisitionRecord) TableData {
	td := TableData{
		Name: TableAcquisition,
		Columns: []string{
			"user_id", "user_title", "signup_date", "acquisition_month",
			"firm_id", "firm_size_category", "arr_category",
			"first_activity_at", "days_to_first_activity", "total_events", "active_days",
			"avg_satisfaction_score", "total_documents",
			"is_activated", "is_quick_start", "is_monthly_activated",
			"activation_category", "satisfaction_category",
		},
	}
	for _, r := range recs {
		var days any
		if r.DaysToFirstActivity != nil {
			days = int64(*r.DaysToFirstActivity)
		}
		td.Rows = append(td.Rows, []any{
			r.UserID, r.UserTitle, r.SignupDate, r.AcquisitionMonth,
			optString(r.FirmID), string(r.SizeCategory), string(r.ARRCategory),
			optTime(r.FirstActivityAt), days, r.TotalEvents, r.ActiveDays,
			optFloat(r.AvgSatisfaction), r.TotalDocuments,
			r.IsActivated, r.IsQuickStart, r.IsMonthlyActivated,
			string(r.ActivationCategory), r.SatisfactionCategory,
		})
	}
	return td
}

func acquisitionSummaryTable(recs []AcquisitionSummary) TableData {
	td := TableData{
		Name: TableAcquisitionSummary,
		Columns: []string{
			"acquisition_month", "user_title",
			"users", "activated_users", "quick_start_users",
			"activation_rate_pct", "quick_start_rate_pct",
			"avg_total_events", "avg_satisfaction_score",
		},
	}
	for _, r := range recs {
		td.Rows = append(td.Rows, []any{
			r.AcquisitionMonth, r.UserTitle,
			r.Users, r.ActivatedUsers, r.QuickStartUsers,
			r.ActivationRatePct, r.QuickStartRatePct,
			r.AvgTotalEvents, optFloat(r.AvgSatisfaction),
		})
	}
	return td
}
