package fiber

type EngagementRowResponse struct {
	UserID           string   `json:"user_id"`
	FirmID           string   `json:"firm_id"`
	UserTitle        string   `json:"user_title"`
	Month            string   `json:"activity_month" example:"2024-03"`
	QueryCount       int64    `json:"query_count"`
	ActiveDays       int64    `json:"active_days"`
	AvgFeedbackScore *float64 `json:"avg_feedback_score"`
	SatisfactionRate float64  `json:"satisfaction_rate"`
	EngagementLevel  string   `json:"engagement_level" example:"Power User"`
}

type CohortRowResponse struct {
	CohortMonth          string  `json:"cohort_month" example:"2024-01"`
	UserTitle            string  `json:"user_title"`
	MonthsSinceSignup    int64   `json:"months_since_signup"`
	TotalUsers           int64   `json:"total_users"`
	RetainedUsers        int64   `json:"retained_users"`
	PowerUsers           int64   `json:"power_users"`
	RetentionRatePct     float64 `json:"retention_rate_pct"`
	PowerUserRatePct     float64 `json:"power_user_rate_pct"`
	CohortSize           string  `json:"cohort_size"`
	RetentionPerformance string  `json:"retention_performance"`
}

type FirmHealthRowResponse struct {
	FirmID             string   `json:"firm_id"`
	Month              string   `json:"activity_month" example:"2024-03"`
	SizeCategory       string   `json:"firm_size_category"`
	ARRCategory        string   `json:"arr_category"`
	ActiveUsers        int64    `json:"active_users"`
	PowerUsers         int64    `json:"power_users"`
	TotalQueries       int64    `json:"total_queries"`
	AvgFeedbackScore   *float64 `json:"avg_feedback_score"`
	UserEngagementRate float64  `json:"user_engagement_rate"`
	HealthScore        float64  `json:"health_score"`
	HealthStatus       string   `json:"health_status" example:"Healthy"`
}

type PerformanceRowResponse struct {
	TimeGrain             string   `json:"time_grain" example:"weekly"`
	TimePeriod            string   `json:"time_period" example:"2024-03-04"`
	EventType             string   `json:"event_type" example:"ASSISTANT"`
	UserTitle             string   `json:"user_title"`
	UserSegment           string   `json:"user_segment,omitempty"`
	TotalEvents           int64    `json:"total_events"`
	UniqueUsers           int64    `json:"unique_users"`
	AvgFeedbackScore      *float64 `json:"avg_feedback_score"`
	SatisfactionRatePct   float64  `json:"satisfaction_rate_pct"`
	WeekOverWeekGrowthPct *float64 `json:"week_over_week_growth_pct,omitempty"`
}

type PageResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message,omitempty" example:"invalid month, want YYYY-MM"`
}
