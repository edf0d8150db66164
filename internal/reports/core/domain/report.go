package domain

import "time"

// Read models over the persisted derived tables. Each carries the columns
// dashboards filter and rank on; the full rows stay in the warehouse.

type EngagementRow struct {
	UserID           string
	FirmID           string
	UserTitle        string
	Month            time.Time
	QueryCount       int64
	ActiveDays       int64
	AvgFeedbackScore *float64
	SatisfactionRate float64
	EngagementLevel  string
}

type CohortRow struct {
	CohortMonth          time.Time
	UserTitle            string
	MonthsSinceSignup    int64
	TotalUsers           int64
	RetainedUsers        int64
	PowerUsers           int64
	RetentionRatePct     float64
	PowerUserRatePct     float64
	CohortSize           string
	RetentionPerformance string
}

type FirmHealthRow struct {
	FirmID             string
	Month              time.Time
	SizeCategory       string
	ARRCategory        string
	ActiveUsers        int64
	PowerUsers         int64
	TotalQueries       int64
	AvgFeedbackScore   *float64
	UserEngagementRate float64
	HealthScore        float64
	HealthStatus       string
}

type PerformanceRow struct {
	TimeGrain             string
	TimePeriod            time.Time
	EventType             string
	UserTitle             string
	UserSegment           string
	TotalEvents           int64
	UniqueUsers           int64
	AvgFeedbackScore      *float64
	SatisfactionRatePct   float64
	WeekOverWeekGrowthPct *float64
}

// Page is one slice of an ordered report.
type Page[T any] struct {
	Items  []T
	Limit  int
	Offset int
}
