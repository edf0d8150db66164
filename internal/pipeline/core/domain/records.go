package domain

import "time"

type EngagementRecord struct {
	UserID    string
	FirmID    string
	UserTitle string
	Month     time.Time

	QueryCount       int64
	ActiveDays       int64
	AssistantQueries int64
	VaultQueries     int64
	WorkflowQueries  int64

	AvgFeedbackScore      *float64
	FeedbackCount         int64
	HighSatisfactionCount int64
	LowSatisfactionCount  int64

	TotalDocuments       int64
	AvgDocumentsPerQuery float64
	MaxDocumentsInQuery  int64

	SatisfactionRate    float64
	QueriesPerActiveDay float64

	FirstActivityAt time.Time
	LastActivityAt  time.Time

	EngagementLevel EngagementLevel
}

type CohortRecord struct {
	CohortMonth       time.Time
	UserTitle         string
	MonthsSinceSignup int

	TotalUsers    int64
	RetainedUsers int64
	PowerUsers    int64

	AvgEventsPerUser float64
	AvgActiveDays    float64

	RetentionRatePct float64
	PowerUserRatePct float64

	CohortSize           string
	RetentionPerformance string
}

type FirmHealthRecord struct {
	FirmID        string
	Month         time.Time
	EmployeeCount int64
	ARRThousands  float64
	SizeCategory  SizeCategory
	ARRCategory   ARRCategory

	ActiveUsers     int64
	PowerUsers      int64
	ActiveTierUsers int64
	EngagedUsers    int64

	TotalQueries     int64
	TotalDocuments   int64
	AssistantQueries int64
	VaultQueries     int64
	WorkflowQueries  int64

	AvgFeedbackScore      *float64
	HighSatisfactionCount int64
	LowSatisfactionCount  int64

	FirstActivityAt time.Time
	LastActivityAt  time.Time

	AvgQueriesPerActiveDay float64
	AvgDocumentsPerQuery   float64
	UserEngagementRate     float64
	PowerUserRate          float64
	SatisfactionRate       float64
	QueriesPerActiveUser   float64
	DocumentsPerActiveUser float64
	ARRPerActiveUser       float64
	HealthScore            float64
	HealthStatus           string
}

type TimeGrain string

const (
	GrainDaily   TimeGrain = "daily"
	GrainWeekly  TimeGrain = "weekly"
	GrainMonthly TimeGrain = "monthly"
)

// GrainRank orders the grains in the unioned performance table.
func GrainRank(g TimeGrain) int {
	switch g {
	case GrainDaily:
		return 0
	case GrainWeekly:
		return 1
	case GrainMonthly:
		return 2
	default:
		return 3
	}
}

// PerformanceRecord is one row of the unioned daily/weekly/monthly table.
// Grain-specific columns stay nil/empty on the other grains.
type PerformanceRecord struct {
	TimeGrain   TimeGrain
	TimePeriod  time.Time
	EventType   EventType
	UserTitle   string
	UserSegment UserSegment // empty for weekly

	TotalEvents            int64
	UniqueUsers            int64
	UniqueFirms            int64
	TotalDocuments         int64
	AvgDocumentsPerEvent   float64
	AvgFeedbackScore       *float64
	HighSatisfactionEvents int64
	HighVolumeEvents       int64
	SatisfactionRatePct    float64
	HighVolumeRatePct      float64

	// daily, monthly
	EventsPerUser    *float64
	DocumentsPerUser *float64

	// weekly
	PrevWeekEvents        *int64
	WeekOverWeekGrowthPct *float64

	// monthly
	SatisfactionPerformance string
	VolumePerformance       string
}

type AcquisitionRecord struct {
	UserID           string
	UserTitle        string
	SignupDate       time.Time
	AcquisitionMonth time.Time

	FirmID       string
	SizeCategory SizeCategory
	ARRCategory  ARRCategory

	FirstActivityAt     *time.Time
	DaysToFirstActivity *int
	TotalEvents         int64
	ActiveDays          int64
	AvgSatisfaction     *float64
	TotalDocuments      int64

	IsActivated        bool
	IsQuickStart       bool
	IsMonthlyActivated bool

	ActivationCategory   ActivationCategory
	SatisfactionCategory string
}

type AcquisitionSummary struct {
	AcquisitionMonth time.Time
	UserTitle        string

	Users           int64
	ActivatedUsers  int64
	QuickStartUsers int64

	ActivationRatePct float64
	QuickStartRatePct float64
	AvgTotalEvents    float64
	AvgSatisfaction   *float64
}
