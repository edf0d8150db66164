package domain

import "time"

// TableStats counts what the cleaner kept and why it dropped the rest.
type TableStats struct {
	Input    int            `json:"input"`
	Kept     int            `json:"kept"`
	Rejected map[string]int `json:"rejected"`
}

func NewTableStats(input int) TableStats {
	return TableStats{Input: input, Rejected: map[string]int{}}
}

func (s *TableStats) Reject(reason string) {
	s.Rejected[reason]++
}

func (s TableStats) RejectedTotal() int {
	n := 0
	for _, c := range s.Rejected {
		n += c
	}
	return n
}

type JoinStats struct {
	Input   int            `json:"input"`
	Joined  int            `json:"joined"`
	Dropped map[string]int `json:"dropped"`
}

type RunStats struct {
	Users  TableStats `json:"users"`
	Firms  TableStats `json:"firms"`
	Events TableStats `json:"events"`
	Join   JoinStats  `json:"join"`
}

// Tables holds every derived table of one run.
type Tables struct {
	Engagement         []EngagementRecord
	Cohorts            []CohortRecord
	FirmHealth         []FirmHealthRecord
	EventPerformance   []PerformanceRecord
	Acquisition        []AcquisitionRecord
	AcquisitionSummary []AcquisitionSummary
}

type Report struct {
	RunID       string
	GeneratedAt time.Time
	Stats       RunStats
	Tables      Tables
}

// RowCounts reports table sizes keyed by table name.
func (t Tables) RowCounts() map[string]int {
	return map[string]int{
		TableEngagement:         len(t.Engagement),
		TableCohorts:            len(t.Cohorts),
		TableFirmHealth:         len(t.FirmHealth),
		TableEventPerformance:   len(t.EventPerformance),
		TableAcquisition:        len(t.Acquisition),
		TableAcquisitionSummary: len(t.AcquisitionSummary),
	}
}

const (
	TableEngagement         = "engagement_records"
	TableCohorts            = "cohort_records"
	TableFirmHealth         = "firm_health_records"
	TableEventPerformance   = "event_performance_records"
	TableAcquisition        = "user_acquisition"
	TableAcquisitionSummary = "user_acquisition_summary"
)
