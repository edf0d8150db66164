// Package firmhealth scores firm usage per month from engagement records.
package firmhealth

import (
	"sort"
	"time"

	"usage-metrics-service/internal/pipeline/core/domain"
)

type key struct {
	firmID string
	month  time.Time
}

type accumulator struct {
	rec      domain.FirmHealthRecord
	users    map[string]struct{}
	power    map[string]struct{}
	active   map[string]struct{}
	engaged  map[string]struct{}
	feedback domain.Mean
	perDay   domain.Mean
	docsPerQ domain.Mean
	started  bool
}

// Score joins firms to engagement records on firm id. Engagement records
// for firms that are not known are skipped. Output is ordered by (month, firm).
func Score(firms []domain.Firm, engagement []domain.EngagementRecord) []domain.FirmHealthRecord {
	firmByID := make(map[string]domain.Firm, len(firms))
	for _, f := range firms {
		firmByID[f.ID] = f
	}

	groups := make(map[key]*accumulator)
	for _, e := range engagement {
		f, ok := firmByID[e.FirmID]
		if !ok {
			continue
		}
		k := key{firmID: f.ID, month: e.Month}
		acc, ok := groups[k]
		if !ok {
			acc = newAccumulator(f, e.Month)
			groups[k] = acc
		}
		acc.add(e)
	}

	out := make([]domain.FirmHealthRecord, 0, len(groups))
	for _, acc := range groups {
		out = append(out, acc.finish())
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Month.Equal(out[j].Month) {
			return out[i].Month.Before(out[j].Month)
		}
		return out[i].FirmID < out[j].FirmID
	})
	return out
}

func newAccumulator(f domain.Firm, month time.Time) *accumulator {
	return &accumulator{
		rec: domain.FirmHealthRecord{
			FirmID:        f.ID,
			Month:         month,
			EmployeeCount: f.EmployeeCount,
			ARRThousands:  f.ARRThousands,
			SizeCategory:  f.SizeCategory,
			ARRCategory:   f.ARRCategory,
		},
		users:   map[string]struct{}{},
		power:   map[string]struct{}{},
		active:  map[string]struct{}{},
		engaged: map[string]struct{}{},
	}
}

func (acc *accumulator) add(e domain.EngagementRecord) {
	r := &acc.rec

	acc.users[e.UserID] = struct{}{}
	switch e.EngagementLevel {
	case domain.PowerUser:
		acc.power[e.UserID] = struct{}{}
		acc.engaged[e.UserID] = struct{}{}
	case domain.ActiveUser:
		acc.active[e.UserID] = struct{}{}
		acc.engaged[e.UserID] = struct{}{}
	}

	r.TotalQueries += e.QueryCount
	r.TotalDocuments += e.TotalDocuments
	r.AssistantQueries += e.AssistantQueries
	r.VaultQueries += e.VaultQueries
	r.WorkflowQueries += e.WorkflowQueries
	r.HighSatisfactionCount += e.HighSatisfactionCount
	r.LowSatisfactionCount += e.LowSatisfactionCount

	acc.feedback.AddPtr(e.AvgFeedbackScore)
	acc.perDay.Add(e.QueriesPerActiveDay)
	acc.docsPerQ.Add(e.AvgDocumentsPerQuery)

	if !acc.started || e.FirstActivityAt.Before(r.FirstActivityAt) {
		r.FirstActivityAt = e.FirstActivityAt
	}
	if !acc.started || e.LastActivityAt.After(r.LastActivityAt) {
		r.LastActivityAt = e.LastActivityAt
	}
	acc.started = true
}

func (acc *accumulator) finish() domain.FirmHealthRecord {
	r := acc.rec
	r.ActiveUsers = int64(len(acc.users))
	r.PowerUsers = int64(len(acc.power))
	r.ActiveTierUsers = int64(len(acc.active))
	r.EngagedUsers = int64(len(acc.engaged))
	r.AvgFeedbackScore = acc.feedback.Value()
	if v := acc.perDay.Value(); v != nil {
		r.AvgQueriesPerActiveDay = *v
	}
	if v := acc.docsPerQ.Value(); v != nil {
		r.AvgDocumentsPerQuery = *v
	}

	in := Inputs{
		ActiveUsers:      r.ActiveUsers,
		EngagedUsers:     r.EngagedUsers,
		PowerUsers:       r.PowerUsers,
		TotalQueries:     r.TotalQueries,
		HighSatisfaction: r.HighSatisfactionCount,
		ARRThousands:     r.ARRThousands,
	}
	active := float64(r.ActiveUsers)
	r.UserEngagementRate = domain.Round2(in.engagementRate())
	r.PowerUserRate = domain.Round2(in.powerRate())
	r.SatisfactionRate = domain.Round2(in.satisfactionRate())
	r.QueriesPerActiveUser = domain.Round2(in.queriesPerActiveUser())
	r.DocumentsPerActiveUser = domain.Round2(domain.Ratio(float64(r.TotalDocuments), active))
	r.ARRPerActiveUser = domain.Round2(in.arrPerActiveUser())
	r.HealthScore = HealthScore(in)
	r.HealthStatus = domain.HealthStatus(r.HealthScore)
	return r
}
