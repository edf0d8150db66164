// Package engagement rolls joined activity up to one record per user per
// calendar month and assigns the engagement tier.
package engagement

import (
	"sort"
	"time"

	"usage-metrics-service/internal/pipeline/core/domain"
)

type key struct {
	userID string
	month  time.Time
}

type accumulator struct {
	rec      domain.EngagementRecord
	days     map[time.Time]struct{}
	feedback domain.Mean
	firmAt   time.Time
}

// Classify expects activity produced by the joiner. Only user-months with
// at least one event are emitted. Output is ordered by (month, user).
func Classify(activity []domain.Activity) []domain.EngagementRecord {
	groups := make(map[key]*accumulator)

	for _, a := range activity {
		k := key{userID: a.UserID, month: a.Month}
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{
				rec: domain.EngagementRecord{
					UserID:          a.UserID,
					FirmID:          a.FirmID,
					UserTitle:       a.UserTitle,
					Month:           a.Month,
					FirstActivityAt: a.Timestamp,
					LastActivityAt:  a.Timestamp,
				},
				days:   map[time.Time]struct{}{},
				firmAt: a.Timestamp,
			}
			groups[k] = acc
		}
		acc.add(a)
	}

	out := make([]domain.EngagementRecord, 0, len(groups))
	for _, acc := range groups {
		out = append(out, acc.finish())
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Month.Equal(out[j].Month) {
			return out[i].Month.Before(out[j].Month)
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

func (acc *accumulator) add(a domain.Activity) {
	r := &acc.rec

	r.QueryCount++
	acc.days[a.Day] = struct{}{}

	switch a.Type {
	case domain.EventAssistant:
		r.AssistantQueries++
	case domain.EventVault:
		r.VaultQueries++
	case domain.EventWorkflow:
		r.WorkflowQueries++
	}

	if a.Feedback != nil {
		acc.feedback.Add(*a.Feedback)
		if *a.Feedback >= 4 {
			r.HighSatisfactionCount++
		}
		if *a.Feedback <= 2 {
			r.LowSatisfactionCount++
		}
	}

	r.TotalDocuments += a.NumDocs
	if a.NumDocs > r.MaxDocumentsInQuery {
		r.MaxDocumentsInQuery = a.NumDocs
	}

	if a.Timestamp.Before(r.FirstActivityAt) {
		r.FirstActivityAt = a.Timestamp
	}
	if a.Timestamp.After(r.LastActivityAt) {
		r.LastActivityAt = a.Timestamp
	}

	// firm of the month's earliest event, smallest id on ties
	if a.Timestamp.Before(acc.firmAt) || (a.Timestamp.Equal(acc.firmAt) && a.FirmID < r.FirmID) {
		r.FirmID = a.FirmID
		acc.firmAt = a.Timestamp
	}
}

func (acc *accumulator) finish() domain.EngagementRecord {
	r := acc.rec
	r.ActiveDays = int64(len(acc.days))
	r.AvgFeedbackScore = acc.feedback.Value()
	r.FeedbackCount = acc.feedback.Count()
	r.AvgDocumentsPerQuery = domain.Round2(domain.Ratio(float64(r.TotalDocuments), float64(r.QueryCount)))
	r.SatisfactionRate = domain.Pct(float64(r.HighSatisfactionCount), float64(r.QueryCount))
	r.QueriesPerActiveDay = domain.Round2(domain.Ratio(float64(r.QueryCount), float64(r.ActiveDays)))
	r.EngagementLevel = domain.ClassifyEngagement(r.QueryCount, r.ActiveDays)
	return r
}
