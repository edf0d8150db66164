// Package joiner attaches cleaned events to their users and firms and
// derives the time buckets the aggregation engines group on.
package joiner

import (
	"sort"

	"usage-metrics-service/internal/pipeline/core/domain"
)

const (
	ReasonUnknownUser  = "unknown_user"
	ReasonNoSignupDate = "no_signup_date"
	ReasonBeforeSignup = "before_signup"
)

// Join requires a known user with a signup date for every event and drops
// events stamped strictly before that date. The firm is attached when known.
// The result is sorted by (timestamp, user, firm).
func Join(users []domain.User, firms []domain.Firm, events []domain.Event) ([]domain.Activity, domain.JoinStats) {
	stats := domain.JoinStats{Input: len(events), Dropped: map[string]int{}}

	userByID := make(map[string]domain.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}
	firmByID := make(map[string]*domain.Firm, len(firms))
	for i := range firms {
		firmByID[firms[i].ID] = &firms[i]
	}

	out := make([]domain.Activity, 0, len(events))
	for _, e := range events {
		u, ok := userByID[e.UserID]
		if !ok {
			stats.Dropped[ReasonUnknownUser]++
			continue
		}
		if u.SignupDate == nil {
			stats.Dropped[ReasonNoSignupDate]++
			continue
		}
		if e.Timestamp.Before(*u.SignupDate) {
			stats.Dropped[ReasonBeforeSignup]++
			continue
		}

		out = append(out, domain.Activity{
			Event:           e,
			UserTitle:       u.Title,
			SignupDate:      *u.SignupDate,
			Firm:            firmByID[e.FirmID],
			Day:             domain.DayOf(e.Timestamp),
			Week:            domain.WeekOf(e.Timestamp),
			Month:           domain.MonthOf(e.Timestamp),
			DaysSinceSignup: domain.DaysBetween(*u.SignupDate, e.Timestamp),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}
		return a.FirmID < b.FirmID
	})

	stats.Joined = len(out)
	return out, stats
}
