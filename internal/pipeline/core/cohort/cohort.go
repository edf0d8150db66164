// Package cohort builds retention curves per signup-month cohort.
//
// A user only shows up in a cohort row for months where they have activity,
// so users with no activity at all never appear, not even at month 0.
package cohort

import (
	"sort"
	"time"

	"usage-metrics-service/internal/pipeline/core/domain"
)

// userMonth is one user's activity in one calendar month.
type userMonth struct {
	userID     string
	title      string
	cohort     time.Time
	offset     int
	events     int64
	activeDays map[time.Time]struct{}
}

type groupKey struct {
	cohort time.Time
	title  string
	offset int
}

type group struct {
	users    map[string]struct{}
	retained map[string]struct{}
	power    map[string]struct{}
	events   domain.Mean
	days     domain.Mean
}

// Compute takes the cleaned users and the joined activity. Users without a
// signup date have no cohort and are skipped.
func Compute(users []domain.User, activity []domain.Activity) []domain.CohortRecord {
	cohortOf := make(map[string]domain.User, len(users))
	for _, u := range users {
		if u.SignupDate != nil {
			cohortOf[u.ID] = u
		}
	}

	type umKey struct {
		userID string
		month  time.Time
	}
	months := make(map[umKey]*userMonth)
	for _, a := range activity {
		u, ok := cohortOf[a.UserID]
		if !ok {
			continue
		}
		k := umKey{a.UserID, a.Month}
		um, ok := months[k]
		if !ok {
			cohort := domain.MonthOf(*u.SignupDate)
			um = &userMonth{
				userID:     u.ID,
				title:      u.Title,
				cohort:     cohort,
				offset:     domain.MonthsBetween(cohort, a.Month),
				activeDays: map[time.Time]struct{}{},
			}
			months[k] = um
		}
		um.events++
		um.activeDays[a.Day] = struct{}{}
	}

	groups := make(map[groupKey]*group)
	for _, um := range months {
		if um.offset < 0 {
			continue
		}
		k := groupKey{um.cohort, um.title, um.offset}
		g, ok := groups[k]
		if !ok {
			g = &group{
				users:    map[string]struct{}{},
				retained: map[string]struct{}{},
				power:    map[string]struct{}{},
			}
			groups[k] = g
		}

		days := int64(len(um.activeDays))
		g.users[um.userID] = struct{}{}
		// presence in the month is what retains a user
		g.retained[um.userID] = struct{}{}
		if domain.IsPowerUsage(um.events, days) {
			g.power[um.userID] = struct{}{}
		}
		g.events.Add(float64(um.events))
		g.days.Add(float64(days))
	}

	out := make([]domain.CohortRecord, 0, len(groups))
	for k, g := range groups {
		total := int64(len(g.users))
		retained := int64(len(g.retained))
		power := int64(len(g.power))
		retention := domain.Pct(float64(retained), float64(total))

		out = append(out, domain.CohortRecord{
			CohortMonth:          k.cohort,
			UserTitle:            k.title,
			MonthsSinceSignup:    k.offset,
			TotalUsers:           total,
			RetainedUsers:        retained,
			PowerUsers:           power,
			AvgEventsPerUser:     valueOrZero(g.events.Value()),
			AvgActiveDays:        valueOrZero(g.days.Value()),
			RetentionRatePct:     retention,
			PowerUserRatePct:     domain.Pct(float64(power), float64(total)),
			CohortSize:           domain.CohortSize(total),
			RetentionPerformance: domain.RetentionPerformance(retention),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CohortMonth.Equal(b.CohortMonth) {
			return a.CohortMonth.Before(b.CohortMonth)
		}
		if a.UserTitle != b.UserTitle {
			return a.UserTitle < b.UserTitle
		}
		return a.MonthsSinceSignup < b.MonthsSinceSignup
	})
	return out
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
