// Package acquisition measures how quickly new users start using the
// product after signup.
package acquisition

import (
	"sort"
	"time"

	"usage-metrics-service/internal/pipeline/core/domain"
)

const (
	quickStartDays = 7
	monthlyDays    = 30
)

type userAcc struct {
	rec      domain.AcquisitionRecord
	days     map[time.Time]struct{}
	feedback domain.Mean
}

// Compute returns one record per user with a signup date, including users
// that never produced an event. Activity must come from the joiner so the
// earliest event is the first one seen for each user.
func Compute(users []domain.User, activity []domain.Activity) []domain.AcquisitionRecord {
	accs := make(map[string]*userAcc, len(users))
	order := make([]*userAcc, 0, len(users))

	for _, u := range users {
		if u.SignupDate == nil {
			continue
		}
		if _, dup := accs[u.ID]; dup {
			continue
		}
		a := &userAcc{
			rec: domain.AcquisitionRecord{
				UserID:           u.ID,
				UserTitle:        u.Title,
				SignupDate:       *u.SignupDate,
				AcquisitionMonth: domain.MonthOf(*u.SignupDate),
				SizeCategory:     domain.SizeUnknown,
				ARRCategory:      domain.ARRUnknown,
			},
			days: map[time.Time]struct{}{},
		}
		accs[u.ID] = a
		order = append(order, a)
	}

	for _, ev := range activity {
		a, ok := accs[ev.UserID]
		if !ok {
			continue
		}
		r := &a.rec
		if r.FirstActivityAt == nil || ev.Timestamp.Before(*r.FirstActivityAt) {
			ts := ev.Timestamp
			r.FirstActivityAt = &ts
			r.FirmID = ev.FirmID
			r.SizeCategory, r.ARRCategory = domain.SizeUnknown, domain.ARRUnknown
			if ev.Firm != nil {
				r.SizeCategory, r.ARRCategory = ev.Firm.SizeCategory, ev.Firm.ARRCategory
			}
		}
		r.TotalEvents++
		r.TotalDocuments += ev.NumDocs
		a.days[ev.Day] = struct{}{}
		a.feedback.AddPtr(ev.Feedback)
	}

	out := make([]domain.AcquisitionRecord, 0, len(order))
	for _, a := range order {
		r := a.rec
		r.ActiveDays = int64(len(a.days))
		r.AvgSatisfaction = a.feedback.Value()
		if r.FirstActivityAt != nil {
			d := domain.DaysBetween(r.SignupDate, *r.FirstActivityAt)
			r.DaysToFirstActivity = &d
			r.IsActivated = true
			r.IsQuickStart = d <= quickStartDays
			r.IsMonthlyActivated = d <= monthlyDays
		}
		r.ActivationCategory = domain.ActivationFor(r.DaysToFirstActivity)
		r.SatisfactionCategory = domain.SatisfactionCategory(r.AvgSatisfaction)
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.AcquisitionMonth.Equal(b.AcquisitionMonth) {
			return a.AcquisitionMonth.Before(b.AcquisitionMonth)
		}
		if a.UserTitle != b.UserTitle {
			return a.UserTitle < b.UserTitle
		}
		return a.UserID < b.UserID
	})
	return out
}

type summaryKey struct {
	month time.Time
	title string
}

type summaryAcc struct {
	sum          domain.AcquisitionSummary
	events       domain.Mean
	satisfaction domain.Mean
}

// Summarize rolls acquisition records up by (acquisition month, title).
// Average satisfaction only counts users that left feedback.
func Summarize(recs []domain.AcquisitionRecord) []domain.AcquisitionSummary {
	groups := make(map[summaryKey]*summaryAcc)
	var order []*summaryAcc

	for _, r := range recs {
		k := summaryKey{r.AcquisitionMonth, r.UserTitle}
		g, ok := groups[k]
		if !ok {
			g = &summaryAcc{sum: domain.AcquisitionSummary{AcquisitionMonth: k.month, UserTitle: k.title}}
			groups[k] = g
			order = append(order, g)
		}
		g.sum.Users++
		if r.IsActivated {
			g.sum.ActivatedUsers++
		}
		if r.IsQuickStart {
			g.sum.QuickStartUsers++
		}
		g.events.Add(float64(r.TotalEvents))
		g.satisfaction.AddPtr(r.AvgSatisfaction)
	}

	out := make([]domain.AcquisitionSummary, 0, len(order))
	for _, g := range order {
		s := g.sum
		users := float64(s.Users)
		s.ActivationRatePct = domain.Pct(float64(s.ActivatedUsers), users)
		s.QuickStartRatePct = domain.Pct(float64(s.QuickStartUsers), users)
		if v := g.events.Value(); v != nil {
			s.AvgTotalEvents = *v
		}
		s.AvgSatisfaction = g.satisfaction.Value()
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].AcquisitionMonth.Equal(out[j].AcquisitionMonth) {
			return out[i].AcquisitionMonth.Before(out[j].AcquisitionMonth)
		}
		return out[i].UserTitle < out[j].UserTitle
	})
	return out
}
