// Package performance aggregates joined activity at daily, weekly and
// monthly grain and unions the three passes into one table.
package performance

import (
	"sort"
	"time"

	"usage-metrics-service/internal/pipeline/core/domain"
)

const (
	highSatisfactionScore = 4
	highVolumeDocs        = 10
)

type bucketKey struct {
	period  time.Time
	typ     domain.EventType
	title   string
	segment domain.UserSegment
}

type bucket struct {
	key      bucketKey
	events   int64
	users    map[string]struct{}
	firms    map[string]struct{}
	docs     int64
	feedback domain.Mean
	highSat  int64
	highVol  int64
}

// Compute runs the three grains and returns them ordered by grain, period
// descending, then event volume descending.
func Compute(activity []domain.Activity) []domain.PerformanceRecord {
	daily := aggregate(activity, func(a domain.Activity) bucketKey {
		return bucketKey{a.Day, a.Type, a.UserTitle, domain.SegmentForTenure(a.DaysSinceSignup)}
	})
	weekly := aggregate(activity, func(a domain.Activity) bucketKey {
		return bucketKey{period: a.Week, typ: a.Type, title: a.UserTitle}
	})
	monthly := aggregate(activity, func(a domain.Activity) bucketKey {
		return bucketKey{a.Month, a.Type, a.UserTitle, domain.SegmentForTenure(a.DaysSinceSignup)}
	})

	out := make([]domain.PerformanceRecord, 0, len(daily)+len(weekly)+len(monthly))

	for _, b := range daily {
		r := b.record(domain.GrainDaily)
		r.EventsPerUser, r.DocumentsPerUser = b.perUser()
		out = append(out, r)
	}

	weeklyRecs := make([]domain.PerformanceRecord, 0, len(weekly))
	for _, b := range weekly {
		weeklyRecs = append(weeklyRecs, b.record(domain.GrainWeekly))
	}
	out = append(out, WithWeekOverWeekGrowth(weeklyRecs)...)

	for _, b := range monthly {
		r := b.record(domain.GrainMonthly)
		r.EventsPerUser, r.DocumentsPerUser = b.perUser()
		r.SatisfactionPerformance = domain.SatisfactionPerformance(r.AvgFeedbackScore)
		r.VolumePerformance = domain.VolumePerformance(r.TotalEvents)
		out = append(out, r)
	}

	SortRecords(out)
	return out
}

func aggregate(activity []domain.Activity, keyOf func(domain.Activity) bucketKey) []*bucket {
	index := make(map[bucketKey]*bucket)
	var buckets []*bucket

	for _, a := range activity {
		k := keyOf(a)
		b, ok := index[k]
		if !ok {
			b = &bucket{key: k, users: map[string]struct{}{}, firms: map[string]struct{}{}}
			index[k] = b
			buckets = append(buckets, b)
		}

		b.events++
		b.users[a.UserID] = struct{}{}
		b.firms[a.FirmID] = struct{}{}
		b.docs += a.NumDocs
		if a.Feedback != nil {
			b.feedback.Add(*a.Feedback)
			if *a.Feedback >= highSatisfactionScore {
				b.highSat++
			}
		}
		if a.NumDocs >= highVolumeDocs {
			b.highVol++
		}
	}
	return buckets
}

func (b *bucket) record(grain domain.TimeGrain) domain.PerformanceRecord {
	events := float64(b.events)
	return domain.PerformanceRecord{
		TimeGrain:              grain,
		TimePeriod:             b.key.period,
		EventType:              b.key.typ,
		UserTitle:              b.key.title,
		UserSegment:            b.key.segment,
		TotalEvents:            b.events,
		UniqueUsers:            int64(len(b.users)),
		UniqueFirms:            int64(len(b.firms)),
		TotalDocuments:         b.docs,
		AvgDocumentsPerEvent:   domain.Round2(domain.Ratio(float64(b.docs), events)),
		AvgFeedbackScore:       b.feedback.Value(),
		HighSatisfactionEvents: b.highSat,
		HighVolumeEvents:       b.highVol,
		SatisfactionRatePct:    domain.Pct(float64(b.highSat), events),
		HighVolumeRatePct:      domain.Pct(float64(b.highVol), events),
	}
}

func (b *bucket) perUser() (events, docs *float64) {
	users := float64(len(b.users))
	e := domain.Round2(domain.Ratio(float64(b.events), users))
	d := domain.Round2(domain.Ratio(float64(b.docs), users))
	return &e, &d
}

// WithWeekOverWeekGrowth fills PrevWeekEvents and WeekOverWeekGrowthPct
// from the previous weekly bucket of the same (event type, user title).
// Growth stays nil when there is no previous bucket or it had no events.
func WithWeekOverWeekGrowth(weekly []domain.PerformanceRecord) []domain.PerformanceRecord {
	type seriesKey struct {
		typ   domain.EventType
		title string
	}
	series := make(map[seriesKey][]int)
	for i, r := range weekly {
		k := seriesKey{r.EventType, r.UserTitle}
		series[k] = append(series[k], i)
	}

	for _, idx := range series {
		sort.Slice(idx, func(a, b int) bool {
			return weekly[idx[a]].TimePeriod.Before(weekly[idx[b]].TimePeriod)
		})
		for n := 1; n < len(idx); n++ {
			cur := &weekly[idx[n]]
			prev := weekly[idx[n-1]].TotalEvents
			cur.PrevWeekEvents = &prev
			if prev != 0 {
				g := domain.Round2(100 * float64(cur.TotalEvents-prev) / float64(prev))
				cur.WeekOverWeekGrowthPct = &g
			}
		}
	}
	return weekly
}

// SortRecords orders by grain, period desc, events desc, then type, title
// and segment so ties are stable across runs.
func SortRecords(recs []domain.PerformanceRecord) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if ga, gb := domain.GrainRank(a.TimeGrain), domain.GrainRank(b.TimeGrain); ga != gb {
			return ga < gb
		}
		if !a.TimePeriod.Equal(b.TimePeriod) {
			return a.TimePeriod.After(b.TimePeriod)
		}
		if a.TotalEvents != b.TotalEvents {
			return a.TotalEvents > b.TotalEvents
		}
		if a.EventType != b.EventType {
			return a.EventType < b.EventType
		}
		if a.UserTitle != b.UserTitle {
			return a.UserTitle < b.UserTitle
		}
		return a.UserSegment < b.UserSegment
	})
}
