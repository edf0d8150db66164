// Package cleaner validates and normalizes raw users, firms and events.
// Rows missing a required key are dropped and counted; out-of-range values
// are repaired in place.
package cleaner

import (
	"math"
	"strings"
	"time"

	"usage-metrics-service/internal/pipeline/core/domain"
)

const (
	ReasonMissingID        = "missing_id"
	ReasonDuplicateID      = "duplicate_id"
	ReasonMissingFirmID    = "missing_firm_id"
	ReasonMissingUserID    = "missing_user_id"
	ReasonMissingTimestamp = "missing_timestamp"
	ReasonBadTimestamp     = "unparsable_timestamp"
)

// Options tune user title normalization. With no known titles every
// non-empty title is kept as-is.
type Options struct {
	KnownTitles []string
}

type Cleaner struct {
	titles map[string]string // lower(title) -> canonical title
}

func New(opts Options) *Cleaner {
	c := &Cleaner{}
	if len(opts.KnownTitles) > 0 {
		c.titles = make(map[string]string, len(opts.KnownTitles))
		for _, t := range opts.KnownTitles {
			t = strings.TrimSpace(t)
			if t != "" {
				c.titles[strings.ToLower(t)] = t
			}
		}
	}
	return c
}

func (c *Cleaner) CleanUsers(raw []domain.RawUser) ([]domain.User, domain.TableStats) {
	stats := domain.NewTableStats(len(raw))
	out := make([]domain.User, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, r := range raw {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			stats.Reject(ReasonMissingID)
			continue
		}
		if _, dup := seen[id]; dup {
			stats.Reject(ReasonDuplicateID)
			continue
		}
		seen[id] = struct{}{}

		u := domain.User{ID: id, Title: c.normalizeTitle(r.Title)}
		if t, ok := ParseTime(r.Created); ok {
			d := domain.DayOf(t)
			u.SignupDate = &d
		}
		out = append(out, u)
	}

	stats.Kept = len(out)
	return out, stats
}

func (c *Cleaner) CleanFirms(raw []domain.RawFirm) ([]domain.Firm, domain.TableStats) {
	stats := domain.NewTableStats(len(raw))
	out := make([]domain.Firm, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, r := range raw {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			stats.Reject(ReasonMissingID)
			continue
		}
		if _, dup := seen[id]; dup {
			stats.Reject(ReasonDuplicateID)
			continue
		}
		seen[id] = struct{}{}

		f := domain.Firm{
			ID:           id,
			SizeCategory: domain.SizeUnknown,
			ARRCategory:  domain.ARRUnknown,
		}
		if t, ok := ParseTime(r.Created); ok {
			d := domain.DayOf(t)
			f.CreatedDate = &d
		}
		if valid(r.FirmSize) {
			f.EmployeeCount = int64(math.Round(*r.FirmSize))
			f.SizeCategory = domain.FirmSizeCategory(*r.FirmSize)
		}
		if valid(r.ARRInThousands) {
			f.ARRThousands = *r.ARRInThousands
			f.ARRCategory = domain.FirmARRCategory(*r.ARRInThousands)
		}
		out = append(out, f)
	}

	stats.Kept = len(out)
	return out, stats
}

func (c *Cleaner) CleanEvents(raw []domain.RawEvent) ([]domain.Event, domain.TableStats) {
	stats := domain.NewTableStats(len(raw))
	out := make([]domain.Event, 0, len(raw))

	for _, r := range raw {
		firmID := strings.TrimSpace(r.FirmID)
		userID := strings.TrimSpace(r.UserID)
		switch {
		case firmID == "":
			stats.Reject(ReasonMissingFirmID)
			continue
		case userID == "":
			stats.Reject(ReasonMissingUserID)
			continue
		case strings.TrimSpace(r.Created) == "":
			stats.Reject(ReasonMissingTimestamp)
			continue
		}

		ts, ok := ParseTime(r.Created)
		if !ok {
			stats.Reject(ReasonBadTimestamp)
			continue
		}

		out = append(out, domain.Event{
			FirmID:    firmID,
			UserID:    userID,
			Timestamp: ts,
			Type:      NormalizeEventType(r.EventType),
			NumDocs:   RepairDocCount(r.NumDocs),
			Feedback:  ValidFeedback(r.FeedbackScore),
		})
	}

	stats.Kept = len(out)
	return out, stats
}

func (c *Cleaner) normalizeTitle(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return domain.UnknownTitle
	}
	if c.titles == nil {
		return t
	}
	if canonical, ok := c.titles[strings.ToLower(t)]; ok {
		return canonical
	}
	return domain.UnknownTitle
}

// NormalizeEventType maps free text onto the four canonical types.
func NormalizeEventType(raw string) domain.EventType {
	switch domain.EventType(strings.ToUpper(strings.TrimSpace(raw))) {
	case domain.EventAssistant:
		return domain.EventAssistant
	case domain.EventVault:
		return domain.EventVault
	case domain.EventWorkflow:
		return domain.EventWorkflow
	default:
		return domain.EventOther
	}
}

// RepairDocCount defaults missing or non-positive counts to 1.
func RepairDocCount(raw *float64) int64 {
	if !valid(raw) || *raw <= 0 {
		return 1
	}
	return int64(math.Round(*raw))
}

// ValidFeedback keeps scores inside [1,5] and drops everything else.
func ValidFeedback(raw *float64) *float64 {
	if !valid(raw) || *raw < 1 || *raw > 5 {
		return nil
	}
	v := *raw
	return &v
}

func valid(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// ParseTime accepts the timestamp shapes seen in the raw exports and
// returns the instant in UTC.
func ParseTime(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
