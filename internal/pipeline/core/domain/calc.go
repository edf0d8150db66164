package domain

import (
	"math"
	"time"
)

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Ratio returns num/den, or 0 when den is 0.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Pct returns 100*num/den rounded to two decimals, or 0 when den is 0.
func Pct(num, den float64) float64 {
	return Round2(100 * Ratio(num, den))
}

// Mean averages only the values it was given. An empty Mean has no value.
type Mean struct {
	sum float64
	n   int64
}

func (m *Mean) Add(v float64) {
	m.sum += v
	m.n++
}

// AddPtr ignores nil values.
func (m *Mean) AddPtr(v *float64) {
	if v != nil {
		m.Add(*v)
	}
}

func (m Mean) Count() int64 { return m.n }

func (m Mean) Value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := Round2(m.sum / float64(m.n))
	return &v
}

func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekOf returns the Monday starting t's week.
func WeekOf(t time.Time) time.Time {
	d := DayOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func MonthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween is the calendar month difference to-from, ignoring days.
func MonthsBetween(from, to time.Time) int {
	from, to = from.UTC(), to.UTC()
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// DaysBetween is the whole-day difference between the calendar dates of from and to.
func DaysBetween(from, to time.Time) int {
	return int(DayOf(to).Sub(DayOf(from)).Hours() / 24)
}
