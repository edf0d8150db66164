package domain

// Rule pairs a predicate with the label it assigns.
type Rule[T any] struct {
	Match func(T) bool
	Label string
}

// FirstMatch walks rules top-down and returns the first matching label.
func FirstMatch[T any](v T, rules []Rule[T], fallback string) string {
	for _, r := range rules {
		if r.Match(v) {
			return r.Label
		}
	}
	return fallback
}

// AtLeast builds a threshold cascade over a single numeric value.
func AtLeast(thresholds []float64, labels []string) []Rule[float64] {
	rules := make([]Rule[float64], 0, len(thresholds))
	for i, th := range thresholds {
		rules = append(rules, Rule[float64]{
			Match: func(v float64) bool { return v >= th },
			Label: labels[i],
		})
	}
	return rules
}

type EngagementLevel string

const (
	PowerUser      EngagementLevel = "Power User"
	ActiveUser     EngagementLevel = "Active User"
	RegularUser    EngagementLevel = "Regular User"
	OccasionalUser EngagementLevel = "Occasional User"
	InactiveUser   EngagementLevel = "Inactive"
)

type usage struct {
	queries    int64
	activeDays int64
}

var engagementRules = []Rule[usage]{
	{Match: func(u usage) bool { return u.queries >= 50 && u.activeDays >= 15 }, Label: string(PowerUser)},
	{Match: func(u usage) bool { return u.queries >= 20 && u.activeDays >= 8 }, Label: string(ActiveUser)},
	{Match: func(u usage) bool { return u.queries >= 5 && u.activeDays >= 3 }, Label: string(RegularUser)},
	{Match: func(u usage) bool { return u.queries >= 1 }, Label: string(OccasionalUser)},
}

// ClassifyEngagement depends on nothing but query count and active days.
func ClassifyEngagement(queryCount, activeDays int64) EngagementLevel {
	return EngagementLevel(FirstMatch(usage{queryCount, activeDays}, engagementRules, string(InactiveUser)))
}

// IsPowerUsage uses the same thresholds as the Power User tier.
func IsPowerUsage(events, activeDays int64) bool {
	return events >= 50 && activeDays >= 15
}

var (
	satisfactionPerformanceRules = AtLeast([]float64{4.5, 4.0, 3.5}, []string{"Excellent", "Good", "Fair"})
	volumePerformanceRules       = AtLeast([]float64{1000, 500, 100}, []string{"High Volume", "Medium Volume", "Low Volume"})
	cohortSizeRules              = AtLeast([]float64{100, 50}, []string{"Large", "Medium"})
	retentionPerformanceRules    = AtLeast([]float64{80, 60}, []string{"High", "Medium"})
	healthStatusRules            = AtLeast([]float64{70, 50, 30}, []string{"Healthy", "Stable", "At Risk"})
	satisfactionCategoryRules    = AtLeast([]float64{4.5, 4.0, 3.5}, []string{"High Satisfaction", "Good Satisfaction", "Fair Satisfaction"})
)

const NoFeedback = "No Feedback"

// SatisfactionPerformance treats a group without valid feedback as
// "Needs Improvement".
func SatisfactionPerformance(avg *float64) string {
	if avg == nil {
		return "Needs Improvement"
	}
	return FirstMatch(*avg, satisfactionPerformanceRules, "Needs Improvement")
}

func VolumePerformance(events int64) string {
	return FirstMatch(float64(events), volumePerformanceRules, "Minimal Volume")
}

func CohortSize(users int64) string {
	return FirstMatch(float64(users), cohortSizeRules, "Small")
}

func RetentionPerformance(ratePct float64) string {
	return FirstMatch(ratePct, retentionPerformanceRules, "Low")
}

func HealthStatus(score float64) string {
	return FirstMatch(score, healthStatusRules, "Critical")
}

func SatisfactionCategory(avg *float64) string {
	if avg == nil {
		return NoFeedback
	}
	return FirstMatch(*avg, satisfactionCategoryRules, "Low Satisfaction")
}

type UserSegment string

const (
	SegmentNew         UserSegment = "New User"
	SegmentRecent      UserSegment = "Recent User"
	SegmentEstablished UserSegment = "Established User"
	SegmentLongTerm    UserSegment = "Long-term User"
)

// SegmentForTenure buckets days since signup: <=7 new, <=30 recent, <=90 established.
func SegmentForTenure(days int) UserSegment {
	switch {
	case days <= 7:
		return SegmentNew
	case days <= 30:
		return SegmentRecent
	case days <= 90:
		return SegmentEstablished
	default:
		return SegmentLongTerm
	}
}

type ActivationCategory string

const (
	ActivationImmediate ActivationCategory = "Immediate Activation"
	ActivationQuick     ActivationCategory = "Quick Activation"
	ActivationStandard  ActivationCategory = "Standard Activation"
	ActivationDelayed   ActivationCategory = "Delayed Activation"
	ActivationNone      ActivationCategory = "Not Activated"
)

func ActivationFor(daysToFirst *int) ActivationCategory {
	if daysToFirst == nil {
		return ActivationNone
	}
	switch d := *daysToFirst; {
	case d <= 1:
		return ActivationImmediate
	case d <= 7:
		return ActivationQuick
	case d <= 30:
		return ActivationStandard
	default:
		return ActivationDelayed
	}
}

// FirmSizeCategory: <100 small, 100..500 medium, above large.
func FirmSizeCategory(employees float64) SizeCategory {
	switch {
	case employees < 100:
		return SizeSmall
	case employees <= 500:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// FirmARRCategory: <100 low, 100..300 medium, above high (thousands).
func FirmARRCategory(arr float64) ARRCategory {
	switch {
	case arr < 100:
		return ARRLow
	case arr <= 300:
		return ARRMedium
	default:
		return ARRHigh
	}
}
