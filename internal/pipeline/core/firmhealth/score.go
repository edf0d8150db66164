package firmhealth

import "usage-metrics-service/internal/pipeline/core/domain"

// Inputs are the firm-month aggregates the composite score is built from.
type Inputs struct {
	ActiveUsers      int64
	EngagedUsers     int64
	PowerUsers       int64
	TotalQueries     int64
	HighSatisfaction int64
	ARRThousands     float64
}

func (in Inputs) engagementRate() float64 {
	return 100 * domain.Ratio(float64(in.EngagedUsers), float64(in.ActiveUsers))
}

func (in Inputs) powerRate() float64 {
	return 100 * domain.Ratio(float64(in.PowerUsers), float64(in.ActiveUsers))
}

func (in Inputs) satisfactionRate() float64 {
	return 100 * domain.Ratio(float64(in.HighSatisfaction), float64(in.TotalQueries))
}

func (in Inputs) queriesPerActiveUser() float64 {
	return domain.Ratio(float64(in.TotalQueries), float64(in.ActiveUsers))
}

func (in Inputs) arrPerActiveUser() float64 {
	return domain.Ratio(in.ARRThousands, float64(in.ActiveUsers))
}

// HealthScore:
//
//	0.3*engagement + 0.3*satisfaction + 0.2*power
//	+ (queries/user >= 10 ? 20 : queries/user*2)
//	+ (arr/user >= 5 ? 20 : arr/user*4)
//
// It is 0 when the firm had no active users or no queries. There is no
// clamp beyond the two capped volume terms.
func HealthScore(in Inputs) float64 {
	if in.ActiveUsers == 0 || in.TotalQueries == 0 {
		return 0
	}

	score := 0.3*in.engagementRate() + 0.3*in.satisfactionRate() + 0.2*in.powerRate()

	if q := in.queriesPerActiveUser(); q >= 10 {
		score += 20
	} else {
		score += q * 2
	}

	if a := in.arrPerActiveUser(); a >= 5 {
		score += 20
	} else {
		score += a * 4
	}

	return domain.Round2(score)
}
