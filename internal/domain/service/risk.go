package service

import (
	"time"

	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

// RiskCalculator scores a built route on how tight its timing is against the
// deadline, how reliable its transfer methods are, and how many hops it
// chains together.
type RiskCalculator struct{}

// NewRiskCalculator creates a new RiskCalculator.
func NewRiskCalculator() *RiskCalculator {
	return &RiskCalculator{}
}

// Assess combines the three component scores into the weighted composite:
// timing carries half the weight, reliability 0.3, complexity 0.2.
func (c *RiskCalculator) Assess(route model.Route, deadline time.Time) model.RiskAssessment {
	timing := timingRisk(deadline.Sub(route.Arrival))
	reliability := reliabilityRisk(route.Steps)
	complexity := complexityRisk(len(route.Steps))

	score := float64(timing)*0.5 + float64(reliability)*0.3 + float64(complexity)*0.2

	return model.RiskAssessment{
		Score:       score,
		Level:       valueobject.RiskLevelFromScore(score),
		Timing:      timing,
		Reliability: reliability,
		Complexity:  complexity,
	}
}

// timingRisk buckets the buffer between deadline and arrival. The 48h, 24h,
// and 6h edges belong to the lower-risk bucket.
func timingRisk(buffer time.Duration) int {
	switch {
	case buffer < 0:
		return 100
	case buffer >= 48*time.Hour:
		return 0
	case buffer >= 24*time.Hour:
		return 20
	case buffer >= 6*time.Hour:
		return 50
	default:
		return 80
	}
}

// reliabilityRisk scores the transfer methods: all-instant routes carry none,
// all-ACH routes the most, mixed routes sit between.
func reliabilityRisk(steps []model.TransferStep) int {
	var instant, ach bool
	for _, step := range steps {
		if step.Speed.IsInstant() {
			instant = true
		} else {
			ach = true
		}
	}

	switch {
	case instant && ach:
		return 30
	case ach:
		return 50
	default:
		return 0
	}
}

// complexityRisk scores hop count: single-hop routes carry none, two or
// three hops a little, four or more the most.
func complexityRisk(stepCount int) int {
	switch {
	case stepCount <= 1:
		return 0
	case stepCount <= 3:
		return 20
	default:
		return 40
	}
}
