package model

import "github.com/cashroute/cashroute/internal/domain/valueobject"

// RiskAssessment breaks a route's risk into its scored components. Score is
// the 0-100 weighted composite, Level its classification. The component
// scores are kept so reasoning strings and operators can see what drove the
// composite.
type RiskAssessment struct {
	Score       float64
	Level       valueobject.RiskLevel
	Timing      int
	Reliability int
	Complexity  int
}
