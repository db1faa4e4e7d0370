package valueobject

import "fmt"

// RiskLevel is an immutable value object classifying how risky a route is.
type RiskLevel struct {
	value string
}

var (
	RiskLow    = RiskLevel{value: "low"}
	RiskMedium = RiskLevel{value: "medium"}
	RiskHigh   = RiskLevel{value: "high"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the RiskLevel from a composite risk score.
// Scores of 30 and below are low, 60 and below medium, everything above high.
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score <= 30:
		return RiskLow
	case score <= 60:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
