package valueobject

import "fmt"

// RouteCategory tags a selected route with the ranking dimension it won.
type RouteCategory struct {
	value string
}

var (
	CategoryCheapest    = RouteCategory{"cheapest"}
	CategoryFastest     = RouteCategory{"fastest"}
	CategoryRecommended = RouteCategory{"recommended"}
)

// NewRouteCategory validates and creates a RouteCategory from a string.
func NewRouteCategory(s string) (RouteCategory, error) {
	switch s {
	case "cheapest":
		return CategoryCheapest, nil
	case "fastest":
		return CategoryFastest, nil
	case "recommended":
		return CategoryRecommended, nil
	default:
		return RouteCategory{}, fmt.Errorf("unknown route category %q: expected cheapest, fastest, or recommended", s)
	}
}

// String returns the string representation of the category.
func (c RouteCategory) String() string {
	return c.value
}

// IsZero returns true if the category is empty.
func (c RouteCategory) IsZero() bool {
	return c.value == ""
}

// Equal returns true if two categories are equal.
func (c RouteCategory) Equal(other RouteCategory) bool {
	return c.value == other.value
}
