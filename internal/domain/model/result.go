package model

// RoutingResult is the successful outcome of a plan request: the selected
// routes in cheapest, fastest, recommended order. AllRoutesRisky is true only
// when every selected route scores strictly above 70.
type RoutingResult struct {
	Routes         []Route
	AllRoutesRisky bool
}
