package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/pkg/money"
)

// RoutingErrorKind names the business reasons a plan request can be refused.
type RoutingErrorKind string

const (
	ErrKindPastDeadline      RoutingErrorKind = "past_deadline"
	ErrKindInsufficientFunds RoutingErrorKind = "insufficient_funds"
	ErrKindNoPath            RoutingErrorKind = "no_path"
)

// RoutingError is a business outcome, not a system failure: the pipeline ran
// to completion and determined the goal cannot be met. It never travels
// together with route data, and it is the only error type the planner returns
// for refusals; anything else coming out of the planner is a fault.
type RoutingError struct {
	Kind       RoutingErrorKind
	Message    string
	Shortfall  *decimal.Decimal // insufficient_funds only, always positive
	Suggestion string           // no_path only: account id worth linking, may be empty
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewPastDeadlineError reports a deadline that was already in the past when
// the request arrived.
func NewPastDeadlineError(deadline, now time.Time) *RoutingError {
	return &RoutingError{
		Kind: ErrKindPastDeadline,
		Message: fmt.Sprintf("deadline %s is before the current time %s",
			deadline.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339)),
	}
}

// NewInsufficientFundsError reports that spendable balances cannot cover the
// goal. Shortfall is how much is missing and must be positive.
func NewInsufficientFundsError(shortfall decimal.Decimal) *RoutingError {
	return &RoutingError{
		Kind:      ErrKindInsufficientFunds,
		Message:   fmt.Sprintf("available funds fall short of the goal by %s", money.FormatUSD(shortfall)),
		Shortfall: &shortfall,
	}
}

// NewNoPathError reports that no funded account reaches the target. When the
// classifier found an account that could bridge sources to the target, its id
// is carried as a suggestion.
func NewNoPathError(suggestion string) *RoutingError {
	msg := "no transfer path reaches the target account"
	if suggestion != "" {
		msg = fmt.Sprintf("%s; linking account %s would open a path", msg, suggestion)
	}
	return &RoutingError{
		Kind:       ErrKindNoPath,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// AsRoutingError unwraps err into a *RoutingError when the chain contains one.
func AsRoutingError(err error) (*RoutingError, bool) {
	var re *RoutingError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
