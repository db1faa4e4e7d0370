package service

import (
	"fmt"
	"time"
)

// BusinessCalendar classifies weekdays and advances instants by whole
// business days. Saturday and Sunday are the only non-business days; there is
// no holiday calendar.
type BusinessCalendar struct{}

// NewBusinessCalendar creates a new BusinessCalendar.
func NewBusinessCalendar() *BusinessCalendar {
	return &BusinessCalendar{}
}

// IsBusinessDay reports whether t falls on Monday through Friday, evaluated
// in t's own location.
func (c *BusinessCalendar) IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// AddBusinessDays advances t one calendar day at a time until n business days
// have been consumed, keeping the time of day. n must not be negative.
func (c *BusinessCalendar) AddBusinessDays(t time.Time, n int) (time.Time, error) {
	if n < 0 {
		return time.Time{}, fmt.Errorf("business day count must not be negative, got %d", n)
	}
	cur := t
	for consumed := 0; consumed < n; {
		cur = cur.AddDate(0, 0, 1)
		if c.IsBusinessDay(cur) {
			consumed++
		}
	}
	return cur, nil
}

// NextBusinessDay returns the first business day strictly after t, at the
// same time of day. A business-day input still advances at least one day.
func (c *BusinessCalendar) NextBusinessDay(t time.Time) time.Time {
	cur := t.AddDate(0, 0, 1)
	for !c.IsBusinessDay(cur) {
		cur = cur.AddDate(0, 0, 1)
	}
	return cur
}
