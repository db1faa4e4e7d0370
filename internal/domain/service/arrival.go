package service

import (
	"fmt"
	"time"

	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

// estZone is the fixed UTC-5 frame all cutoff arithmetic runs in. Daylight
// saving is deliberately not modeled; the offset holds year-round.
var estZone = time.FixedZone("EST", -5*60*60)

// cutoffHour is the 17:00 EST settlement cutoff shared by every non-instant
// speed.
const cutoffHour = 17

// ArrivalEstimator maps a transfer speed and an initiation instant to the
// estimated settlement instant. All cutoff decisions happen in the fixed EST
// frame; results come back in the initiation instant's location.
type ArrivalEstimator struct {
	calendar *BusinessCalendar
}

// NewArrivalEstimator creates an ArrivalEstimator on top of the given
// calendar.
func NewArrivalEstimator(calendar *BusinessCalendar) *ArrivalEstimator {
	return &ArrivalEstimator{calendar: calendar}
}

// EstimateArrival dispatches on the speed class. A speed without an arrival
// rule is a fault, not a business outcome.
func (e *ArrivalEstimator) EstimateArrival(speed valueobject.TransferSpeed, initiation time.Time) (time.Time, error) {
	switch speed {
	case valueobject.SpeedInstant:
		return initiation.Add(5 * time.Minute), nil
	case valueobject.SpeedSameDay:
		return e.sameDay(initiation), nil
	case valueobject.SpeedOneDay:
		return e.oneDay(initiation), nil
	case valueobject.SpeedThreeDay:
		return e.threeDay(initiation)
	default:
		return time.Time{}, fmt.Errorf("no arrival rule for transfer speed %q", speed.String())
	}
}

// sameDay settles at the cutoff of the initiation's EST calendar day when the
// transfer still makes the window, otherwise at the cutoff of the next
// business day.
func (e *ArrivalEstimator) sameDay(initiation time.Time) time.Time {
	est := initiation.In(estZone)
	if e.calendar.IsBusinessDay(est) && beforeCutoff(est) {
		return atCutoff(est).In(initiation.Location())
	}
	return atCutoff(e.calendar.NextBusinessDay(est)).In(initiation.Location())
}

// oneDay settles at the cutoff of the next calendar day for Monday-Thursday
// initiations that make the window. Thursday submissions that miss the cutoff
// and anything initiated Friday through Sunday wait for the following
// Tuesday. Monday-Wednesday submissions after the cutoff are picked up the
// next morning and land a day later.
func (e *ArrivalEstimator) oneDay(initiation time.Time) time.Time {
	est := initiation.In(estZone)
	wd := est.Weekday()
	switch {
	case wd >= time.Monday && wd <= time.Thursday && beforeCutoff(est):
		return atCutoff(est.AddDate(0, 0, 1)).In(initiation.Location())
	case wd == time.Thursday || wd == time.Friday || wd == time.Saturday || wd == time.Sunday:
		return atCutoff(nextWeekday(est, time.Tuesday)).In(initiation.Location())
	default:
		return atCutoff(est.AddDate(0, 0, 2)).In(initiation.Location())
	}
}

// threeDay settles at the cutoff three business days past the initiation's
// EST calendar day.
func (e *ArrivalEstimator) threeDay(initiation time.Time) (time.Time, error) {
	est := initiation.In(estZone)
	day, err := e.calendar.AddBusinessDays(est, 3)
	if err != nil {
		return time.Time{}, err
	}
	return atCutoff(day).In(initiation.Location()), nil
}

// beforeCutoff reports whether the EST-framed instant is strictly before the
// 17:00 cutoff of its day.
func beforeCutoff(est time.Time) bool {
	return est.Hour() < cutoffHour
}

// atCutoff pins the EST-framed instant's calendar day to the 17:00 cutoff.
func atCutoff(est time.Time) time.Time {
	return time.Date(est.Year(), est.Month(), est.Day(), cutoffHour, 0, 0, 0, estZone)
}

// nextWeekday walks forward from t to the first following day with the given
// weekday, keeping the time of day.
func nextWeekday(t time.Time, wd time.Weekday) time.Time {
	cur := t.AddDate(0, 0, 1)
	for cur.Weekday() != wd {
		cur = cur.AddDate(0, 0, 1)
	}
	return cur
}
