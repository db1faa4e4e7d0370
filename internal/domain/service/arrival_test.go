package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashroute/cashroute/internal/domain/service"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
)

func newEstimator() *service.ArrivalEstimator {
	return service.NewArrivalEstimator(service.NewBusinessCalendar())
}

// The cutoff frame is fixed UTC-5, so 17:00 EST is 22:00 UTC. All anchors
// live in March 2025, where the 10th is a Monday.
func TestArrivalEstimator_EstimateArrival(t *testing.T) {
	estimator := newEstimator()

	cases := []struct {
		name       string
		speed      valueobject.TransferSpeed
		initiation time.Time
		want       time.Time
	}{
		{
			"instant adds five minutes",
			valueobject.SpeedInstant, march(10, 15, 0), march(10, 15, 5),
		},
		{
			"instant ignores weekends",
			valueobject.SpeedInstant, march(15, 17, 0), march(15, 17, 5),
		},
		{
			"same day before cutoff lands at the cutoff",
			valueobject.SpeedSameDay, march(10, 15, 0), march(10, 22, 0),
		},
		{
			"same day exactly at cutoff misses the window",
			valueobject.SpeedSameDay, march(10, 22, 0), march(11, 22, 0),
		},
		{
			"same day after cutoff rolls to the next business day",
			valueobject.SpeedSameDay, march(10, 23, 30), march(11, 22, 0),
		},
		{
			"same day on Saturday waits for Monday",
			valueobject.SpeedSameDay, march(15, 16, 0), march(17, 22, 0),
		},
		{
			"same day cutoff evaluates in the settlement frame, not UTC",
			// 03:00 UTC Tuesday is still 22:00 Monday in the UTC-5 frame.
			valueobject.SpeedSameDay, march(11, 3, 0), march(11, 22, 0),
		},
		{
			"one day Monday before cutoff lands Tuesday",
			valueobject.SpeedOneDay, march(10, 15, 0), march(11, 22, 0),
		},
		{
			"one day Thursday before cutoff lands Friday",
			valueobject.SpeedOneDay, march(13, 15, 0), march(14, 22, 0),
		},
		{
			"one day Thursday after cutoff waits for Tuesday",
			valueobject.SpeedOneDay, march(13, 23, 0), march(18, 22, 0),
		},
		{
			"one day Friday joins the weekend batch even before cutoff",
			valueobject.SpeedOneDay, march(14, 15, 0), march(18, 22, 0),
		},
		{
			"one day Saturday waits for Tuesday",
			valueobject.SpeedOneDay, march(15, 17, 0), march(18, 22, 0),
		},
		{
			"one day Sunday waits for Tuesday",
			valueobject.SpeedOneDay, march(16, 17, 0), march(18, 22, 0),
		},
		{
			"one day Monday after cutoff takes two days",
			valueobject.SpeedOneDay, march(10, 23, 0), march(12, 22, 0),
		},
		{
			"one day Wednesday after cutoff takes two days",
			valueobject.SpeedOneDay, march(12, 22, 30), march(14, 22, 0),
		},
		{
			"three day walks business days",
			valueobject.SpeedThreeDay, march(10, 15, 0), march(13, 22, 0),
		},
		{
			"three day from Friday spans the weekend",
			valueobject.SpeedThreeDay, march(14, 15, 0), march(19, 22, 0),
		},
		{
			"three day from Saturday starts counting Monday",
			valueobject.SpeedThreeDay, march(15, 17, 0), march(19, 22, 0),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := estimator.EstimateArrival(tc.speed, tc.initiation)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
		})
	}
}

func TestArrivalEstimator_KeepsInitiationLocation(t *testing.T) {
	estimator := newEstimator()

	pacific := time.FixedZone("PST", -8*60*60)
	initiation := time.Date(2025, time.March, 10, 7, 0, 0, 0, pacific) // 15:00 UTC

	got, err := estimator.EstimateArrival(valueobject.SpeedSameDay, initiation)
	require.NoError(t, err)

	assert.Same(t, pacific, got.Location())
	assert.True(t, got.Equal(march(10, 22, 0)), "got %s", got)
}

func TestArrivalEstimator_UnknownSpeed(t *testing.T) {
	estimator := newEstimator()

	var speed valueobject.TransferSpeed
	_, err := estimator.EstimateArrival(speed, mondayMorning)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no arrival rule")
}
