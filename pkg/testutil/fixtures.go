package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Fixed identifiers for deterministic testing
var (
	TestPlanID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestPlanID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestUserID  = uuid.MustParse("00000000-0000-0000-0000-000000000010")
)

// FixedNow is a deterministic clock anchor: Monday 2025-03-10 15:00 UTC,
// which is 10:00 in the fixed UTC-5 frame the arrival estimator uses.
var FixedNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
