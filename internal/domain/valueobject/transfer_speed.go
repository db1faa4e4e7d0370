package valueobject

import "fmt"

// TransferSpeed is an immutable value object representing how quickly a
// transfer relationship settles.
type TransferSpeed struct {
	value string
}

// Known transfer speeds.
var (
	SpeedInstant  = TransferSpeed{"INSTANT"}
	SpeedSameDay  = TransferSpeed{"SAME_DAY"}
	SpeedOneDay   = TransferSpeed{"ONE_DAY"}
	SpeedThreeDay = TransferSpeed{"THREE_DAY"}
)

var knownSpeeds = map[string]TransferSpeed{
	"INSTANT":   SpeedInstant,
	"SAME_DAY":  SpeedSameDay,
	"ONE_DAY":   SpeedOneDay,
	"THREE_DAY": SpeedThreeDay,
}

// NewTransferSpeed validates and creates a TransferSpeed from a string.
func NewTransferSpeed(s string) (TransferSpeed, error) {
	sp, ok := knownSpeeds[s]
	if !ok {
		return TransferSpeed{}, fmt.Errorf("unknown transfer speed %q: expected INSTANT, SAME_DAY, ONE_DAY, or THREE_DAY", s)
	}
	return sp, nil
}

// String returns the string representation of the speed.
func (s TransferSpeed) String() string {
	return s.value
}

// IsInstant reports whether the speed is the instant method. Every other
// speed is ACH-class for reliability scoring.
func (s TransferSpeed) IsInstant() bool {
	return s.value == "INSTANT"
}

// IsZero returns true if the speed is empty.
func (s TransferSpeed) IsZero() bool {
	return s.value == ""
}

// Equal returns true if two speeds are equal.
func (s TransferSpeed) Equal(other TransferSpeed) bool {
	return s.value == other.value
}
