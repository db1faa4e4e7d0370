package valueobject

import "fmt"

// TransactionStatus is an immutable value object for the state of a pending
// ledger transaction.
type TransactionStatus struct {
	value string
}

var (
	StatusPending = TransactionStatus{"pending"}
	StatusCleared = TransactionStatus{"cleared"}
	StatusFailed  = TransactionStatus{"failed"}
)

var knownStatuses = map[string]TransactionStatus{
	"pending": StatusPending,
	"cleared": StatusCleared,
	"failed":  StatusFailed,
}

// NewTransactionStatus validates and creates a TransactionStatus from a string.
func NewTransactionStatus(s string) (TransactionStatus, error) {
	st, ok := knownStatuses[s]
	if !ok {
		return TransactionStatus{}, fmt.Errorf("unknown transaction status %q: expected pending, cleared, or failed", s)
	}
	return st, nil
}

// String returns the string representation of the status.
func (s TransactionStatus) String() string {
	return s.value
}

// IsPending reports whether the transaction still counts against available
// balance.
func (s TransactionStatus) IsPending() bool {
	return s.value == "pending"
}

// IsZero returns true if the status is empty.
func (s TransactionStatus) IsZero() bool {
	return s.value == ""
}

// Equal returns true if two statuses are equal.
func (s TransactionStatus) Equal(other TransactionStatus) bool {
	return s.value == other.value
}
