package valueobject

import "fmt"

// AccountType is an immutable value object describing the kind of account
// money moves between.
type AccountType struct {
	value string
}

// Known account types.
var (
	AccountChecking   = AccountType{"checking"}
	AccountSavings    = AccountType{"savings"}
	AccountCredit     = AccountType{"credit"}
	AccountInvestment = AccountType{"investment"}
)

var knownAccountTypes = map[string]AccountType{
	"checking":   AccountChecking,
	"savings":    AccountSavings,
	"credit":     AccountCredit,
	"investment": AccountInvestment,
}

// NewAccountType validates and creates an AccountType from a string.
func NewAccountType(s string) (AccountType, error) {
	at, ok := knownAccountTypes[s]
	if !ok {
		return AccountType{}, fmt.Errorf("unknown account type %q: expected checking, savings, credit, or investment", s)
	}
	return at, nil
}

// String returns the string representation of the account type.
func (t AccountType) String() string {
	return t.value
}

// IsZero returns true if the account type is empty.
func (t AccountType) IsZero() bool {
	return t.value == ""
}

// Equal returns true if two account types are equal.
func (t AccountType) Equal(other AccountType) bool {
	return t.value == other.value
}
