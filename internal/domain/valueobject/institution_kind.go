package valueobject

import "fmt"

// InstitutionKind categorizes the institution holding an account.
type InstitutionKind struct {
	value string
}

var (
	InstitutionBank        = InstitutionKind{"bank"}
	InstitutionCreditUnion = InstitutionKind{"credit_union"}
	InstitutionBrokerage   = InstitutionKind{"brokerage"}
	InstitutionWallet      = InstitutionKind{"wallet"}
)

var knownInstitutionKinds = map[string]InstitutionKind{
	"bank":         InstitutionBank,
	"credit_union": InstitutionCreditUnion,
	"brokerage":    InstitutionBrokerage,
	"wallet":       InstitutionWallet,
}

// NewInstitutionKind validates and creates an InstitutionKind from a string.
func NewInstitutionKind(s string) (InstitutionKind, error) {
	k, ok := knownInstitutionKinds[s]
	if !ok {
		return InstitutionKind{}, fmt.Errorf("unknown institution kind %q: expected bank, credit_union, brokerage, or wallet", s)
	}
	return k, nil
}

// String returns the string representation of the institution kind.
func (k InstitutionKind) String() string {
	return k.value
}

// IsZero returns true if the institution kind is empty.
func (k InstitutionKind) IsZero() bool {
	return k.value == ""
}

// Equal returns true if two institution kinds are equal.
func (k InstitutionKind) Equal(other InstitutionKind) bool {
	return k.value == other.value
}
