package valueobjects

import "fmt"

// TokenPurpose identifies which class of supplier action a capability token
// grants. Tokens for the same request are independent secrets; one purpose
// never derives from another.
type TokenPurpose string

const (
	PurposeInteraction TokenPurpose = "interaction"
	PurposeAcceptance  TokenPurpose = "acceptance"
	PurposeScheduling  TokenPurpose = "scheduling"
	PurposeValidation  TokenPurpose = "validation"
)

var validTokenPurposes = map[TokenPurpose]bool{
	PurposeInteraction: true,
	PurposeAcceptance:  true,
	PurposeScheduling:  true,
	PurposeValidation:  true,
}

// AllTokenPurposes lists every purpose in a stable order.
var AllTokenPurposes = []TokenPurpose{
	PurposeInteraction,
	PurposeAcceptance,
	PurposeScheduling,
	PurposeValidation,
}

func (p TokenPurpose) String() string {
	return string(p)
}

func (p TokenPurpose) IsValid() bool {
	return validTokenPurposes[p]
}

func NewTokenPurpose(s string) (TokenPurpose, error) {
	p := TokenPurpose(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid token purpose: %s", s)
	}
	return p, nil
}
