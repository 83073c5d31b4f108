package valueobjects

import "fmt"

// Urgency is the urgency class assigned by the administrator when opening a
// request. It does not affect the state machine, only reminder copy and
// dashboard ordering.
type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencyUrgent    Urgency = "urgente"
	UrgencyEmergency Urgency = "emergencia"
)

var validUrgencies = map[Urgency]bool{
	UrgencyNormal:    true,
	UrgencyUrgent:    true,
	UrgencyEmergency: true,
}

func (u Urgency) String() string {
	return string(u)
}

func (u Urgency) IsValid() bool {
	return validUrgencies[u]
}

func NewUrgency(s string) (Urgency, error) {
	u := Urgency(s)
	if !u.IsValid() {
		return "", fmt.Errorf("invalid urgency: %s", s)
	}
	return u, nil
}
