package valueobjects

import "fmt"

// Actor identifies who performed an activity-log-worthy action.
type Actor string

const (
	ActorAdmin    Actor = "admin"
	ActorSupplier Actor = "supplier"
	ActorSystem   Actor = "system"
)

var validActors = map[Actor]bool{
	ActorAdmin:    true,
	ActorSupplier: true,
	ActorSystem:   true,
}

func (a Actor) String() string {
	return string(a)
}

func (a Actor) IsValid() bool {
	return validActors[a]
}

func NewActor(s string) (Actor, error) {
	a := Actor(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid actor: %s", s)
	}
	return a, nil
}
