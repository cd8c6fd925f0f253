package subscriber

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a subscriber. It starts at
// StatusPending and transitions once, monotonically, to StatusConfirmed.
type Status string

const (
	// StatusPending means the subscriber signed up but has not yet visited
	// the emailed confirmation link.
	StatusPending Status = "pending_confirmation"
	// StatusConfirmed means the subscriber proved control of the address.
	// Confirmed subscribers receive newsletter issues.
	StatusConfirmed Status = "confirmed"
)

func (s Status) String() string { return string(s) }

// Subscriber is a single mailing-list member.
// Email and Name are immutable once stored; Email is unique per directory.
type Subscriber struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Status    Status
	CreatedAt time.Time
}

// New validates the input and builds a pending subscriber with a fresh id.
// It is the only constructor; stores persist what it produces.
func New(email, name string) (Subscriber, error) {
	parsedEmail, err := ParseEmail(email)
	if err != nil {
		return Subscriber{}, err
	}
	parsedName, err := ParseName(name)
	if err != nil {
		return Subscriber{}, err
	}

	return Subscriber{
		ID:        uuid.New(),
		Email:     parsedEmail,
		Name:      parsedName,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}
