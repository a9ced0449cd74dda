package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the closed set of order states. Free-text statuses are rejected
// at the boundary; ParseStatus is the only way in.
type Status string

const (
	StatusOrdered    Status = "ordered"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus validates a status string coming off the wire.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOrdered, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown order status: %q", s)
}

// transitions enumerates every legal status change. Delivered and Cancelled
// are terminal.
var transitions = map[Status][]Status{
	StatusOrdered:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether from -> to is a declared transition.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Order is a patient's commitment to buy one prescription from a chosen
// vendor. PrescriptionID, FinalPrice and FinalVendor are set once at
// creation and never change.
type Order struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	PrescriptionID uuid.UUID `db:"prescription_id" json:"prescription_id"`
	Status         Status    `db:"status" json:"status"`
	FinalPrice     float64   `db:"final_price" json:"final_price"`
	FinalVendor    string    `db:"final_vendor" json:"final_vendor"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
