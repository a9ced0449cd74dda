package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Status is the binary availability of a prescription. The only legal
// transition is Available -> Ordered, made exactly once by the order
// workflow; there is no way back.
type Status string

const (
	StatusAvailable Status = "available"
	StatusOrdered   Status = "ordered"
)

type Prescription struct {
	ID           uuid.UUID `db:"id" json:"id"`
	DoctorID     uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	Date         string    `db:"date" json:"date"`
	Medicine     string    `db:"medicine" json:"medicine"`
	Dosage       string    `db:"dosage" json:"dosage"`
	Instructions string    `db:"instructions" json:"instructions"`
	Price        float64   `db:"price" json:"price"`
	Status       Status    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
