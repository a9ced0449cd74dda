package prescription

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error)
	ListAvailableByPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error)
	// MarkOrdered flips Available -> Ordered with compare-and-set semantics:
	// it must return ErrUnavailable when the row is missing or already
	// ordered, and under concurrent calls for one id exactly one succeeds.
	MarkOrdered(ctx context.Context, id uuid.UUID) error
}
