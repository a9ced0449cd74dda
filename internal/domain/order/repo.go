package order

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Order, int, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Order, int, error)
	// UpdateStatus moves id from expected current to next, compare-and-set
	// on the current status so concurrent updates cannot skip states.
	UpdateStatus(ctx context.Context, id uuid.UUID, current, next Status) error
}
