package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aegiscare/clinic/internal/domain/prescription"
	"github.com/aegiscare/clinic/internal/platform/db"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrMissingFields     = errors.New("vendor and a positive final price are required")
)

// Ledger is the slice of the prescription service the workflow needs: read a
// prescription and consume it exactly once.
type Ledger interface {
	Get(ctx context.Context, id uuid.UUID) (*prescription.Prescription, error)
	MarkOrdered(ctx context.Context, id uuid.UUID) error
}

// Service is the order workflow. It owns the transaction boundary around
// prescription consumption and order creation: both happen or neither does.
type Service struct {
	repo   Repository
	ledger Ledger
	tx     db.Runner
}

func NewService(repo Repository, ledger Ledger, tx db.Runner) *Service {
	return &Service{repo: repo, ledger: ledger, tx: tx}
}

// PlaceOrder consumes an available prescription and records the order with
// the vendor-chosen final price. The new order starts in StatusOrdered.
func (s *Service) PlaceOrder(ctx context.Context, patientID, prescriptionID uuid.UUID, vendor string, finalPrice float64) (*Order, error) {
	if vendor == "" || finalPrice <= 0 {
		return nil, ErrMissingFields
	}
	if prescriptionID == uuid.Nil {
		return nil, ErrMissingFields
	}

	p, err := s.ledger.Get(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	// A prescription issued to someone else is indistinguishable from a
	// missing one; don't leak its existence.
	if p.PatientID != patientID {
		return nil, prescription.ErrUnavailable
	}

	o := &Order{
		PatientID:      patientID,
		PrescriptionID: prescriptionID,
		Status:         StatusOrdered,
		FinalPrice:     finalPrice,
		FinalVendor:    vendor,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ledger.MarkOrdered(ctx, prescriptionID); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus advances an order through its lifecycle. Only declared
// transitions pass; terminal states reject everything.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, next Status) (*Order, error) {
	if _, err := ParseStatus(string(next)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(o.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, o.Status, next); err != nil {
		return nil, err
	}

	o.Status = next
	return o, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Order, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]*Order, int, error) {
	return s.repo.ListAll(ctx, limit, offset)
}
