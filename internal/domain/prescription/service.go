package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrUnavailable covers both a missing prescription and one already ordered;
// callers cannot tell the two apart and no mutation happens in either case.
var ErrUnavailable = errors.New("prescription unavailable or already ordered")

type IssueInput struct {
	PatientID    uuid.UUID `json:"patient_id"`
	Date         string    `json:"date"`
	Medicine     string    `json:"medicine"`
	Dosage       string    `json:"dosage"`
	Instructions string    `json:"instructions"`
	Price        float64   `json:"price"`
}

// Service is the prescription ledger: it owns prescription records and their
// availability status.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Issue(ctx context.Context, doctorID uuid.UUID, in IssueInput) (*Prescription, error) {
	if in.Medicine == "" {
		return nil, fmt.Errorf("medicine is required")
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}
	if in.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}

	p := &Prescription{
		DoctorID:     doctorID,
		PatientID:    in.PatientID,
		Date:         in.Date,
		Medicine:     in.Medicine,
		Dosage:       in.Dosage,
		Instructions: in.Instructions,
		Price:        in.Price,
		Status:       StatusAvailable,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAvailable(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error) {
	return s.repo.ListAvailableByPatient(ctx, patientID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// MarkOrdered consumes an available prescription. Only the order workflow
// calls this, inside its transaction.
func (s *Service) MarkOrdered(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkOrdered(ctx, id)
}
