package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrMissingFields = errors.New("doctor, date and time are required")

type BookInput struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Reason   string    `json:"reason"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Book(ctx context.Context, patientID uuid.UUID, in BookInput) (*Appointment, error) {
	if in.DoctorID == uuid.Nil || in.Date == "" || in.Time == "" {
		return nil, ErrMissingFields
	}

	a := &Appointment{
		PatientID: patientID,
		DoctorID:  in.DoctorID,
		Date:      in.Date,
		Time:      in.Time,
		Reason:    in.Reason,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByDoctor(ctx, doctorID, limit, offset)
}
