package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	appointments []*Appointment
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	cp := *a
	m.appointments = append(m.appointments, &cp)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, _, _ int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, _, _ int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func TestBook(t *testing.T) {
	svc := NewService(&mockRepo{})
	patientID, doctorID := uuid.New(), uuid.New()

	a, err := svc.Book(context.Background(), patientID, BookInput{
		DoctorID: doctorID,
		Date:     "2026-09-14",
		Time:     "10:30",
		Reason:   "follow-up",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("appointment id not assigned")
	}
	if a.PatientID != patientID || a.DoctorID != doctorID {
		t.Errorf("parties not recorded: %+v", a)
	}
}

func TestBookValidation(t *testing.T) {
	svc := NewService(&mockRepo{})
	patientID := uuid.New()
	cases := []BookInput{
		{Date: "2026-09-14", Time: "10:30"},
		{DoctorID: uuid.New(), Time: "10:30"},
		{DoctorID: uuid.New(), Date: "2026-09-14"},
	}
	for _, in := range cases {
		if _, err := svc.Book(context.Background(), patientID, in); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Book(%+v): err = %v, want ErrMissingFields", in, err)
		}
	}
}

func TestListScoping(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()
	doctorID := uuid.New()
	p1, p2 := uuid.New(), uuid.New()

	for _, pid := range []uuid.UUID{p1, p1, p2} {
		if _, err := svc.Book(ctx, pid, BookInput{DoctorID: doctorID, Date: "2026-09-14", Time: "09:00"}); err != nil {
			t.Fatalf("Book: %v", err)
		}
	}

	mine, total, err := svc.ListByPatient(ctx, p1, 20, 0)
	if err != nil || total != 2 || len(mine) != 2 {
		t.Errorf("ListByPatient = %d items, total %d, err %v; want 2", len(mine), total, err)
	}
	all, total, err := svc.ListByDoctor(ctx, doctorID, 20, 0)
	if err != nil || total != 3 || len(all) != 3 {
		t.Errorf("ListByDoctor = %d items, total %d, err %v; want 3", len(all), total, err)
	}
}
