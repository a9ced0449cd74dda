package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aegiscare/clinic/internal/domain/order"
	"github.com/aegiscare/clinic/internal/domain/prescription"
	"github.com/aegiscare/clinic/internal/platform/db"
)

func newOrderService() (*order.Service, order.Repository) {
	orderRepo := order.NewRepoPG(globalPool)
	prescSvc := prescription.NewService(prescription.NewRepoPG(globalPool))
	return order.NewService(orderRepo, prescSvc, db.NewRunner(globalPool)), orderRepo
}

func TestPlaceOrderConsumesPrescription(t *testing.T) {
	ctx := context.Background()
	patient, doctor := seedPatientAndDoctor(t, ctx)
	p := seedPrescription(t, ctx, doctor.ID, patient.ID)
	svc, _ := newOrderService()

	o, err := svc.PlaceOrder(ctx, patient.ID, p.ID, "NetMeds", 111.6)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if o.Status != order.StatusOrdered {
		t.Errorf("status = %s, want ordered", o.Status)
	}

	got, err := prescription.NewRepoPG(globalPool).GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("reload prescription: %v", err)
	}
	if got.Status != prescription.StatusOrdered {
		t.Errorf("prescription status = %s, want ordered", got.Status)
	}

	// Second attempt hits the status precondition.
	if _, err := svc.PlaceOrder(ctx, patient.ID, p.ID, "MedPlus", 120); !errors.Is(err, prescription.ErrUnavailable) {
		t.Errorf("second order: err = %v, want ErrUnavailable", err)
	}
}

func TestPlaceOrderConcurrentRace(t *testing.T) {
	ctx := context.Background()
	patient, doctor := seedPatientAndDoctor(t, ctx)
	p := seedPrescription(t, ctx, doctor.ID, patient.ID)
	svc, repo := newOrderService()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.PlaceOrder(ctx, patient.ID, p.ID, "MedPlus", 120)
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, prescription.ErrUnavailable):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("%d concurrent orders succeeded, want exactly 1", ok)
	}

	orders, total, err := repo.ListByPatient(ctx, patient.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Errorf("found %d orders for the prescription, want exactly 1", total)
	}
}

func TestOrderLifecycleCAS(t *testing.T) {
	ctx := context.Background()
	patient, doctor := seedPatientAndDoctor(t, ctx)
	p := seedPrescription(t, ctx, doctor.ID, patient.ID)
	svc, _ := newOrderService()

	o, err := svc.PlaceOrder(ctx, patient.ID, p.ID, "PharmEasy", 126)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	for _, next := range []order.Status{order.StatusProcessing, order.StatusShipped, order.StatusDelivered} {
		if _, err := svc.UpdateStatus(ctx, o.ID, next); err != nil {
			t.Fatalf("UpdateStatus(%s): %v", next, err)
		}
	}

	// Terminal state sticks.
	if _, err := svc.UpdateStatus(ctx, o.ID, order.StatusCancelled); !errors.Is(err, order.ErrInvalidTransition) {
		t.Errorf("delivered -> cancelled: err = %v, want ErrInvalidTransition", err)
	}

	// Skips are rejected.
	p2 := seedPrescription(t, ctx, doctor.ID, patient.ID)
	o2, err := svc.PlaceOrder(ctx, patient.ID, p2.ID, "MedPlus", 130)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, o2.ID, order.StatusDelivered); !errors.Is(err, order.ErrInvalidTransition) {
		t.Errorf("ordered -> delivered: err = %v, want ErrInvalidTransition", err)
	}
}

func TestPlaceOrderDuplicateLeavesSingleOrder(t *testing.T) {
	ctx := context.Background()
	patient, doctor := seedPatientAndDoctor(t, ctx)
	p := seedPrescription(t, ctx, doctor.ID, patient.ID)
	svc, _ := newOrderService()

	if _, err := svc.PlaceOrder(ctx, patient.ID, p.ID, "MedPlus", 120); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if _, err := svc.PlaceOrder(ctx, patient.ID, p.ID, "NetMeds", 111); !errors.Is(err, prescription.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}

	repo := order.NewRepoPG(globalPool)
	_, total, err := repo.ListByPatient(ctx, patient.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	if total != 1 {
		t.Errorf("%d orders persisted, want 1", total)
	}
}
