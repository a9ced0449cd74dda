package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aegiscare/clinic/internal/domain/identity"
	"github.com/aegiscare/clinic/internal/platform/auth"
)

func TestRegisterLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenIssuer("integration-secret", time.Hour)
	svc := identity.NewService(identity.NewRepoPG(globalPool), tokens)

	tag := uuid.NewString()[:8]
	u, err := svc.Register(ctx, identity.RegisterInput{
		Role:     auth.RolePatient,
		Name:     "reg-" + tag,
		Contact:  "reg-contact-" + tag,
		Password: "secret123",
		Height:   175,
		Weight:   70,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.BMI == nil || *u.BMI != 22.86 {
		t.Errorf("bmi = %v, want 22.86", u.BMI)
	}
	if u.DOB != nil {
		t.Errorf("dob = %q, want NULL when omitted", *u.DOB)
	}

	token, logged, err := svc.Login(ctx, "reg-contact-"+tag, "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != u.ID {
		t.Errorf("logged in as %s, registered as %s", logged.ID, u.ID)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Role != auth.RolePatient {
		t.Errorf("token role = %s, want patient", claims.Role)
	}
}

func TestDoctorDirectoryLookup(t *testing.T) {
	ctx := context.Background()
	svc := identity.NewService(identity.NewRepoPG(globalPool), auth.NewTokenIssuer("s", time.Hour))
	seedPatientAndDoctor(t, ctx)

	found, err := svc.FindBySpecialization(ctx, "cardiologist")
	if err != nil {
		t.Fatalf("FindBySpecialization: %v", err)
	}
	if found.Role != auth.RoleDoctor || found.Specialization == nil {
		t.Errorf("unexpected lookup result: %+v", found)
	}
}
