package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aegiscare/clinic/internal/domain/identity"
	"github.com/aegiscare/clinic/internal/domain/prescription"
	"github.com/aegiscare/clinic/internal/platform/auth"
	"github.com/aegiscare/clinic/internal/platform/db"
)

var globalPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	connStr, cleanup, err := startPostgresContainer(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup postgres container: %v\n", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "create pool: %v\n", err)
		os.Exit(1)
	}

	if _, err := db.NewMigrator(pool, findMigrationsDir()).Up(ctx); err != nil {
		pool.Close()
		cleanup()
		fmt.Fprintf(os.Stderr, "run migrations: %v\n", err)
		os.Exit(1)
	}

	globalPool = pool
	code := m.Run()
	pool.Close()
	cleanup()
	os.Exit(code)
}

// findMigrationsDir locates the migrations directory relative to this file.
func findMigrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	// test/integration -> repo root
	return filepath.Join(dir, "..", "..", "migrations")
}

// seedPatientAndDoctor inserts one patient and one doctor directly through
// the identity repository.
func seedPatientAndDoctor(t *testing.T, ctx context.Context) (patient, doctor *identity.User) {
	t.Helper()
	repo := identity.NewRepoPG(globalPool)

	tag := uuid.NewString()[:8]
	spec := "Cardiologist"
	patient = &identity.User{
		Role:         auth.RolePatient,
		Name:         "patient-" + tag,
		Contact:      "p-" + tag,
		PasswordHash: "x",
	}
	if err := repo.Create(ctx, patient); err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	doctor = &identity.User{
		Role:           auth.RoleDoctor,
		Name:           "doctor-" + tag,
		Contact:        "d-" + tag,
		PasswordHash:   "x",
		Specialization: &spec,
	}
	if err := repo.Create(ctx, doctor); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	return patient, doctor
}

// seedPrescription inserts one available prescription for the pair.
func seedPrescription(t *testing.T, ctx context.Context, doctorID, patientID uuid.UUID) *prescription.Prescription {
	t.Helper()
	repo := prescription.NewRepoPG(globalPool)

	p := &prescription.Prescription{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      "2026-08-30",
		Medicine:  "Paracetamol 500mg",
		Dosage:    "1-0-1",
		Price:     120,
		Status:    prescription.StatusAvailable,
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("seed prescription: %v", err)
	}
	return p
}
