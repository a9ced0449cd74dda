package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/aegiscare/clinic/internal/platform/auth"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	ListByRole(ctx context.Context, role auth.Role, limit, offset int) ([]*User, int, error)
	FindDoctorBySpecialization(ctx context.Context, specialization string) (*User, error)
	UpdateDoctorProfile(ctx context.Context, u *User) error
}
