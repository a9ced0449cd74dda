package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aegiscare/clinic/internal/platform/auth"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNoSpecialist       = errors.New("no specialist of this type available")
	ErrInvalidCredentials = errors.New("invalid identifier or password")
)

// RegisterInput carries the registration form. Patient and doctor variants
// share name/contact/password; the rest depends on the role.
type RegisterInput struct {
	Role     auth.Role `json:"role"`
	Name     string    `json:"name"`
	Contact  string    `json:"contact"`
	Address  string    `json:"address"`
	Password string    `json:"password"`

	DOB    string  `json:"dob"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`

	Specialization  string `json:"specialization"`
	Hospital        string `json:"hospital"`
	ExperienceYears int    `json:"experience_years"`
	Location        string `json:"location"`
}

type Service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

func NewService(repo Repository, tokens *auth.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if _, err := auth.ParseRole(string(in.Role)); err != nil {
		return nil, err
	}
	if in.Role == auth.RoleAdmin {
		return nil, fmt.Errorf("admin accounts cannot self-register")
	}
	if in.Name == "" || in.Contact == "" {
		return nil, fmt.Errorf("name and contact are required")
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Role:         in.Role,
		Name:         in.Name,
		Contact:      in.Contact,
		PasswordHash: string(hash),
	}
	if in.Address != "" {
		u.Address = &in.Address
	}

	switch in.Role {
	case auth.RolePatient:
		if in.Height <= 0 || in.Weight <= 0 {
			return nil, fmt.Errorf("height and weight must be positive")
		}
		bmi := ComputeBMI(in.Weight, in.Height)
		if in.DOB != "" {
			u.DOB = &in.DOB
		}
		u.Height = &in.Height
		u.Weight = &in.Weight
		u.BMI = &bmi
	case auth.RoleDoctor:
		if in.Specialization == "" {
			return nil, fmt.Errorf("specialization is required")
		}
		u.Specialization = &in.Specialization
		u.Hospital = &in.Hospital
		u.ExperienceYears = &in.ExperienceYears
		u.Location = &in.Location
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login resolves the identifier (contact or name), checks the password, and
// mints a session token.
func (s *Service) Login(ctx context.Context, identifier, password string) (string, *User, error) {
	u, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.ListByRole(ctx, auth.RoleDoctor, limit, offset)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.ListByRole(ctx, auth.RolePatient, limit, offset)
}

// FindBySpecialization is the doctor-directory lookup used by the triage
// assistant: case-insensitive exact match on specialization.
func (s *Service) FindBySpecialization(ctx context.Context, specialization string) (*User, error) {
	if specialization == "" {
		return nil, ErrNoSpecialist
	}
	return s.repo.FindDoctorBySpecialization(ctx, specialization)
}

func (s *Service) UpdateDoctorProfile(ctx context.Context, id uuid.UUID, hospital string, experienceYears int, location string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != auth.RoleDoctor {
		return nil, fmt.Errorf("user %s is not a doctor", id)
	}

	u.Hospital = &hospital
	u.ExperienceYears = &experienceYears
	u.Location = &location
	if err := s.repo.UpdateDoctorProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
