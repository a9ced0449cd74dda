package identity

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/aegiscare/clinic/internal/platform/auth"
)

// User is a registered patient, doctor, or admin. Patients carry the
// biometric fields; doctors carry the practice fields.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Role         auth.Role `db:"role" json:"role"`
	Name         string    `db:"name" json:"name"`
	Contact      string    `db:"contact" json:"contact"`
	Address      *string   `db:"address" json:"address,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`

	// Patient fields
	DOB    *string  `db:"dob" json:"dob,omitempty"`
	Height *float64 `db:"height" json:"height,omitempty"`
	Weight *float64 `db:"weight" json:"weight,omitempty"`
	BMI    *float64 `db:"bmi" json:"bmi,omitempty"`

	// Doctor fields
	Specialization  *string `db:"specialization" json:"specialization,omitempty"`
	Hospital        *string `db:"hospital" json:"hospital,omitempty"`
	ExperienceYears *int    `db:"experience_years" json:"experience_years,omitempty"`
	Location        *string `db:"location" json:"location,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ComputeBMI derives body mass index from weight in kilograms and height in
// centimeters, rounded to two decimals.
func ComputeBMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*100) / 100
}
