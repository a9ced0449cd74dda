package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aegiscare/clinic/internal/platform/auth"
	"github.com/aegiscare/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const userCols = `id, role, name, contact, address, password_hash,
	dob, height, weight, bmi,
	specialization, hospital, experience_years, location,
	created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Role, &u.Name, &u.Contact, &u.Address, &u.PasswordHash,
		&u.DOB, &u.Height, &u.Weight, &u.BMI,
		&u.Specialization, &u.Hospital, &u.ExperienceYears, &u.Location,
		&u.CreatedAt, &u.UpdatedAt)
	return &u, err
}

func (r *repoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO app_user (id, role, name, contact, address, password_hash,
			dob, height, weight, bmi,
			specialization, hospital, experience_years, location)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		u.ID, u.Role, u.Name, u.Contact, u.Address, u.PasswordHash,
		u.DOB, u.Height, u.Weight, u.BMI,
		u.Specialization, u.Hospital, u.ExperienceYears, u.Location)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// GetByIdentifier resolves a login identifier, which may be either the
// contact number or the display name.
func (r *repoPG) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	u, err := scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE contact = $1 OR name = $1`, identifier))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repoPG) ListByRole(ctx context.Context, role auth.Role, limit, offset int) ([]*User, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM app_user WHERE role = $1`, role).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+userCols+` FROM app_user WHERE role = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *repoPG) FindDoctorBySpecialization(ctx context.Context, specialization string) (*User, error) {
	u, err := scanUser(r.conn(ctx).QueryRow(ctx, `
		SELECT `+userCols+` FROM app_user
		WHERE role = $1 AND LOWER(specialization) = LOWER($2)
		ORDER BY experience_years DESC NULLS LAST
		LIMIT 1`, auth.RoleDoctor, specialization))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSpecialist
	}
	return u, err
}

func (r *repoPG) UpdateDoctorProfile(ctx context.Context, u *User) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE app_user SET hospital=$2, experience_years=$3, location=$4, updated_at=NOW()
		WHERE id = $1 AND role = $5`,
		u.ID, u.Hospital, u.ExperienceYears, u.Location, auth.RoleDoctor)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
