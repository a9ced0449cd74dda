package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

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

const orderCols = `id, patient_id, prescription_id, status, final_price, final_vendor,
	created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.PatientID, &o.PrescriptionID, &o.Status,
		&o.FinalPrice, &o.FinalVendor, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *repoPG) Create(ctx context.Context, o *Order) error {
	o.ID = uuid.New()
	// prescription_id carries a UNIQUE constraint, so even if two workflows
	// somehow pass the ledger check, the second insert fails here and its
	// transaction rolls back.
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pharmacy_order (id, patient_id, prescription_id, status, final_price, final_vendor)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.PatientID, o.PrescriptionID, o.Status, o.FinalPrice, o.FinalVendor)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.conn(ctx).QueryRow(ctx,
		`SELECT `+orderCols+` FROM pharmacy_order WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Order, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM pharmacy_order WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+orderCols+` FROM pharmacy_order WHERE patient_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return collectOrders(rows, total)
}

func (r *repoPG) ListAll(ctx context.Context, limit, offset int) ([]*Order, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM pharmacy_order`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+orderCols+` FROM pharmacy_order
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return collectOrders(rows, total)
}

func collectOrders(rows pgx.Rows, total int) ([]*Order, int, error) {
	var items []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, o)
	}
	return items, total, rows.Err()
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, current, next Status) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE pharmacy_order SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`,
		id, next, current)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either the order vanished or its status moved under us; the
		// service re-reads to tell the difference.
		return ErrInvalidTransition
	}
	return nil
}
