package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"bookwell/backend/internal/domain"
	"bookwell/backend/internal/store"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

type scheduleTx struct {
	tx bun.Tx
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	var appt domain.Appointment
	err := r.db.NewSelect().
		Model(&appt).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return appt, nil
}

func (r *AppointmentRepo) List(ctx context.Context, windowStart, windowEnd *time.Time) ([]domain.Appointment, error) {
	rows := make([]domain.Appointment, 0)
	q := r.db.NewSelect().
		Model(&rows).
		Relation("Client").
		Relation("Staff").
		Relation("Service")
	if windowStart != nil {
		q = q.Where("appt.start_time >= ?", *windowStart)
	}
	if windowEnd != nil {
		q = q.Where("appt.start_time < ?", *windowEnd)
	}
	if err := q.OrderExpr("appt.start_time ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Appointment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// InStaffSchedule serializes fn against every other schedule transaction for
// the same staff member via a transaction-scoped advisory lock. The exclusion
// constraint on appointments remains as a backstop for writes that bypass it.
func (r *AppointmentRepo) InStaffSchedule(ctx context.Context, staffID uuid.UUID, fn func(ctx context.Context, tx store.ScheduleTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockStaffSchedule(ctx, tx, staffID); err != nil {
			return err
		}
		return fn(ctx, scheduleTx{tx: tx})
	})
}

func lockStaffSchedule(ctx context.Context, tx bun.Tx, staffID uuid.UUID) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", staffID.String()).Exec(ctx)
	return err
}

func (t scheduleTx) ListByStaffWindow(ctx context.Context, staffID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error) {
	rows := make([]domain.Appointment, 0)
	err := t.tx.NewSelect().
		Model(&rows).
		Where("staff_id = ?", staffID).
		Where("start_time >= ?", windowStart).
		Where("start_time < ?", windowEnd).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t scheduleTx) CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	if _, err := t.tx.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Appointment{}, mapScheduleError(err)
	}
	return m, nil
}

func (t scheduleTx) UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	res, err := t.tx.NewUpdate().
		Model(&m).
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, mapScheduleError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return m, nil
}

// mapScheduleError translates Postgres write failures into store errors. A
// 23P01 aborts the transaction, so the colliding row cannot be looked up here;
// the id-carrying conflict path is the pre-insert check under the advisory
// lock, and this mapping is only the constraint backstop.
func mapScheduleError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23P01" && pgErr.ConstraintName == "appointments_no_overlap" {
			return &store.ConflictError{}
		}
		if pgErr.Code == "23503" {
			return store.ErrInvalidReference
		}
	}
	return err
}
