package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"bookwell/backend/internal/domain"
	"bookwell/backend/internal/store"
)

type ClientRepo struct {
	db *bun.DB
}

func NewClientRepo(db *bun.DB) *ClientRepo {
	return &ClientRepo{db: db}
}

func (r *ClientRepo) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	m := c
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Client{}, mapClientError(err)
	}
	return m, nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	var c domain.Client
	err := r.db.NewSelect().
		Model(&c).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, store.ErrNotFound
		}
		return domain.Client{}, err
	}
	return c, nil
}

func (r *ClientRepo) Update(ctx context.Context, c domain.Client) (domain.Client, error) {
	m := c
	res, err := r.db.NewUpdate().
		Model(&m).
		Column("name", "email", "phone").
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Client{}, mapClientError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Client{}, err
	}
	if affected == 0 {
		return domain.Client{}, store.ErrNotFound
	}
	return m, nil
}

func (r *ClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Client)(nil)).
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

func (r *ClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	rows := make([]domain.Client, 0)
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func mapClientError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrDuplicateEmail
	}
	return err
}

type StaffRepo struct {
	db *bun.DB
}

func NewStaffRepo(db *bun.DB) *StaffRepo {
	return &StaffRepo{db: db}
}

func (r *StaffRepo) Create(ctx context.Context, s domain.Staff) (domain.Staff, error) {
	m := s
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Staff{}, err
	}
	return m, nil
}

func (r *StaffRepo) List(ctx context.Context) ([]domain.Staff, error) {
	rows := make([]domain.Staff, 0)
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type ServiceRepo struct {
	db *bun.DB
}

func NewServiceRepo(db *bun.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func (r *ServiceRepo) Create(ctx context.Context, s domain.Service) (domain.Service, error) {
	m := s
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Service{}, err
	}
	return m, nil
}

func (r *ServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	rows := make([]domain.Service, 0)
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
