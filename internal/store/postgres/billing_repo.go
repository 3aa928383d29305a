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

type InvoiceRepo struct {
	db *bun.DB
}

func NewInvoiceRepo(db *bun.DB) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

func (r *InvoiceRepo) Create(ctx context.Context, inv domain.Invoice) (domain.Invoice, error) {
	m := inv
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.Invoice{}, store.ErrInvalidReference
		}
		return domain.Invoice{}, err
	}
	return m, nil
}

func (r *InvoiceRepo) List(ctx context.Context) ([]domain.Invoice, error) {
	rows := make([]domain.Invoice, 0)
	err := r.db.NewSelect().
		Model(&rows).
		Relation("Client").
		Relation("Service").
		OrderExpr("inv.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *InvoiceRepo) MarkPaid(ctx context.Context, id uuid.UUID) (domain.Invoice, error) {
	res, err := r.db.NewUpdate().
		Model((*domain.Invoice)(nil)).
		Set("status = ?", domain.InvoiceStatusPaid).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Invoice{}, err
	}
	if affected == 0 {
		return domain.Invoice{}, store.ErrNotFound
	}

	var inv domain.Invoice
	err = r.db.NewSelect().
		Model(&inv).
		Where("inv.id = ?", id).
		Relation("Client").
		Relation("Service").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Invoice{}, store.ErrNotFound
		}
		return domain.Invoice{}, err
	}
	return inv, nil
}
