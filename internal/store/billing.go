package store

import (
	"context"

	"github.com/google/uuid"

	"bookwell/backend/internal/domain"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv domain.Invoice) (domain.Invoice, error)
	// List returns invoices with client/service loaded, newest first.
	List(ctx context.Context) ([]domain.Invoice, error)
	// MarkPaid transitions the invoice to paid and returns the updated row.
	MarkPaid(ctx context.Context, id uuid.UUID) (domain.Invoice, error)
}
