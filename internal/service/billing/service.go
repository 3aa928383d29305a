// Package billing issues invoices and runs the simulated payment flow the
// dashboard uses: collecting a payment simply marks the invoice paid.
package billing

import (
	"context"

	"github.com/google/uuid"

	"bookwell/backend/internal/domain"
	"bookwell/backend/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

type Service struct {
	invoices store.InvoiceRepository
}

func NewService(invoices store.InvoiceRepository) *Service {
	return &Service{invoices: invoices}
}

type CreateInput struct {
	AmountCents   int
	ClientID      uuid.UUID
	ServiceID     uuid.UUID
	AppointmentID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Invoice, error) {
	if in.AmountCents < 0 {
		return domain.Invoice{}, validationError("amount must not be negative")
	}
	if in.ClientID == uuid.Nil {
		return domain.Invoice{}, validationError("clientId is required")
	}
	if in.ServiceID == uuid.Nil {
		return domain.Invoice{}, validationError("serviceId is required")
	}
	if in.AppointmentID != nil && *in.AppointmentID == uuid.Nil {
		in.AppointmentID = nil
	}

	return s.invoices.Create(ctx, domain.Invoice{
		AmountCents:   in.AmountCents,
		ClientID:      in.ClientID,
		ServiceID:     in.ServiceID,
		AppointmentID: in.AppointmentID,
	})
}

func (s *Service) List(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoices.List(ctx)
}

// CollectPayment simulates a successful charge against the invoice.
func (s *Service) CollectPayment(ctx context.Context, invoiceID uuid.UUID) (domain.Invoice, error) {
	if invoiceID == uuid.Nil {
		return domain.Invoice{}, validationError("invoiceId is required")
	}
	return s.invoices.MarkPaid(ctx, invoiceID)
}
