package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "unpaid"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

type Invoice struct {
	bun.BaseModel `bun:"table:invoices,alias:inv"`

	ID            uuid.UUID     `bun:"id,pk,type:uuid" json:"id"`
	AmountCents   int           `bun:"amount_cents,notnull" json:"amount"`
	Status        InvoiceStatus `bun:"status,notnull" json:"status"`
	ClientID      uuid.UUID     `bun:"client_id,type:uuid,notnull" json:"clientId"`
	ServiceID     uuid.UUID     `bun:"service_id,type:uuid,notnull" json:"serviceId"`
	AppointmentID *uuid.UUID    `bun:"appointment_id,type:uuid,nullzero" json:"appointmentId,omitempty"`
	CreatedAt     time.Time     `bun:"created_at,notnull" json:"createdAt"`

	Client  *Client  `bun:"rel:belongs-to,join:client_id=id" json:"client,omitempty"`
	Service *Service `bun:"rel:belongs-to,join:service_id=id" json:"service,omitempty"`
}

func (i *Invoice) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if i.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			i.ID = id
		}
		if i.Status == "" {
			i.Status = InvoiceStatusUnpaid
		}
		if i.CreatedAt.IsZero() {
			i.CreatedAt = time.Now().UTC()
		}
	}
	return nil
}
