package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled:
		return true
	}
	return false
}

// MinAppointmentMinutes is the shortest bookable duration.
const MinAppointmentMinutes = 5

type Appointment struct {
	bun.BaseModel `bun:"table:appointments,alias:appt"`

	ID              uuid.UUID         `bun:"id,pk,type:uuid" json:"id"`
	StartTime       time.Time         `bun:"start_time,notnull" json:"date"`
	DurationMinutes int               `bun:"duration_minutes,notnull" json:"duration"`
	Status          AppointmentStatus `bun:"status,notnull" json:"status"`
	Notes           string            `bun:"notes" json:"notes"`
	ClientID        uuid.UUID         `bun:"client_id,type:uuid,notnull" json:"clientId"`
	StaffID         uuid.UUID         `bun:"staff_id,type:uuid,notnull" json:"staffId"`
	ServiceID       uuid.UUID         `bun:"service_id,type:uuid,notnull" json:"serviceId"`
	CreatedAt       time.Time         `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt       time.Time         `bun:"updated_at,notnull" json:"updatedAt"`

	Client  *Client  `bun:"rel:belongs-to,join:client_id=id" json:"client,omitempty"`
	Staff   *Staff   `bun:"rel:belongs-to,join:staff_id=id" json:"staff,omitempty"`
	Service *Service `bun:"rel:belongs-to,join:service_id=id" json:"service,omitempty"`
}

// End is the exclusive end of the appointment's occupied interval.
func (a Appointment) End() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.Status == "" {
			a.Status = AppointmentStatusPending
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
