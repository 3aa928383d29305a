package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookwell/backend/internal/domain"
)

// ScheduleTx is the slice of storage visible inside a per-staff schedule
// transaction: the day-window fetch and the write it guards.
type ScheduleTx interface {
	// ListByStaffWindow returns the staff member's appointments whose start
	// falls in [windowStart, windowEnd), ordered by start time.
	ListByStaffWindow(ctx context.Context, staffID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error)
	CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
}

type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	// List returns appointments with client/staff/service loaded, ordered by
	// start time. A nil window lists everything.
	List(ctx context.Context, windowStart, windowEnd *time.Time) ([]domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// InStaffSchedule runs fn in a transaction serialized against all other
	// schedule transactions for the same staff member, so a fetch-check-insert
	// sequence cannot race a concurrent booking attempt.
	InStaffSchedule(ctx context.Context, staffID uuid.UUID, fn func(ctx context.Context, tx ScheduleTx) error) error
}
