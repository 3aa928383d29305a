package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookwell/backend/internal/cache"
	"bookwell/backend/internal/domain"
	"bookwell/backend/internal/scheduling"
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

// Service owns the booking flow: it validates candidates, scopes the conflict
// check to the staff member's calendar day, and runs fetch-decide-insert as
// one serialized unit per staff member.
type Service struct {
	repo     store.AppointmentRepository
	schedule *cache.ScheduleCache
	loc      *time.Location
}

// NewService builds the booking service. loc fixes the calendar-day boundary
// for conflict checks; nil means the server's local zone, matching how the
// dashboard has always drawn its days.
func NewService(repo store.AppointmentRepository, schedule *cache.ScheduleCache, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, schedule: schedule, loc: loc}
}

type CreateInput struct {
	StartTime       time.Time
	DurationMinutes int
	ClientID        uuid.UUID
	StaffID         uuid.UUID
	ServiceID       uuid.UUID
	Status          string
	Notes           string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Appointment, error) {
	if in.StartTime.IsZero() {
		return domain.Appointment{}, validationError("date is required")
	}
	if in.DurationMinutes < domain.MinAppointmentMinutes {
		return domain.Appointment{}, validationError("duration must be at least 5 minutes")
	}
	if in.ClientID == uuid.Nil {
		return domain.Appointment{}, validationError("clientId is required")
	}
	if in.StaffID == uuid.Nil {
		return domain.Appointment{}, validationError("staffId is required")
	}
	if in.ServiceID == uuid.Nil {
		return domain.Appointment{}, validationError("serviceId is required")
	}
	status := domain.AppointmentStatus(in.Status)
	if status == "" {
		status = domain.AppointmentStatusPending
	}
	if !status.Valid() {
		return domain.Appointment{}, validationError("invalid status")
	}

	start := in.StartTime.UTC()
	windowStart, windowEnd := scheduling.DayWindow(start, s.loc)

	var out domain.Appointment
	err := s.repo.InStaffSchedule(ctx, in.StaffID, func(ctx context.Context, tx store.ScheduleTx) error {
		existing, err := tx.ListByStaffWindow(ctx, in.StaffID, windowStart, windowEnd)
		if err != nil {
			return err
		}
		decision := scheduling.Decide(scheduling.Candidate{
			StartTime:       start,
			DurationMinutes: in.DurationMinutes,
			StaffID:         in.StaffID,
			ClientID:        in.ClientID,
			ServiceID:       in.ServiceID,
		}, existing)
		if !decision.Accepted {
			return &store.ConflictError{ConflictingID: decision.ConflictID}
		}

		created, err := tx.CreateAppointment(ctx, domain.Appointment{
			StartTime:       start,
			DurationMinutes: in.DurationMinutes,
			Status:          status,
			Notes:           in.Notes,
			ClientID:        in.ClientID,
			StaffID:         in.StaffID,
			ServiceID:       in.ServiceID,
		})
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}

	s.schedule.InvalidateDay(ctx, windowStart)
	return out, nil
}

type UpdateInput struct {
	StartTime       *time.Time
	DurationMinutes *int
	Status          *string
	Notes           *string
}

// Update applies a partial update. When the start or duration changes, the
// conflict check runs again against the target day before the row is written;
// status or notes alone never re-check.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (domain.Appointment, error) {
	if id == uuid.Nil {
		return domain.Appointment{}, validationError("id is required")
	}

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Appointment{}, err
	}
	oldDay, _ := scheduling.DayWindow(appt.StartTime, s.loc)

	reschedule := false
	if in.StartTime != nil {
		start := in.StartTime.UTC()
		if start.IsZero() {
			return domain.Appointment{}, validationError("date must be a valid instant")
		}
		if !start.Equal(appt.StartTime) {
			appt.StartTime = start
			reschedule = true
		}
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes < domain.MinAppointmentMinutes {
			return domain.Appointment{}, validationError("duration must be at least 5 minutes")
		}
		if *in.DurationMinutes != appt.DurationMinutes {
			appt.DurationMinutes = *in.DurationMinutes
			reschedule = true
		}
	}
	if in.Status != nil {
		status := domain.AppointmentStatus(*in.Status)
		if !status.Valid() {
			return domain.Appointment{}, validationError("invalid status")
		}
		appt.Status = status
	}
	if in.Notes != nil {
		appt.Notes = *in.Notes
	}

	windowStart, windowEnd := scheduling.DayWindow(appt.StartTime, s.loc)

	var out domain.Appointment
	err = s.repo.InStaffSchedule(ctx, appt.StaffID, func(ctx context.Context, tx store.ScheduleTx) error {
		if reschedule {
			existing, err := tx.ListByStaffWindow(ctx, appt.StaffID, windowStart, windowEnd)
			if err != nil {
				return err
			}
			others := make([]domain.Appointment, 0, len(existing))
			for _, e := range existing {
				if e.ID != appt.ID {
					others = append(others, e)
				}
			}
			decision := scheduling.Decide(scheduling.Candidate{
				StartTime:       appt.StartTime,
				DurationMinutes: appt.DurationMinutes,
				StaffID:         appt.StaffID,
				ClientID:        appt.ClientID,
				ServiceID:       appt.ServiceID,
			}, others)
			if !decision.Accepted {
				return &store.ConflictError{ConflictingID: decision.ConflictID}
			}
		}

		updated, err := tx.UpdateAppointment(ctx, appt)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}

	s.schedule.InvalidateDay(ctx, oldDay)
	s.schedule.InvalidateDay(ctx, windowStart)
	return out, nil
}

// List returns appointments with their client, staff and service loaded.
// A non-nil date scopes the listing to that calendar day and is served from
// the day-schedule cache when warm.
func (s *Service) List(ctx context.Context, date *time.Time) ([]domain.Appointment, error) {
	if date == nil {
		return s.repo.List(ctx, nil, nil)
	}

	windowStart, windowEnd := scheduling.DayWindow(*date, s.loc)
	if appts, ok := s.schedule.GetDay(ctx, windowStart); ok {
		return appts, nil
	}

	appts, err := s.repo.List(ctx, &windowStart, &windowEnd)
	if err != nil {
		return nil, err
	}
	s.schedule.SetDay(ctx, windowStart, appts)
	return appts, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return validationError("id is required")
	}

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	day, _ := scheduling.DayWindow(appt.StartTime, s.loc)
	s.schedule.InvalidateDay(ctx, day)
	return nil
}
