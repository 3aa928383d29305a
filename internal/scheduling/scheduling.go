// Package scheduling decides whether a candidate booking may be admitted
// into a staff member's calendar. The decision is pure: callers fetch the
// staff member's same-day appointments, ask for a decision, and persist on
// acceptance. Fetch, decide and insert must run under the same per-staff
// serialization scope (see store.AppointmentRepository.InStaffSchedule),
// otherwise two concurrent requests can both see a clear window.
package scheduling

import (
	"time"

	"github.com/google/uuid"

	"bookwell/backend/internal/domain"
)

// Interval is a half-open time range [Start, Start+Duration).
type Interval struct {
	Start    time.Time
	Duration time.Duration
}

func (iv Interval) End() time.Time {
	return iv.Start.Add(iv.Duration)
}

// Overlaps reports whether two half-open intervals intersect. Abutting
// endpoints do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End()) && b.Start.Before(a.End())
}

// DayWindow returns the half-open calendar-day window [midnight, midnight+24h)
// containing t, with midnight taken in loc. The booking API passes the server's
// local zone, matching how day boundaries have always been drawn for this data.
func DayWindow(t time.Time, loc *time.Location) (start, end time.Time) {
	lt := t.In(loc)
	start = time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start, start.Add(24 * time.Hour)
}

// Candidate is a proposed booking, already validated by the caller.
type Candidate struct {
	StartTime       time.Time
	DurationMinutes int
	StaffID         uuid.UUID
	ClientID        uuid.UUID
	ServiceID       uuid.UUID
}

func (c Candidate) interval() Interval {
	return Interval{Start: c.StartTime, Duration: time.Duration(c.DurationMinutes) * time.Minute}
}

// Decision is the outcome of a scheduling check.
type Decision struct {
	Accepted bool
	// ConflictID identifies the first existing appointment the candidate
	// overlaps. Zero when Accepted.
	ConflictID uuid.UUID
}

// Decide checks the candidate against the staff member's existing same-day
// appointments and returns the first conflict found, in the order given.
// Appointments for other staff members are the caller's filtering mistake,
// not a conflict, and are skipped.
func Decide(c Candidate, existing []domain.Appointment) Decision {
	want := c.interval()
	for _, e := range existing {
		if e.StaffID != c.StaffID {
			continue
		}
		have := Interval{Start: e.StartTime, Duration: time.Duration(e.DurationMinutes) * time.Minute}
		if Overlaps(want, have) {
			return Decision{ConflictID: e.ID}
		}
	}
	return Decision{Accepted: true}
}
