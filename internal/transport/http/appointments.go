package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookwell/backend/internal/domain"
	"bookwell/backend/internal/service/appointments"
)

type appointmentsService interface {
	Create(ctx context.Context, in appointments.CreateInput) (domain.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, in appointments.UpdateInput) (domain.Appointment, error)
	List(ctx context.Context, date *time.Time) ([]domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AppointmentHandler struct {
	svc appointmentsService
	log *zap.Logger
}

func NewAppointmentHandler(svc appointmentsService, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, log: log.With(zap.String("component", "http.appointments"))}
}

type createAppointmentRequest struct {
	Date      string `json:"date" binding:"required"`
	Duration  int    `json:"duration" binding:"required"`
	ClientID  string `json:"clientId" binding:"required"`
	StaffID   string `json:"staffId" binding:"required"`
	ServiceID string `json:"serviceId" binding:"required"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input: "+err.Error())
		return
	}

	start, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		badRequest(c, "date must be an RFC 3339 timestamp")
		return
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		badRequest(c, "invalid clientId")
		return
	}
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		badRequest(c, "invalid staffId")
		return
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		badRequest(c, "invalid serviceId")
		return
	}

	appt, err := h.svc.Create(c.Request.Context(), appointments.CreateInput{
		StartTime:       start,
		DurationMinutes: req.Duration,
		ClientID:        clientID,
		StaffID:         staffID,
		ServiceID:       serviceID,
		Status:          req.Status,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("appointment booked",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("staff_id", appt.StaffID.String()),
		zap.Time("start_time", appt.StartTime),
	)
	c.JSON(http.StatusCreated, appt)
}

// List serves the dashboard's schedule view. An optional ?date=YYYY-MM-DD
// query scopes the listing to that calendar day.
func (h *AppointmentHandler) List(c *gin.Context) {
	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		d, err := parseDateParam(raw)
		if err != nil {
			badRequest(c, "date must be YYYY-MM-DD or an RFC 3339 timestamp")
			return
		}
		date = &d
	}

	appts, err := h.svc.List(c.Request.Context(), date)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

type updateAppointmentRequest struct {
	Date     *string `json:"date"`
	Duration *int    `json:"duration"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input: "+err.Error())
		return
	}

	in := appointments.UpdateInput{
		DurationMinutes: req.Duration,
		Status:          req.Status,
		Notes:           req.Notes,
	}
	if req.Date != nil {
		start, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			badRequest(c, "date must be an RFC 3339 timestamp")
			return
		}
		in.StartTime = &start
	}

	appt, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseDateParam(raw string) (time.Time, error) {
	if d, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, raw)
}
