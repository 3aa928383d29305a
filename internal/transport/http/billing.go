package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookwell/backend/internal/domain"
	"bookwell/backend/internal/service/billing"
)

type billingService interface {
	Create(ctx context.Context, in billing.CreateInput) (domain.Invoice, error)
	List(ctx context.Context) ([]domain.Invoice, error)
	CollectPayment(ctx context.Context, invoiceID uuid.UUID) (domain.Invoice, error)
}

type BillingHandler struct {
	svc billingService
	log *zap.Logger
}

func NewBillingHandler(svc billingService, log *zap.Logger) *BillingHandler {
	return &BillingHandler{svc: svc, log: log.With(zap.String("component", "http.billing"))}
}

type invoiceRequest struct {
	Amount        *int   `json:"amount" binding:"required"`
	ClientID      string `json:"clientId" binding:"required"`
	ServiceID     string `json:"serviceId" binding:"required"`
	AppointmentID string `json:"appointmentId"`
}

func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input: "+err.Error())
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		badRequest(c, "invalid clientId")
		return
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		badRequest(c, "invalid serviceId")
		return
	}
	var appointmentID *uuid.UUID
	if req.AppointmentID != "" {
		id, err := uuid.Parse(req.AppointmentID)
		if err != nil {
			badRequest(c, "invalid appointmentId")
			return
		}
		appointmentID = &id
	}

	inv, err := h.svc.Create(c.Request.Context(), billing.CreateInput{
		AmountCents:   *req.Amount,
		ClientID:      clientID,
		ServiceID:     serviceID,
		AppointmentID: appointmentID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *BillingHandler) ListInvoices(c *gin.Context) {
	invs, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, invs)
}

type collectPaymentRequest struct {
	InvoiceID string `json:"invoiceId" binding:"required"`
}

func (h *BillingHandler) CollectPayment(c *gin.Context) {
	var req collectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input: "+err.Error())
		return
	}
	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		badRequest(c, "invalid invoiceId")
		return
	}

	inv, err := h.svc.CollectPayment(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "invoice": inv})
}
