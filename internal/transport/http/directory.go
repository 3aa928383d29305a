package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookwell/backend/internal/domain"
	"bookwell/backend/internal/service/directory"
)

type directoryService interface {
	CreateClient(ctx context.Context, in directory.ClientInput) (domain.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, in directory.ClientUpdateInput) (domain.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateStaff(ctx context.Context, in directory.StaffInput) (domain.Staff, error)
	ListStaff(ctx context.Context) ([]domain.Staff, error)
	CreateService(ctx context.Context, in directory.ServiceInput) (domain.Service, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
}

type DirectoryHandler struct {
	svc directoryService
	log *zap.Logger
}

func NewDirectoryHandler(svc directoryService, log *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{svc: svc, log: log.With(zap.String("component", "http.directory"))}
}

type clientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (h *DirectoryHandler) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input: "+err.Error())
		return
	}

	client, err := h.svc.CreateClient(c.Request.Context(), directory.ClientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

type clientUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (h *DirectoryHandler) UpdateClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req clientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input: "+err.Error())
		return
	}

	client, err := h.svc.UpdateClient(c.Request.Context(), id, directory.ClientUpdateInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *DirectoryHandler) DeleteClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteClient(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DirectoryHandler) ListClients(c *gin.Context) {
	clients, err := h.svc.ListClients(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

type staffRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
}

func (h *DirectoryHandler) CreateStaff(c *gin.Context) {
	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input: "+err.Error())
		return
	}

	member, err := h.svc.CreateStaff(c.Request.Context(), directory.StaffInput{
		Name: req.Name,
		Role: req.Role,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *DirectoryHandler) ListStaff(c *gin.Context) {
	members, err := h.svc.ListStaff(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

type serviceRequest struct {
	Name     string `json:"name" binding:"required"`
	Duration int    `json:"duration" binding:"required"`
	Price    *int   `json:"price" binding:"required"`
}

func (h *DirectoryHandler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input: "+err.Error())
		return
	}

	svc, err := h.svc.CreateService(c.Request.Context(), directory.ServiceInput{
		Name:            req.Name,
		DurationMinutes: req.Duration,
		PriceCents:      *req.Price,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *DirectoryHandler) ListServices(c *gin.Context) {
	svcs, err := h.svc.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, svcs)
}
