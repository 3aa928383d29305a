// Package directory covers the CRM's reference records: clients, staff and
// the service catalogue.
package directory

import (
	"context"
	"net/mail"
	"strings"

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
	clients  store.ClientRepository
	staff    store.StaffRepository
	services store.ServiceRepository
}

func NewService(clients store.ClientRepository, staff store.StaffRepository, services store.ServiceRepository) *Service {
	return &Service{clients: clients, staff: staff, services: services}
}

type ClientInput struct {
	Name  string
	Email string
	Phone string
}

func (s *Service) CreateClient(ctx context.Context, in ClientInput) (domain.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Client{}, validationError("name is required")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.Client{}, validationError("invalid email")
		}
	}

	return s.clients.Create(ctx, domain.Client{
		Name:  name,
		Email: email,
		Phone: strings.TrimSpace(in.Phone),
	})
}

type ClientUpdateInput struct {
	Name  *string
	Email *string
	Phone *string
}

func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, in ClientUpdateInput) (domain.Client, error) {
	if id == uuid.Nil {
		return domain.Client{}, validationError("id is required")
	}

	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.Client{}, validationError("name is required")
		}
		c.Name = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" {
			if _, err := mail.ParseAddress(email); err != nil {
				return domain.Client{}, validationError("invalid email")
			}
		}
		c.Email = email
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}

	return s.clients.Update(ctx, c)
}

func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return validationError("id is required")
	}
	return s.clients.Delete(ctx, id)
}

func (s *Service) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}

type StaffInput struct {
	Name string
	Role string
}

func (s *Service) CreateStaff(ctx context.Context, in StaffInput) (domain.Staff, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Staff{}, validationError("name is required")
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		return domain.Staff{}, validationError("role is required")
	}

	return s.staff.Create(ctx, domain.Staff{Name: name, Role: role})
}

func (s *Service) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	return s.staff.List(ctx)
}

type ServiceInput struct {
	Name            string
	DurationMinutes int
	PriceCents      int
}

func (s *Service) CreateService(ctx context.Context, in ServiceInput) (domain.Service, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Service{}, validationError("name is required")
	}
	if in.DurationMinutes < domain.MinAppointmentMinutes {
		return domain.Service{}, validationError("duration must be at least 5 minutes")
	}
	if in.PriceCents < 0 {
		return domain.Service{}, validationError("price must not be negative")
	}

	return s.services.Create(ctx, domain.Service{
		Name:            name,
		DurationMinutes: in.DurationMinutes,
		PriceCents:      in.PriceCents,
	})
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx)
}
