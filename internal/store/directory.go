package store

import (
	"context"

	"github.com/google/uuid"

	"bookwell/backend/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, c domain.Client) (domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error)
	Update(ctx context.Context, c domain.Client) (domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Client, error)
}

type StaffRepository interface {
	Create(ctx context.Context, s domain.Staff) (domain.Staff, error)
	List(ctx context.Context) ([]domain.Staff, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s domain.Service) (domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
}
