package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"bookwell/backend/internal/domain"
	"bookwell/backend/internal/store"
)

type fakeClients struct {
	createFn  func(ctx context.Context, c domain.Client) (domain.Client, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (domain.Client, error)
	updateFn  func(ctx context.Context, c domain.Client) (domain.Client, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
	listFn    func(ctx context.Context) ([]domain.Client, error)
}

func (f *fakeClients) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	return f.createFn(ctx, c)
}

func (f *fakeClients) GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeClients) Update(ctx context.Context, c domain.Client) (domain.Client, error) {
	return f.updateFn(ctx, c)
}

func (f *fakeClients) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeClients) List(ctx context.Context) ([]domain.Client, error) {
	return f.listFn(ctx)
}

type fakeStaff struct {
	createFn func(ctx context.Context, st domain.Staff) (domain.Staff, error)
	listFn   func(ctx context.Context) ([]domain.Staff, error)
}

func (f *fakeStaff) Create(ctx context.Context, st domain.Staff) (domain.Staff, error) {
	return f.createFn(ctx, st)
}

func (f *fakeStaff) List(ctx context.Context) ([]domain.Staff, error) {
	return f.listFn(ctx)
}

type fakeServices struct {
	createFn func(ctx context.Context, sv domain.Service) (domain.Service, error)
	listFn   func(ctx context.Context) ([]domain.Service, error)
}

func (f *fakeServices) Create(ctx context.Context, sv domain.Service) (domain.Service, error) {
	return f.createFn(ctx, sv)
}

func (f *fakeServices) List(ctx context.Context) ([]domain.Service, error) {
	return f.listFn(ctx)
}

func TestCreateClientTrimsAndValidates(t *testing.T) {
	clients := &fakeClients{
		createFn: func(ctx context.Context, c domain.Client) (domain.Client, error) {
			return c, nil
		},
	}
	svc := NewService(clients, &fakeStaff{}, &fakeServices{})

	got, err := svc.CreateClient(context.Background(), ClientInput{
		Name:  "  Ada Obi  ",
		Email: " ada@example.com ",
		Phone: " 0801 ",
	})
	if err != nil {
		t.Fatalf("CreateClient error: %v", err)
	}
	if got.Name != "Ada Obi" || got.Email != "ada@example.com" || got.Phone != "0801" {
		t.Fatalf("client = %+v, want trimmed fields", got)
	}
}

func TestCreateClientRejectsBadInput(t *testing.T) {
	svc := NewService(&fakeClients{}, &fakeStaff{}, &fakeServices{})

	cases := []struct {
		name string
		in   ClientInput
	}{
		{"blank name", ClientInput{Name: "   "}},
		{"bad email", ClientInput{Name: "Ada", Email: "not-an-address"}},
	}
	for _, tc := range cases {
		_, err := svc.CreateClient(context.Background(), tc.in)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("%s: error type = %T, want *ValidationError", tc.name, err)
		}
	}
}

func TestCreateClientAllowsEmptyEmail(t *testing.T) {
	clients := &fakeClients{
		createFn: func(ctx context.Context, c domain.Client) (domain.Client, error) {
			return c, nil
		},
	}
	svc := NewService(clients, &fakeStaff{}, &fakeServices{})

	if _, err := svc.CreateClient(context.Background(), ClientInput{Name: "Ada"}); err != nil {
		t.Fatalf("CreateClient error: %v", err)
	}
}

func TestUpdateClientMergesPartialFields(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
	clients := &fakeClients{
		getByIDFn: func(ctx context.Context, got uuid.UUID) (domain.Client, error) {
			if got != id {
				t.Fatalf("GetByID id = %s, want %s", got, id)
			}
			return domain.Client{ID: id, Name: "Ada Obi", Email: "ada@example.com", Phone: "0801"}, nil
		},
		updateFn: func(ctx context.Context, c domain.Client) (domain.Client, error) {
			return c, nil
		},
	}
	svc := NewService(clients, &fakeStaff{}, &fakeServices{})

	phone := "0901"
	got, err := svc.UpdateClient(context.Background(), id, ClientUpdateInput{Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateClient error: %v", err)
	}
	if got.Phone != "0901" {
		t.Fatalf("phone = %q, want %q", got.Phone, "0901")
	}
	if got.Name != "Ada Obi" || got.Email != "ada@example.com" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestUpdateClientNotFound(t *testing.T) {
	clients := &fakeClients{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (domain.Client, error) {
			return domain.Client{}, store.ErrNotFound
		},
	}
	svc := NewService(clients, &fakeStaff{}, &fakeServices{})

	name := "Ada"
	_, err := svc.UpdateClient(context.Background(), uuid.MustParse("00000000-0000-0000-0000-0000000000c9"), ClientUpdateInput{Name: &name})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateStaffRequiresNameAndRole(t *testing.T) {
	svc := NewService(&fakeClients{}, &fakeStaff{}, &fakeServices{})

	for name, in := range map[string]StaffInput{
		"blank name": {Role: "stylist"},
		"blank role": {Name: "Bisi"},
	} {
		_, err := svc.CreateStaff(context.Background(), in)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("%s: error type = %T, want *ValidationError", name, err)
		}
	}
}

func TestCreateServiceValidates(t *testing.T) {
	services := &fakeServices{
		createFn: func(ctx context.Context, sv domain.Service) (domain.Service, error) {
			return sv, nil
		},
	}
	svc := NewService(&fakeClients{}, &fakeStaff{}, services)

	if _, err := svc.CreateService(context.Background(), ServiceInput{Name: "Cut", DurationMinutes: 4, PriceCents: 1000}); err == nil {
		t.Fatalf("expected error for 4 minute service")
	}
	if _, err := svc.CreateService(context.Background(), ServiceInput{Name: "Cut", DurationMinutes: 30, PriceCents: -1}); err == nil {
		t.Fatalf("expected error for negative price")
	}
	got, err := svc.CreateService(context.Background(), ServiceInput{Name: " Cut ", DurationMinutes: 30, PriceCents: 0})
	if err != nil {
		t.Fatalf("CreateService error: %v", err)
	}
	if got.Name != "Cut" {
		t.Fatalf("name = %q, want %q", got.Name, "Cut")
	}
}
