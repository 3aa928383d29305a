package postgres

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"bookwell/backend/internal/domain"
	"bookwell/backend/internal/store"
)

func TestPostgresIntegration_ScheduleCreateListAndConstraints(t *testing.T) {
	databaseURL := strings.TrimSpace(os.Getenv("BOOKWELL_TEST_DATABASE_URL"))
	if databaseURL == "" {
		t.Skip("BOOKWELL_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := Open(ctx, databaseURL, PoolConfig{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(db)
	})

	schema := "bookwell_test_" + randomHex(t, 8)
	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cleanupCancel()
		_, _ = db.NewRaw("DROP SCHEMA IF EXISTS " + schema + " CASCADE").Exec(cleanupCtx)
	})

	var (
		clientID  = uuid.MustParse("00000000-0000-0000-0000-000000000901")
		staffID   = uuid.MustParse("00000000-0000-0000-0000-000000000902")
		serviceID = uuid.MustParse("00000000-0000-0000-0000-000000000903")
	)

	inSchemaTx := func(fn func(ctx context.Context, tx bun.Tx) error) error {
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewRaw("SET LOCAL search_path TO " + schema).Exec(ctx); err != nil {
				return err
			}
			return fn(ctx, tx)
		})
	}

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewRaw("CREATE SCHEMA " + schema).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewRaw("SET LOCAL search_path TO " + schema).Exec(ctx); err != nil {
			return err
		}
		if err := applySchemaFiles(ctx, tx); err != nil {
			return err
		}
		if _, err := tx.NewRaw(
			"INSERT INTO clients (id, name) VALUES (?, 'c')", clientID,
		).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewRaw(
			"INSERT INTO staff (id, name, role) VALUES (?, 's', 'r')", staffID,
		).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewRaw(
			"INSERT INTO services (id, name, duration_minutes, price_cents) VALUES (?, 'svc', 30, 1000)", serviceID,
		).Exec(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("schema setup error: %v", err)
	}

	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	a1ID := uuid.MustParse("00000000-0000-0000-0000-000000000911")

	err = inSchemaTx(func(ctx context.Context, tx bun.Tx) error {
		s := scheduleTx{tx: tx}
		a1, err := s.CreateAppointment(ctx, domain.Appointment{
			ID:              a1ID,
			StartTime:       start,
			DurationMinutes: 45,
			Status:          domain.AppointmentStatusConfirmed,
			ClientID:        clientID,
			StaffID:         staffID,
			ServiceID:       serviceID,
		})
		if err != nil {
			return err
		}

		rows, err := s.ListByStaffWindow(ctx, staffID, start.Add(-time.Hour), start.Add(time.Hour))
		if err != nil {
			return err
		}
		if len(rows) != 1 || rows[0].ID != a1.ID {
			return fmt.Errorf("window rows = %d, want only %s", len(rows), a1.ID)
		}

		// Abutting slot, must be accepted.
		_, err = s.CreateAppointment(ctx, domain.Appointment{
			ID:              uuid.MustParse("00000000-0000-0000-0000-000000000912"),
			StartTime:       start.Add(45 * time.Minute),
			DurationMinutes: 30,
			ClientID:        clientID,
			StaffID:         staffID,
			ServiceID:       serviceID,
		})
		return err
	})
	if err != nil {
		t.Fatalf("create and list error: %v", err)
	}

	// The exclusion constraint must refuse an overlapping slot even when the
	// caller skipped the pre-insert check. The violation aborts its
	// transaction, so it gets one of its own.
	err = inSchemaTx(func(ctx context.Context, tx bun.Tx) error {
		s := scheduleTx{tx: tx}
		_, err := s.CreateAppointment(ctx, domain.Appointment{
			ID:              uuid.MustParse("00000000-0000-0000-0000-000000000913"),
			StartTime:       start.Add(30 * time.Minute),
			DurationMinutes: 30,
			ClientID:        clientID,
			StaffID:         staffID,
			ServiceID:       serviceID,
		})
		return err
	})
	var conflict *store.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("overlap err = %v, want *store.ConflictError", err)
	}

	err = inSchemaTx(func(ctx context.Context, tx bun.Tx) error {
		s := scheduleTx{tx: tx}
		_, err := s.CreateAppointment(ctx, domain.Appointment{
			ID:              uuid.MustParse("00000000-0000-0000-0000-000000000914"),
			StartTime:       time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC),
			DurationMinutes: 30,
			ClientID:        uuid.MustParse("00000000-0000-0000-0000-000000000999"),
			StaffID:         staffID,
			ServiceID:       serviceID,
		})
		return err
	})
	if !errors.Is(err, store.ErrInvalidReference) {
		t.Fatalf("unknown client err = %v, want ErrInvalidReference", err)
	}
}

func randomHex(t *testing.T, bytesLen int) string {
	t.Helper()
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("rand.Read error: %v", err)
	}
	return hex.EncodeToString(b)
}

// applySchemaFiles runs the schema migrations inside the caller's
// transaction so the tables land in the test schema instead of public.
func applySchemaFiles(ctx context.Context, tx bun.Tx) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "0") || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		for _, stmt := range splitSQLStatements(string(b)) {
			if normalized, ok := normalizeExtensionStatement(stmt); ok {
				stmt = normalized
			}
			if _, err := tx.NewRaw(stmt).Exec(ctx); err != nil {
				return fmt.Errorf("apply %s: %w", name, err)
			}
		}
	}
	return nil
}

func migrationsDir() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("runtime.Caller failed")
	}
	base := filepath.Dir(file)
	return filepath.Clean(filepath.Join(base, "..", "..", "..", "migrations")), nil
}

// The btree_gist extension cannot live in the throwaway schema: pinning it to
// public keeps repeat runs from fighting over it.
func normalizeExtensionStatement(stmt string) (string, bool) {
	s := strings.TrimSpace(stmt)
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "CREATE EXTENSION") {
		return "", false
	}
	if !strings.Contains(upper, "BTREE_GIST") {
		return "", false
	}
	if strings.Contains(upper, " SCHEMA ") {
		return "", false
	}
	return s + " SCHEMA public", true
}

func splitSQLStatements(sql string) []string {
	parts := strings.Split(sql, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
