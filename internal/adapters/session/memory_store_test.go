package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medora-health/portal-access-service/internal/core/domain"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := &domain.Session{
		SubjectID:     "u-njohnson",
		Email:         "nurse.johnson@hospital.com",
		DisplayName:   "Sarah Johnson",
		Role:          domain.RoleNurse,
		RoleAttribute: "Emergency",
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}

	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "u-njohnson")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != *sess {
		t.Errorf("round trip changed the session:\n got %+v\nwant %+v", got, sess)
	}
}

func TestMemoryStore_MissingSession(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "u-nobody")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

// A corrupt slot must be discarded on read, not returned and not left
// to poison the next read.
func TestMemoryStore_CorruptSlotSelfHeals(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.mu.Lock()
	store.data["u-jdoe"] = []byte("{not json")
	store.mu.Unlock()

	_, err := store.Get(ctx, "u-jdoe")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("corrupt slot should read as absent, got %v", err)
	}

	store.mu.RLock()
	_, stillThere := store.data["u-jdoe"]
	store.mu.RUnlock()
	if stillThere {
		t.Fatal("corrupt slot was not discarded")
	}

	// The slot is usable again after the discard.
	sess := &domain.Session{SubjectID: "u-jdoe", Email: "patient@email.com", Role: domain.RolePatient}
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, "u-jdoe"); err != nil {
		t.Fatalf("slot did not recover: %v", err)
	}
}

func TestMemoryStore_ClearIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := &domain.Session{SubjectID: "u-admin", Role: domain.RoleSuperAdmin}
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Clear(ctx, "u-admin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Clear(ctx, "u-admin"); err != nil {
		t.Fatalf("clearing an empty slot must not error: %v", err)
	}
	if _, err := store.Get(ctx, "u-admin"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected cleared slot, got %v", err)
	}
}
