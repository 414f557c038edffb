// Package storagetest runs the storage.Store contract against any backend.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/storage"
)

// Run exercises every Store operation. newStore must return an empty store;
// Run closes it.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, store storage.Store)
	}{
		{"CreateSession and GetSession round trip", testRoundTrip},
		{"CreateSession rejects duplicate IDs", testDuplicate},
		{"GetSession on missing ID", testMissing},
		{"UpdateSession replaces state", testUpdate},
		{"UpdateSession error leaves state untouched", testUpdateError},
		{"UpdateSession serializes concurrent updates", testConcurrentUpdates},
		{"DeleteSession", testDelete},
		{"DeleteExpired", testDeleteExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()
			tt.fn(t, store)
		})
	}
}

// Sample returns a session on the split screen with two lines, three
// participants and a shared assignment.
func Sample(id string) *models.SessionState {
	return &models.SessionState{
		ID:     id,
		Screen: models.ScreenBillSplit,
		Cart: []models.CartLine{
			{MenuEntry: models.MenuEntry{ID: "6", Name: "Butter Chicken", Description: "Tender chicken", Price: 400, ImageRef: "/assets/nonveg-meal.jpg", Category: models.CategoryNonVeg}, Quantity: 2},
			{MenuEntry: models.MenuEntry{ID: "1", Name: "Paneer Butter Masala", Description: "Creamy curry", Price: 280, ImageRef: "/assets/veg-meal.jpg", Category: models.CategoryVeg}, Quantity: 1},
		},
		Split: &models.SplitState{
			ParticipantNames: []string{"Asha", "Person 2", "Person 3"},
			Assignments: map[string][]int{
				"6": {2, 0},
				"1": {1},
			},
		},
		CreatedAt: 1_700_000_000,
		UpdatedAt: 1_700_000_100,
	}
}

func testRoundTrip(t *testing.T, store storage.Store) {
	ctx := context.Background()
	want := Sample("s1")

	if err := store.CreateSession(ctx, want); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	got, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}

	menu := &models.SessionState{ID: "s2", Screen: models.ScreenMenu, CreatedAt: 1, UpdatedAt: 1}
	if err := store.CreateSession(ctx, menu); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	got, err = store.GetSession(ctx, "s2")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Split != nil || len(got.Cart) != 0 {
		t.Errorf("expected empty menu session, got %+v", got)
	}
}

func testDuplicate(t *testing.T, store storage.Store) {
	ctx := context.Background()
	if err := store.CreateSession(ctx, Sample("s1")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := store.CreateSession(ctx, Sample("s1")); err == nil {
		t.Error("expected error for duplicate session ID")
	}
}

func testMissing(t *testing.T, store storage.Store) {
	_, err := store.GetSession(context.Background(), "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, err = store.UpdateSession(context.Background(), "nope", func(*models.SessionState) error { return nil })
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound from UpdateSession, got %v", err)
	}
}

func testUpdate(t *testing.T, store storage.Store) {
	ctx := context.Background()
	if err := store.CreateSession(ctx, Sample("s1")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	updated, err := store.UpdateSession(ctx, "s1", func(st *models.SessionState) error {
		st.Screen = models.ScreenMenu
		st.Split = nil
		st.Cart = st.Cart[:1]
		st.Cart[0].Quantity = 5
		st.UpdatedAt = 1_700_000_500
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}

	got, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Errorf("stored state differs from returned state (-returned +stored):\n%s", diff)
	}
	if got.Screen != models.ScreenMenu || got.Split != nil {
		t.Errorf("expected menu screen without split, got %q / %+v", got.Screen, got.Split)
	}
	if len(got.Cart) != 1 || got.Cart[0].Quantity != 5 {
		t.Errorf("unexpected cart %+v", got.Cart)
	}
	if got.UpdatedAt != 1_700_000_500 {
		t.Errorf("UpdatedAt = %d, want 1700000500", got.UpdatedAt)
	}
}

func testUpdateError(t *testing.T, store storage.Store) {
	ctx := context.Background()
	if err := store.CreateSession(ctx, Sample("s1")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	boom := errors.New("boom")
	_, err := store.UpdateSession(ctx, "s1", func(st *models.SessionState) error {
		st.Screen = models.ScreenMenu
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	got, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if diff := cmp.Diff(Sample("s1"), got); diff != "" {
		t.Errorf("failed update changed state (-want +got):\n%s", diff)
	}
}

func testConcurrentUpdates(t *testing.T, store storage.Store) {
	ctx := context.Background()
	if err := store.CreateSession(ctx, &models.SessionState{
		ID:     "s1",
		Screen: models.ScreenMenu,
		Cart:   []models.CartLine{{MenuEntry: models.MenuEntry{ID: "1", Name: "Paneer", Price: 280, Category: models.CategoryVeg}, Quantity: 1}},
	}); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.UpdateSession(ctx, "s1", func(st *models.SessionState) error {
				st.Cart[0].Quantity++
				return nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("UpdateSession failed: %v", err)
		}
	}

	got, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Cart[0].Quantity != workers+1 {
		t.Errorf("quantity = %d, want %d (lost updates)", got.Cart[0].Quantity, workers+1)
	}
}

func testDelete(t *testing.T, store storage.Store) {
	ctx := context.Background()
	if err := store.CreateSession(ctx, Sample("s1")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := store.DeleteSession(ctx, "s1"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := store.GetSession(ctx, "s1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteSession(ctx, "s1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}

	// A new session may reuse the ID once the old one is gone.
	if err := store.CreateSession(ctx, Sample("s1")); err != nil {
		t.Errorf("CreateSession after delete failed: %v", err)
	}
}

func testDeleteExpired(t *testing.T, store storage.Store) {
	ctx := context.Background()
	for i, updated := range []int64{100, 200, 300} {
		st := Sample(fmt.Sprintf("s%d", i))
		st.UpdatedAt = updated
		if err := store.CreateSession(ctx, st); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	}

	n, err := store.DeleteExpired(ctx, 250)
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteExpired removed %d sessions, want 2", n)
	}
	if _, err := store.GetSession(ctx, "s2"); err != nil {
		t.Errorf("expected s2 to survive, got %v", err)
	}
	if _, err := store.GetSession(ctx, "s0"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected s0 to be expired, got %v", err)
	}
}
