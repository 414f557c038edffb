package memory

import (
	"context"
	"testing"

	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/storage"
	"github.com/mmynk/dinesplit/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return New()
	})
}

func TestStoreCopiesState(t *testing.T) {
	store := New()
	ctx := context.Background()

	st := storagetest.Sample("s1")
	if err := store.CreateSession(ctx, st); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	st.Cart[0].Quantity = 99
	st.Split.ParticipantNames[0] = "changed"

	got, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Cart[0].Quantity != 2 || got.Split.ParticipantNames[0] != "Asha" {
		t.Error("store shares memory with the caller's state")
	}

	got.Split.Assignments["6"] = []int{7}
	again, _ := store.GetSession(ctx, "s1")
	if again.Split.Assignments["6"][0] != 2 {
		t.Error("store shares memory with returned state")
	}

	if _, err := store.UpdateSession(ctx, "s1", func(st *models.SessionState) error {
		st.ID = "other"
		return nil
	}); err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	if _, err := store.GetSession(ctx, "s1"); err != nil {
		t.Errorf("UpdateSession must not re-key the session: %v", err)
	}
}
