package stories

import (
	"context"
	"testing"
	"time"

	"github.com/ShayCichocki/jrny/internal/kv"
)

func TestTracker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	tr := NewTracker(kv.NewMemoryStore(), func() time.Time { return now }, time.UTC)

	if ok, err := tr.IsViewed(ctx, "j1"); err != nil || ok {
		t.Fatalf("IsViewed before marking = %t, %v", ok, err)
	}

	for _, id := range []string{"j1", "j3", "j1"} {
		if err := tr.MarkViewed(ctx, id); err != nil {
			t.Fatalf("MarkViewed(%s) failed: %v", id, err)
		}
	}

	got, err := tr.ViewedToday(ctx, []string{"j1", "j2", "j3"})
	if err != nil {
		t.Fatalf("ViewedToday failed: %v", err)
	}
	if len(got) != 2 || got[0] != "j1" || got[1] != "j3" {
		t.Errorf("ViewedToday = %v, want [j1 j3]", got)
	}

	now = now.AddDate(0, 0, 1)
	if ok, _ := tr.IsViewed(ctx, "j1"); ok {
		t.Error("view from yesterday still counts")
	}
	got, _ = tr.ViewedToday(ctx, []string{"j1", "j3"})
	if len(got) != 0 {
		t.Errorf("ViewedToday on new day = %v", got)
	}
}

func TestForget(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	tr := NewTracker(store, nil, time.UTC)

	if err := tr.MarkViewed(ctx, "j1"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Forget(ctx, "j1"); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if ok, _ := tr.IsViewed(ctx, "j1"); ok {
		t.Error("forgotten journey still viewed")
	}
	if err := tr.Forget(ctx, "never"); err != nil {
		t.Errorf("Forget of unknown id: %v", err)
	}
}
