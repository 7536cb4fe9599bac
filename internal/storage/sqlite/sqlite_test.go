package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// openTest opens a store in a temp directory with a clock that advances one
// second per save.
func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return store
}

func mustSave(t *testing.T, s *Store, player string, score, level, lines int) storage.Entry {
	t.Helper()
	e, err := s.Save(context.Background(), storage.Entry{Player: player, Score: score, Level: level, Lines: lines})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	return e
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	mustSave(t, store, "mem", 10, 1, 0)
	entries, err := store.Top(context.Background(), 0)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}

func TestStoreSaveNormalizes(t *testing.T) {
	store := openTest(t)

	e := mustSave(t, store, "  longplayername ", -10, 0, -2)
	if e.ID == 0 {
		t.Error("Save should assign an ID")
	}
	if e.Player != "LONGPLAY" || e.Score != 0 || e.Level != 1 || e.Lines != 0 {
		t.Errorf("Save() = %+v, expected normalized entry", e)
	}
	if e.CreatedAt.IsZero() {
		t.Error("Save should stamp CreatedAt")
	}

	top, err := store.Top(context.Background(), 1)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(top) != 1 || top[0].ID != e.ID || top[0].Player != e.Player || !top[0].CreatedAt.Equal(e.CreatedAt) {
		t.Errorf("Top() = %+v, expected the saved entry %+v", top, e)
	}
}

func TestStoreTopOrdering(t *testing.T) {
	store := openTest(t)

	mustSave(t, store, "a", 100, 1, 1)
	mustSave(t, store, "b", 300, 2, 12)
	mustSave(t, store, "c", 100, 3, 25)
	mustSave(t, store, "d", 100, 1, 1)

	top, err := store.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}

	want := []string{"B", "C", "A", "D"}
	if len(top) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(top))
	}
	for i, name := range want {
		if top[i].Player != name {
			t.Errorf("position %d = %s, expected %s", i+1, top[i].Player, name)
		}
	}
}

func TestStoreTopLimit(t *testing.T) {
	store := openTest(t)
	for i := range 15 {
		mustSave(t, store, "p", (i+1)*100, 1, 0)
	}

	top, err := store.Top(context.Background(), 3)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(top) != 3 || top[0].Score != 1500 || top[2].Score != 1300 {
		t.Errorf("Top(3) = %+v", top)
	}

	all, _ := store.Top(context.Background(), 0)
	if len(all) != storage.DefaultLimit {
		t.Errorf("Top(0) returned %d entries, expected %d", len(all), storage.DefaultLimit)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTest(t)
	ctx := context.Background()

	high, err := store.HighScore(ctx)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("expected 0 for an empty store, got %d", high)
	}

	mustSave(t, store, "a", 100, 1, 0)
	mustSave(t, store, "b", 300, 1, 0)
	mustSave(t, store, "c", 200, 1, 0)

	if high, _ = store.HighScore(ctx); high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}
}

func TestStoreRank(t *testing.T) {
	store := openTest(t)
	ctx := context.Background()

	mustSave(t, store, "alice", 500, 2, 10)
	mustSave(t, store, "bob", 900, 3, 20)
	mustSave(t, store, "alice", 200, 1, 3)
	mustSave(t, store, "carol", 500, 2, 10)

	tests := []struct {
		player string
		rank   int
	}{
		{"bob", 1},
		{"alice", 2}, // best entry ties carol but was saved first
		{"Carol", 3},
		{"dave", 0},
	}

	for _, tt := range tests {
		got, err := store.Rank(ctx, tt.player)
		if err != nil {
			t.Fatalf("Rank(%q) failed: %v", tt.player, err)
		}
		if got != tt.rank {
			t.Errorf("Rank(%q) = %d, expected %d", tt.player, got, tt.rank)
		}
	}
}

func TestStoreClear(t *testing.T) {
	store := openTest(t)
	ctx := context.Background()

	mustSave(t, store, "a", 100, 1, 0)
	mustSave(t, store, "b", 200, 1, 0)

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	top, _ := store.Top(ctx, 10)
	if len(top) != 0 {
		t.Errorf("expected no scores after clear, got %d", len(top))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTest(t)
	ctx := context.Background()

	empty, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Games != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty store = %+v", empty)
	}

	mustSave(t, store, "a", 100, 1, 4)
	last := mustSave(t, store, "b", 300, 2, 11)

	st, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Games != 2 || st.HighScore != 300 || st.AvgScore != 200 || st.TotalLines != 15 {
		t.Errorf("Stats() = %+v", st)
	}
	if !st.LastPlayed.Equal(last.CreatedAt) {
		t.Errorf("LastPlayed = %v, expected %v", st.LastPlayed, last.CreatedAt)
	}
}
