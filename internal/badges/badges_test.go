package badges

import (
	"context"
	"sync"
	"testing"
)

// memStore garde les badges en mémoire avec la même garantie d'unicité
// (user_id, kind) que la table SQL
type memStore struct {
	mu          sync.Mutex
	score       int
	submissions int
	owned       map[string]bool
}

func newMemStore(score, submissions int) *memStore {
	return &memStore{score: score, submissions: submissions, owned: make(map[string]bool)}
}

func (s *memStore) UserStats(ctx context.Context, userID string) (int, int, error) {
	return s.score, s.submissions, nil
}

func (s *memStore) Insert(ctx context.Context, userID string, def Definition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userID + "/" + string(def.Kind)
	if s.owned[key] {
		return false, nil
	}
	s.owned[key] = true
	return true, nil
}

func TestEligibleKinds(t *testing.T) {
	tests := []struct {
		name        string
		score       int
		submissions int
		want        []Kind
	}{
		{"nothing", 0, 0, nil},
		{"first submission", 0, 1, []Kind{KindSubmissions1}},
		{"score threshold exact", 10, 0, []Kind{KindScore10}},
		{"just below threshold", 9, 0, nil},
		{"several thresholds", 150, 12, []Kind{KindScore10, KindScore100, KindSubmissions1, KindSubmissions10}},
		{"everything", 1000, 100, []Kind{
			KindScore10, KindScore100, KindScore1000,
			KindSubmissions1, KindSubmissions10, KindSubmissions100,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EligibleKinds(tt.score, tt.submissions)
			if len(got) != len(tt.want) {
				t.Fatalf("EligibleKinds(%d, %d) = %v, want %v", tt.score, tt.submissions, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("EligibleKinds(%d, %d)[%d] = %s, want %s", tt.score, tt.submissions, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestForRank(t *testing.T) {
	tests := []struct {
		rank int
		want Kind
	}{
		{1, KindFirstPlace},
		{2, KindSecondPlace},
		{3, KindThirdPlace},
		{4, KindParticipation},
		{50, KindParticipation},
	}
	for _, tt := range tests {
		if got := ForRank(tt.rank); got != tt.want {
			t.Errorf("ForRank(%d) = %s, want %s", tt.rank, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	def, ok := Lookup(KindFirstPlace)
	if !ok {
		t.Fatal("Lookup(first_place) not found")
	}
	if def.Name != "First Badge" {
		t.Errorf("Lookup(first_place).Name = %q, want %q", def.Name, "First Badge")
	}
	if _, ok := Lookup(Kind("no_such_badge")); ok {
		t.Error("Lookup(no_such_badge) should not be found")
	}
}

func TestGrantIdempotent(t *testing.T) {
	store := newMemStore(0, 0)
	engine := NewEngine(store)
	ctx := context.Background()

	created, err := engine.Grant(ctx, "user-1", KindFirstPlace)
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if !created {
		t.Error("first Grant should create the badge")
	}

	created, err = engine.Grant(ctx, "user-1", KindFirstPlace)
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if created {
		t.Error("second Grant of the same kind should be a no-op")
	}
}

func TestGrantUnknownKind(t *testing.T) {
	store := newMemStore(0, 0)
	created, err := NewEngine(store).Grant(context.Background(), "user-1", Kind("bogus"))
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if created {
		t.Error("an unknown kind must not create anything")
	}
	if len(store.owned) != 0 {
		t.Error("store should stay empty for an unknown kind")
	}
}

func TestGrantEligible(t *testing.T) {
	store := newMemStore(42, 3)
	engine := NewEngine(store)
	ctx := context.Background()

	granted, err := engine.GrantEligible(ctx, "user-1")
	if err != nil {
		t.Fatalf("GrantEligible: %v", err)
	}
	want := []Kind{KindScore10, KindSubmissions1}
	if len(granted) != len(want) {
		t.Fatalf("GrantEligible = %v, want %v", granted, want)
	}
	for i := range granted {
		if granted[i] != want[i] {
			t.Errorf("GrantEligible[%d] = %s, want %s", i, granted[i], want[i])
		}
	}

	// deuxième passage : plus rien à attribuer
	granted, err = engine.GrantEligible(ctx, "user-1")
	if err != nil {
		t.Fatalf("GrantEligible: %v", err)
	}
	if len(granted) != 0 {
		t.Errorf("second GrantEligible = %v, want empty", granted)
	}
}

func TestGrantConcurrent(t *testing.T) {
	store := newMemStore(0, 0)
	engine := NewEngine(store)
	ctx := context.Background()

	const n = 16
	results := make(chan bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := engine.Grant(ctx, "user-1", KindScore10)
			if err != nil {
				t.Errorf("Grant: %v", err)
				return
			}
			results <- created
		}()
	}
	wg.Wait()
	close(results)

	createdCount := 0
	for created := range results {
		if created {
			createdCount++
		}
	}
	if createdCount != 1 {
		t.Errorf("%d concurrent grants created %d badges, want exactly 1", n, createdCount)
	}
}
