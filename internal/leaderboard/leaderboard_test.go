package leaderboard

import (
	"testing"
	"time"

	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
)

func sub(userID string, score int) model.Submission {
	return model.Submission{UserID: userID, Score: score}
}

func TestAggregateEmpty(t *testing.T) {
	entries := Aggregate(nil)
	if len(entries) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", entries)
	}
}

func TestAggregateSumsPerUser(t *testing.T) {
	entries := Aggregate([]model.Submission{
		sub("alice", 10),
		sub("bob", 5),
		sub("alice", 20),
		sub("bob", -10),
	})

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].UserID != "alice" || entries[0].Score != 30 || entries[0].Rank != 1 {
		t.Errorf("entries[0] = %+v, want alice/30/rank 1", entries[0])
	}
	if entries[1].UserID != "bob" || entries[1].Score != -5 || entries[1].Rank != 2 {
		t.Errorf("entries[1] = %+v, want bob/-5/rank 2", entries[1])
	}
}

func TestAggregateTieBreak(t *testing.T) {
	// scores égaux : ordre déterministe par identifiant croissant
	entries := Aggregate([]model.Submission{
		sub("charlie", 10),
		sub("alice", 10),
		sub("bob", 10),
	})

	wantOrder := []string{"alice", "bob", "charlie"}
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Errorf("entries[%d].UserID = %s, want %s", i, entries[i].UserID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("entries[%d].Rank = %d, want %d", i, entries[i].Rank, i+1)
		}
	}
}

func TestAggregateSkipsDeletedSubmissions(t *testing.T) {
	now := time.Now()
	deleted := sub("alice", 50)
	deleted.DeletedAt = &now

	entries := Aggregate([]model.Submission{
		deleted,
		sub("alice", 10),
	})
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Score != 10 {
		t.Errorf("score = %d, want 10 (deleted submission excluded)", entries[0].Score)
	}
}

func TestAggregateZeroScoreUsersIncluded(t *testing.T) {
	// un participant sans vote figure quand même au classement
	entries := Aggregate([]model.Submission{
		sub("alice", 10),
		sub("bob", 0),
	})
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[1].UserID != "bob" || entries[1].Score != 0 {
		t.Errorf("entries[1] = %+v, want bob with score 0", entries[1])
	}
}
