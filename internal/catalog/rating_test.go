package catalog

import (
	"errors"
	"testing"
)

func TestStore_SetRating_Average(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := addTestMovie(t, store, "Rated Movie", 1)

	if err := store.SetRating(m.ID, "alice", 5); err != nil {
		t.Fatalf("SetRating: %v", err)
	}
	if err := store.SetRating(m.ID, "bob", 2); err != nil {
		t.Fatalf("SetRating: %v", err)
	}

	got, err := store.GetMedia(m.ID)
	if err != nil {
		t.Fatalf("GetMedia: %v", err)
	}
	if got.Rating != 3.5 {
		t.Errorf("aggregate rating = %v, want 3.5", got.Rating)
	}
}

func TestStore_SetRating_Upsert(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := addTestMovie(t, store, "Rated Movie", 1)

	if err := store.SetRating(m.ID, "alice", 1); err != nil {
		t.Fatalf("SetRating: %v", err)
	}
	if err := store.SetRating(m.ID, "alice", 4); err != nil {
		t.Fatalf("SetRating (second): %v", err)
	}

	score, err := store.UserRating(m.ID, "alice")
	if err != nil {
		t.Fatalf("UserRating: %v", err)
	}
	if score != 4 {
		t.Errorf("UserRating = %d, want 4 (replaced)", score)
	}

	got, err := store.GetMedia(m.ID)
	if err != nil {
		t.Fatalf("GetMedia: %v", err)
	}
	if got.Rating != 4 {
		t.Errorf("aggregate rating = %v, want 4 (one voter)", got.Rating)
	}
}

func TestStore_SetRating_OutOfRange(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := addTestMovie(t, store, "Rated Movie", 1)

	for _, score := range []int{0, 6, -1} {
		if err := store.SetRating(m.ID, "alice", score); !errors.Is(err, ErrConstraint) {
			t.Errorf("SetRating(%d): expected ErrConstraint, got %v", score, err)
		}
	}
}

func TestStore_UserRating_NoneIsZero(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := addTestMovie(t, store, "Unrated", 1)
	score, err := store.UserRating(m.ID, "nobody")
	if err != nil {
		t.Fatalf("UserRating: %v", err)
	}
	if score != 0 {
		t.Errorf("UserRating = %d, want 0", score)
	}
}
