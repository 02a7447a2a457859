package collection

import (
	"errors"
	"testing"

	"github.com/devlink/devlink/internal/model"
)

func likeKey(l model.Like) string { return l.UserID }

func commentKey(c model.Comment) string { return c.ID }

func TestInsertFront_MostRecentFirst(t *testing.T) {
	t.Parallel()

	var seq []model.Comment
	seq = InsertFront(seq, model.Comment{ID: "c1"})
	seq = InsertFront(seq, model.Comment{ID: "c2"})

	if len(seq) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(seq))
	}
	if seq[0].ID != "c2" || seq[1].ID != "c1" {
		t.Errorf("expected [c2 c1], got [%s %s]", seq[0].ID, seq[1].ID)
	}
}

func TestInsertFront_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	orig := []model.Like{{UserID: "u1"}, {UserID: "u2"}}
	out := InsertFront(orig, model.Like{UserID: "u3"})

	if len(orig) != 2 {
		t.Errorf("input sequence was mutated, len=%d", len(orig))
	}
	if len(out) != 3 || out[0].UserID != "u3" {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestAddUnique_NotIdempotent(t *testing.T) {
	t.Parallel()

	var seq []model.Like

	seq, present := AddUnique(seq, likeKey, model.Like{UserID: "bob"})
	if present {
		t.Fatal("first add should not report alreadyPresent")
	}
	if len(seq) != 1 {
		t.Fatalf("expected length 1 after first add, got %d", len(seq))
	}

	// Second add with the same actor key must be rejected, not no-op'd.
	out, present := AddUnique(seq, likeKey, model.Like{UserID: "bob"})
	if !present {
		t.Error("second add should report alreadyPresent")
	}
	if len(out) != 1 {
		t.Errorf("sequence must be unchanged on duplicate, got length %d", len(out))
	}
}

func TestAddUnique_PrependsNewEntry(t *testing.T) {
	t.Parallel()

	seq := []model.Like{{UserID: "alice"}}
	out, present := AddUnique(seq, likeKey, model.Like{UserID: "bob"})
	if present {
		t.Fatal("bob is not in the sequence yet")
	}
	if out[0].UserID != "bob" || out[1].UserID != "alice" {
		t.Errorf("expected [bob alice], got %+v", out)
	}
}

func TestRemoveByKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seq     []model.Comment
		key     string
		wantIDs []string
		wantErr bool
	}{
		{
			name:    "removes matching entry",
			seq:     []model.Comment{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}},
			key:     "c2",
			wantIDs: []string{"c1", "c3"},
		},
		{
			name:    "removes first entry",
			seq:     []model.Comment{{ID: "c1"}, {ID: "c2"}},
			key:     "c1",
			wantIDs: []string{"c2"},
		},
		{
			name:    "only first match removed on duplicate keys",
			seq:     []model.Comment{{ID: "dup", Text: "a"}, {ID: "dup", Text: "b"}},
			key:     "dup",
			wantIDs: []string{"dup"},
		},
		{
			name:    "missing key fails",
			seq:     []model.Comment{{ID: "c1"}},
			key:     "nope",
			wantIDs: []string{"c1"},
			wantErr: true,
		},
		{
			name:    "empty sequence fails",
			seq:     nil,
			key:     "c1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := RemoveByKey(tt.seq, commentKey, tt.key)
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(out) != len(tt.wantIDs) {
				t.Fatalf("expected %d entries, got %d", len(tt.wantIDs), len(out))
			}
			for i, id := range tt.wantIDs {
				if out[i].ID != id {
					t.Errorf("entry %d: expected %s, got %s", i, id, out[i].ID)
				}
			}
		})
	}
}

func TestRemoveByKey_LeavesInputUnchangedOnMiss(t *testing.T) {
	t.Parallel()

	seq := []model.Comment{{ID: "c1"}, {ID: "c2"}}
	out, err := RemoveByKey(seq, commentKey, "absent")

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(out) != 2 || out[0].ID != "c1" || out[1].ID != "c2" {
		t.Errorf("sequence must be unchanged on miss, got %+v", out)
	}
	// The miss path returns the same backing array.
	if &out[0] != &seq[0] {
		t.Error("expected the original sequence back on miss")
	}
}
