package teams

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestCollectionRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	items := []Team{
		{ID: "a", Name: "Alpha", Region: "West", Country: "USA", PlayerIDs: []int{1, 2}, CreatedAt: now, UpdatedAt: now},
		{ID: "b", Name: "Beta", Region: "East", Country: "USA", PlayerIDs: []int{}, CreatedAt: now, UpdatedAt: now.Add(time.Hour)},
	}

	raw, err := EncodeCollection(items)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeCollection(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(items, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeNilCollection(t *testing.T) {
	raw, err := EncodeCollection(nil)
	if err != nil || string(raw) != "[]" {
		t.Fatalf("expected [] for nil collection, got %s (%v)", raw, err)
	}
}

func TestDecodeCollectionEmptyInputs(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "[]"} {
		got, err := DecodeCollection([]byte(raw))
		if err != nil || len(got) != 0 {
			t.Fatalf("expected empty collection for %q, got %v (%v)", raw, got, err)
		}
	}
}

func TestDecodeCollectionRejectsBadRecords(t *testing.T) {
	ts := `"createdAt":"2024-05-01T12:00:00Z","updatedAt":"2024-05-01T12:00:00Z"`
	cases := map[string]struct {
		raw   string
		index int
	}{
		"malformed":     {raw: `{not json`, index: -1},
		"not_array":     {raw: `{"id":"a"}`, index: -1},
		"unknown_field": {raw: `[{"id":"a","name":"A","bogus":1,` + ts + `}]`, index: -1},
		"missing_id":    {raw: `[{"name":"A",` + ts + `}]`, index: 0},
		"missing_name":  {raw: `[{"id":"a",` + ts + `}]`, index: 0},
		"missing_ts":    {raw: `[{"id":"a","name":"A"}]`, index: 0},
		"duplicate_id":  {raw: `[{"id":"a","name":"A",` + ts + `},{"id":"a","name":"B",` + ts + `}]`, index: 1},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCollection([]byte(tc.raw))
			var dErr *DecodeError
			if !errors.As(err, &dErr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
			if dErr.Index != tc.index {
				t.Fatalf("expected index %d, got %d (%v)", tc.index, dErr.Index, dErr)
			}
		})
	}
}

func TestDecodeCollectionDefaultsPlayerIDs(t *testing.T) {
	raw := `[{"id":"a","name":"A","createdAt":"2024-05-01T12:00:00Z","updatedAt":"2024-05-01T12:00:00Z"}]`
	got, err := DecodeCollection([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got[0].PlayerIDs == nil {
		t.Fatal("expected non-nil player ids")
	}
}
