package players

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlayerJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	playerType := reflect.TypeOf(Player{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"FirstName", "firstName"},
		{"LastName", "lastName"},
		{"Position", "position"},
		{"JerseyNumber", "jerseyNumber"},
		{"DraftYear", "draftYear"},
		{"Team", "team"},
	}
	for _, fc := range fields {
		f, ok := playerType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestQueryKeyCoversAllFields(t *testing.T) {
	cursor := 40
	base := Query{PerPage: 20, Filters: Filters{Search: "lebr"}}
	keys := map[string]Query{
		"base":       base,
		"cursor":     {PerPage: 20, Cursor: &cursor, Filters: Filters{Search: "lebr"}},
		"per_page":   {PerPage: 10, Filters: Filters{Search: "lebr"}},
		"first_name": {PerPage: 20, Filters: Filters{Search: "lebr", FirstName: "LeBron"}},
		"last_name":  {PerPage: 20, Filters: Filters{Search: "lebr", LastName: "James"}},
		"team_ids":   {PerPage: 20, Filters: Filters{Search: "lebr", TeamIDs: []int{14}}},
		"player_ids": {PerPage: 20, Filters: Filters{Search: "lebr", PlayerIDs: []int{237}}},
	}
	seen := make(map[string]string)
	for name, q := range keys {
		k := q.Key()
		if other, ok := seen[k]; ok {
			t.Fatalf("queries %s and %s share key %q", name, other, k)
		}
		seen[k] = name
	}
}

func TestQueryKeySortsIDs(t *testing.T) {
	a := Query{PerPage: 100, Filters: Filters{PlayerIDs: []int{3, 1, 2}}}
	b := Query{PerPage: 100, Filters: Filters{PlayerIDs: []int{1, 2, 3}}}
	if a.Key() != b.Key() {
		t.Fatalf("expected same key for same id set, got %q vs %q", a.Key(), b.Key())
	}
	if a.PlayerIDs[0] != 3 {
		t.Fatal("expected Key not to reorder the caller's slice")
	}
}

func TestMergeUniqueKeepsFirst(t *testing.T) {
	selected := []Player{{ID: 1, FirstName: "Selected"}}
	searched := []Player{{ID: 2}, {ID: 1, FirstName: "Searched"}, {ID: 3}}

	got := MergeUnique(selected, searched)

	if diff := cmp.Diff([]int{1, 2, 3}, IDs(got)); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
	if got[0].FirstName != "Selected" {
		t.Fatalf("expected first occurrence kept, got %+v", got[0])
	}
}

func TestPageHasNext(t *testing.T) {
	next := 5
	if (Page{}).HasNext() {
		t.Fatal("expected no next page without cursor")
	}
	if !(Page{Meta: Meta{NextCursor: &next}}).HasNext() {
		t.Fatal("expected next page with cursor")
	}
	if got := (Player{FirstName: "LeBron", LastName: "James"}).FullName(); got != "LeBron James" {
		t.Fatalf("unexpected full name %q", got)
	}
}
