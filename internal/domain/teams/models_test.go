package teams

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTeamJSONTags(t *testing.T) {
	teamType := reflect.TypeOf(Team{})
	fields := map[string]string{
		"ID":        "id",
		"Name":      "name",
		"Region":    "region",
		"Country":   "country",
		"PlayerIDs": "playerIds",
		"CreatedAt": "createdAt",
		"UpdatedAt": "updatedAt",
	}
	for name, tag := range fields {
		f, ok := teamType.FieldByName(name)
		if !ok {
			t.Fatalf("missing field %s", name)
		}
		if got := f.Tag.Get("json"); got != tag {
			t.Fatalf("field %s expected tag %s, got %s", name, tag, got)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		form   FormData
		fields map[string]string
	}{
		{
			name: "valid",
			form: FormData{Name: "Lakers Fans", Region: "West", Country: "USA"},
		},
		{
			name:   "empty_everything",
			form:   FormData{Name: "   "},
			fields: map[string]string{"name": MsgNameRequired, "region": MsgRegionRequired, "country": MsgCountryRequired},
		},
		{
			name:   "short_name_after_trim",
			form:   FormData{Name: "  ab  ", Region: "West", Country: "USA"},
			fields: map[string]string{"name": MsgNameTooShort},
		},
		{
			name: "three_runes_ok",
			form: FormData{Name: "Ñandú", Region: "South", Country: "AR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.fields == nil {
				if err != nil {
					t.Fatalf("expected valid form, got %v", err)
				}
				return
			}
			vErr, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if diff := cmp.Diff(tt.fields, vErr.Fields); diff != "" {
				t.Fatalf("unexpected field errors (-want +got):\n%s", diff)
			}
			if !errors.Is(err, ErrInvalidForm) {
				t.Fatal("expected errors.Is(err, ErrInvalidForm)")
			}
		})
	}
}

func TestSameName(t *testing.T) {
	if !SameName("Lakers", " lakers ") {
		t.Fatal("expected case-insensitive trimmed match")
	}
	if SameName("Lakers", "Lakers2") {
		t.Fatal("expected different names not to match")
	}
}

func TestApplyAndRemovePlayer(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	team := Team{ID: "t1", Name: "Old", PlayerIDs: []int{1}}
	form := FormData{Name: "New", Region: "East", Country: "USA", PlayerIDs: []int{2, 3, 2}}

	team.Apply(form, now)
	form.PlayerIDs[0] = 99

	if team.Name != "New" || team.Region != "East" || !team.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected team after apply %+v", team)
	}
	if diff := cmp.Diff([]int{2, 3, 2}, team.PlayerIDs); diff != "" {
		t.Fatalf("expected copied player ids (-want +got):\n%s", diff)
	}
	if !team.RemovePlayer(2) {
		t.Fatal("expected removal to report a change")
	}
	if diff := cmp.Diff([]int{3}, team.PlayerIDs); diff != "" {
		t.Fatalf("unexpected ids after removal (-want +got):\n%s", diff)
	}
	if team.RemovePlayer(42) {
		t.Fatal("expected no change for absent player")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Team{ID: "t1", PlayerIDs: []int{1, 2}}
	cp := orig.Clone()
	cp.PlayerIDs[0] = 9
	if orig.PlayerIDs[0] != 1 {
		t.Fatal("expected clone not to share backing array")
	}
}

func TestFailedResult(t *testing.T) {
	res := Failed(ErrNameTaken)
	if res.Success || res.Error != "Team name already exists" {
		t.Fatalf("unexpected result %+v", res)
	}

	res = Failed(FormData{}.Validate())
	if res.Success || res.FieldErrors["name"] != MsgNameRequired {
		t.Fatalf("expected field errors, got %+v", res)
	}

	assigned := &PlayerAssignedError{PlayerID: 237, TeamID: "t1", TeamName: "Lakers Fans"}
	if !errors.Is(assigned, ErrPlayerAssigned) || !IsConflict(assigned) {
		t.Fatal("expected player assigned error to be a conflict")
	}
	if !strings.Contains(assigned.Error(), "237") {
		t.Fatalf("expected player id in message, got %q", assigned.Error())
	}
}
