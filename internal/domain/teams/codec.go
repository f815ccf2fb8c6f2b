package teams

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeError reports a persisted collection that does not match the Team schema.
type DecodeError struct {
	Index  int // -1 when the payload itself is malformed
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("decode teams: %s", e.Reason)
	}
	return fmt.Sprintf("decode teams: record %d: %s", e.Index, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeCollection serializes the whole collection as a JSON array.
func EncodeCollection(items []Team) ([]byte, error) {
	if items == nil {
		items = []Team{}
	}
	return json.Marshal(items)
}

// DecodeCollection parses and validates a persisted collection.
// Unknown fields, missing ids/names, zero timestamps and duplicate ids are rejected.
func DecodeCollection(raw []byte) ([]Team, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Team{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	var items []Team
	if err := dec.Decode(&items); err != nil {
		return nil, &DecodeError{Index: -1, Reason: "malformed json", Err: err}
	}

	seen := make(map[string]struct{}, len(items))
	for i := range items {
		t := &items[i]
		switch {
		case strings.TrimSpace(t.ID) == "":
			return nil, &DecodeError{Index: i, Reason: "missing id"}
		case strings.TrimSpace(t.Name) == "":
			return nil, &DecodeError{Index: i, Reason: "missing name"}
		case t.CreatedAt.IsZero() || t.UpdatedAt.IsZero():
			return nil, &DecodeError{Index: i, Reason: "missing timestamps"}
		}
		if _, dup := seen[t.ID]; dup {
			return nil, &DecodeError{Index: i, Reason: "duplicate id " + t.ID}
		}
		seen[t.ID] = struct{}{}
		if t.PlayerIDs == nil {
			t.PlayerIDs = []int{}
		}
	}
	return items, nil
}
