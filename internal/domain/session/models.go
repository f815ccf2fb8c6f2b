package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MsgMissingFields is shown when the login form is incomplete.
const MsgMissingFields = "Please fill in all fields"

// ErrMissingFields is returned for an incomplete login form.
var ErrMissingFields = errors.New(MsgMissingFields) //nolint:staticcheck // shown verbatim to users

// Profile identifies the signed-in user.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Record is the persisted session.
type Record struct {
	User            *Profile `json:"user"`
	IsAuthenticated bool     `json:"isAuthenticated"`
}

// Credentials is the login form payload. Authentication is simulated; see app/session.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate requires both fields.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return ErrMissingFields
	}
	return nil
}

// ProfileFromCredentials derives a profile: the display name is the email's local part.
func ProfileFromCredentials(c Credentials) Profile {
	email := strings.TrimSpace(c.Email)
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return Profile{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
	}
}

// DecodeError reports a persisted session that does not match the schema.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode session: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeRecord parses and validates a persisted session record.
func DecodeRecord(raw []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return Record{}, &DecodeError{Reason: "malformed json", Err: err}
	}
	if rec.IsAuthenticated && rec.User == nil {
		return Record{}, &DecodeError{Reason: "authenticated record without user"}
	}
	if rec.User != nil && strings.TrimSpace(rec.User.Email) == "" {
		return Record{}, &DecodeError{Reason: "user without email"}
	}
	return rec, nil
}

// EncodeRecord serializes a session record.
func EncodeRecord(rec Record) ([]byte, error) {
	return json.Marshal(rec)
}
