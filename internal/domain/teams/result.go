package teams

// Result is the structured outcome returned to API callers for create/update.
// Business-rule failures are reported here rather than as transport errors.
type Result struct {
	Success     bool              `json:"success"`
	Error       string            `json:"error,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Team        *Team             `json:"team,omitempty"`
}

// Succeeded wraps a team in a successful Result.
func Succeeded(t Team) Result {
	return Result{Success: true, Team: &t}
}

// Failed builds a failure Result from an error, expanding validation details.
func Failed(err error) Result {
	res := Result{Success: false, Error: err.Error()}
	if vErr, ok := AsValidationError(err); ok {
		res.Error = "Please fix the highlighted fields"
		res.FieldErrors = vErr.Fields
	}
	return res
}
