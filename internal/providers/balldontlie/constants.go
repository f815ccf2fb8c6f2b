package balldontlie

import "time"

const (
	defaultBaseURL     = "https://api.balldontlie.io/v1"
	defaultPerPage     = 25
	maxPerPage         = 100
	defaultHTTPTimeout = 10 * time.Second
	defaultRetryAfter  = 5 * time.Second
	errorBodyLimit     = 512
)
