package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrCache    = "cache"
	AttrResult   = "result"
	AttrOp       = "op"
)

// Cache names used by the player directory.
const (
	CacheSearch = "search"
	CacheLookup = "lookup"
)

// Storage operations reported through RecordStorageFailure.
const (
	OpLoad    = "load"
	OpDecode  = "decode"
	OpPersist = "persist"
	OpDelete  = "delete"
)
