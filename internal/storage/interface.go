package storage

// Medium is a string-keyed, string-valued store. Every entity slot lives
// under one key; values are opaque JSON documents.
type Medium interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Slots
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// SchemaReporter is implemented by media backed by a migrated SQL schema.
type SchemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}

// FileBacked is implemented by media that persist to a single local file,
// so callers can watch it for external changes.
type FileBacked interface {
	FilePath() string
}
