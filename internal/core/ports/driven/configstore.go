package driven

// ConfigStore reads and writes application settings addressed by dotted
// keys matching the settings sections, e.g. "textgen.provider" or
// "ingestion.max_overlap_tokens". The settings service owns the key
// vocabulary and all fallback-to-default behavior; implementations only
// store values and convert types.
type ConfigStore interface {
	// Get returns the raw value for a key and whether it is set.
	Get(key string) (any, bool)

	// GetString returns the value for a key, or "" when the key is
	// unset or not a string.
	GetString(key string) string

	// GetInt returns the value for a key, or 0 when the key is unset
	// or not an integer.
	GetInt(key string) int

	// GetBool returns the value for a key, or false when the key is
	// unset or not a boolean.
	GetBool(key string) bool

	// Set stores a value under a key and persists it.
	Set(key string, value any) error

	// Path identifies the backing location for user-facing output.
	Path() string
}
