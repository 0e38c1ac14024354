package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a TOML file, by default
// ~/.filesearch/config.toml. In memory the settings are a flat map of
// dotted keys; on disk each key prefix becomes a TOML table, so the
// file reads as sections ([textgen], [stores], [ingestion], ...) and
// stays hand-editable. The file holds API keys, so it is written 0600.
type ConfigStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// NewConfigStore opens the config file under configDir, creating the
// directory if needed. An empty configDir means ~/.filesearch.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		configDir = filepath.Join(home, ".filesearch")
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &ConfigStore{
		path:   filepath.Join(configDir, "config.toml"),
		values: make(map[string]any),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the raw value for a dotted key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// GetString returns the string under key, or "" on a miss or type
// mismatch.
func (s *ConfigStore) GetString(key string) string {
	value, _ := s.Get(key)
	str, _ := value.(string)
	return str
}

// GetInt returns the integer under key, or 0 on a miss or type
// mismatch. TOML decodes integers as int64.
func (s *ConfigStore) GetInt(key string) int {
	value, _ := s.Get(key)
	switch v := value.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetBool returns the boolean under key, or false on a miss or type
// mismatch.
func (s *ConfigStore) GetBool(key string) bool {
	value, _ := s.Get(key)
	b, _ := value.(bool)
	return b
}

// Set stores a value under a dotted key and rewrites the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.persist()
}

// Path returns the config file location.
func (s *ConfigStore) Path() string {
	return s.path
}

// load reads the file into the flat key map. A missing file is an
// empty configuration.
func (s *ConfigStore) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var tables map[string]any
	if err := toml.Unmarshal(raw, &tables); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]any)
	flattenInto(s.values, "", tables)
	return nil
}

// persist writes the flat map back as nested tables. Caller holds the
// lock.
func (s *ConfigStore) persist() error {
	raw, err := toml.Marshal(expandKeys(s.values))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// flattenInto turns nested tables into dotted keys: {"textgen":
// {"model": m}} becomes {"textgen.model": m}.
func flattenInto(out map[string]any, prefix string, tables map[string]any) {
	for key, value := range tables {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(out, full, nested)
			continue
		}
		out[full] = value
	}
}

// expandKeys is the inverse of flattenInto: dotted keys become nested
// tables so the written TOML groups settings into sections.
func expandKeys(flat map[string]any) map[string]any {
	root := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		table := root
		for _, part := range parts[:len(parts)-1] {
			next, ok := table[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				table[part] = next
			}
			table = next
		}
		table[parts[len(parts)-1]] = value
	}
	return root
}
