package adapter

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed config_schema.json
var configSchema string

// Registry maps a target platform's name to its adapter configuration.
// Lookups are case-insensitive on the panel name. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]Config
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{configs: make(map[string]Config)}
}

// Register adds or replaces a target configuration after validating it.
func (r *Registry) Register(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid adapter config %q: %w", cfg.Name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[strings.ToLower(cfg.Name)] = cfg
	return nil
}

// Lookup returns the configuration registered for a target name.
func (r *Registry) Lookup(name string) (Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[strings.ToLower(name)]
	return cfg, ok
}

// Names returns the registered target names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadConfigJSON parses one adapter configuration from JSON, validating it
// against the embedded schema first so malformed operator-supplied files fail
// with field-level messages instead of half-registered targets.
func LoadConfigJSON(data []byte) (Config, error) {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return Config{}, fmt.Errorf("failed to validate adapter config: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return Config{}, fmt.Errorf("adapter config is invalid: %s", strings.Join(msgs, "; "))
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse adapter config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and registers one adapter configuration file.
func (r *Registry) LoadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read adapter config %s: %w", path, err)
	}
	cfg, err := LoadConfigJSON(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return r.Register(cfg)
}
