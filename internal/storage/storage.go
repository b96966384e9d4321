package storage

import (
	"errors"
	"fmt"

	"caselist/internal/config"
	"caselist/internal/domain"
)

// ErrNoResults is returned by Load when no run has been stored yet
var ErrNoResults = errors.New("no stored run results")

// Storage persists and loads run results (e.g. for the failures viewer).
type Storage interface {
	// Save writes the run, replacing a stored run with the same ID.
	Save(output *domain.RunOutput) error
	// Load returns the most recent run.
	Load() (*domain.RunOutput, error)
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// New returns the backend selected by the configuration
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage {
	case "", config.StorageJSON:
		return NewJSONStorage(cfg), nil
	case config.StorageMySQL:
		return NewSQLStorage(cfg), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// Configured picks the backend from the configuration on every call, so it
// can be created before config files and flags are applied.
type Configured struct {
	cfg *config.Config
}

// NewConfigured creates a new Configured storage
func NewConfigured(cfg *config.Config) *Configured {
	return &Configured{cfg: cfg}
}

// Save writes the run to the configured backend
func (c *Configured) Save(output *domain.RunOutput) error {
	st, err := New(c.cfg)
	if err != nil {
		return err
	}
	return st.Save(output)
}

// Load reads the most recent run from the configured backend
func (c *Configured) Load() (*domain.RunOutput, error) {
	st, err := New(c.cfg)
	if err != nil {
		return nil, err
	}
	return st.Load()
}
