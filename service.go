package storagekit

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gobeaver/beaver-kit/config"
)

// Global instance
var (
	defaultStorage *Storage
	defaultOnce    sync.Once
	defaultErr     error
)

// Builder provides a way to create Storage instances with custom env prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Init initializes the global Storage instance using the builder's prefix
func (b *Builder) Init() error {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return err
	}
	return Init(cfg)
}

// New creates a new Storage instance using the builder's prefix
func (b *Builder) New() (*Storage, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg)
}

// Init initializes the global storage instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultStorage, defaultErr = New(cfg)
	})

	return defaultErr
}

// New creates a new storage instance with given config
func New(cfg *Config) (*Storage, error) {
	// Validation
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Create backend using factory
	backend, err := CreateDriver(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	// Wrap read-only if configured
	if cfg.ReadOnly {
		backend = NewReadOnlyBackend(backend)
	}

	return NewStorage(backend), nil
}

// validateConfig checks configuration validity
func validateConfig(cfg *Config) error {
	if cfg.Driver == "" {
		return errors.New("driver is required")
	}

	switch cfg.Driver {
	case "local":
		if cfg.LocalRoot == "" {
			return errors.New("local root is required for local driver")
		}
	case "memory":
		// No required settings
	case "drive":
		if cfg.DriveRootID == "" {
			return errors.New("Drive root ID is required for drive driver")
		}
	default:
		return fmt.Errorf("unknown driver: %s", cfg.Driver)
	}

	return nil
}

// Default returns the global instance, initializing if needed
func Default() (*Storage, error) {
	if defaultStorage == nil {
		if err := Init(); err != nil {
			return nil, err
		}
	}
	return defaultStorage, nil
}

// NewFromEnv creates an instance from environment variables (convenience constructor)
func NewFromEnv() (*Storage, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// InitFromEnv initializes the global instance from environment variables (convenience method)
func InitFromEnv() error {
	return Init()
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultStorage = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}
