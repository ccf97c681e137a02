package storagekit

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Default driver to use (local, memory, drive)
	Driver string `env:"STORAGEKIT_DRIVER,default:local"`

	// Local driver configuration
	LocalRoot string `env:"STORAGEKIT_LOCAL_ROOT,default:./storage"`

	// Memory driver configuration
	MemoryMaxSize int64 `env:"STORAGEKIT_MEMORY_MAX_SIZE,default:0"`

	// Google Drive driver configuration
	DriveCredentialsFile string `env:"STORAGEKIT_DRIVE_CREDENTIALS_FILE"` // Path to service account JSON
	DriveRootID          string `env:"STORAGEKIT_DRIVE_ROOT_ID"`          // Opaque handle of the root folder

	// ReadOnly wraps the backend so every mutating operation fails
	ReadOnly bool `env:"STORAGEKIT_READ_ONLY,default:false"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
