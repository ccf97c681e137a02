package memory

import (
	"github.com/gobeaver/storagekit"
)

func init() {
	storagekit.RegisterDriver("memory", func(cfg *storagekit.Config) (storagekit.Backend, error) {
		return New(Config{MaxSize: cfg.MemoryMaxSize}), nil
	})
}
