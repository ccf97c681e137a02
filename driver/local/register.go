package local

import "github.com/gobeaver/storagekit"

func init() {
	storagekit.RegisterDriver("local", func(cfg *storagekit.Config) (storagekit.Backend, error) {
		return New(cfg.LocalRoot)
	})
}
