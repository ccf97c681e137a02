package drive

import (
	"context"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/gobeaver/storagekit"
)

func init() {
	storagekit.RegisterDriver("drive", func(cfg *storagekit.Config) (storagekit.Backend, error) {
		ctx := context.Background()

		// Without an explicit credentials file the client falls back to
		// GOOGLE_APPLICATION_CREDENTIALS or application default credentials
		var options []option.ClientOption
		if cfg.DriveCredentialsFile != "" {
			options = append(options, option.WithCredentialsFile(cfg.DriveCredentialsFile))
		}

		service, err := drive.NewService(ctx, options...)
		if err != nil {
			return nil, err
		}

		return New(service, cfg.DriveRootID), nil
	})
}
