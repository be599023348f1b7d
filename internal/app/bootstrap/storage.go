// internal/app/bootstrap/storage.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// buildStorage constructs the file storage backend selected in config.
// ValidateConfig has already rejected unknown types and missing fields,
// so the default arm here is a guard, not a user-facing error path.
func buildStorage(appCfg AppConfig, logger *zap.Logger) (storage.Store, error) {
	switch appCfg.StorageType {
	case "local":
		store, err := storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
		if err != nil {
			return nil, fmt.Errorf("init local storage: %w", err)
		}
		logger.Info("using local file storage",
			zap.String("path", appCfg.StorageLocalPath),
			zap.String("url_prefix", appCfg.StorageLocalURL))
		return store, nil

	case "s3":
		store, err := storage.NewS3(context.Background(), storage.S3Config{
			Region: appCfg.StorageS3Region,
			Bucket: appCfg.StorageS3Bucket,
			Prefix: appCfg.StorageS3Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 storage: %w", err)
		}
		logger.Info("using s3 file storage",
			zap.String("bucket", appCfg.StorageS3Bucket),
			zap.String("region", appCfg.StorageS3Region))
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage_type %q", appCfg.StorageType)
	}
}
