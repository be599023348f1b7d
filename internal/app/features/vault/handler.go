// internal/app/features/vault/handler.go
package vault

import (
	uierrors "github.com/dalemusser/vaulthub/internal/app/features/errors"
	resourcestore "github.com/dalemusser/vaulthub/internal/app/store/resources"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// Handler owns the vault-facing resource handlers: list with live
// filtering, create, edit, delete, and media download.
//
// It is constructed once at startup in bootstrap, using the shared
// resource store, file storage, and logger.
type Handler struct {
	Resources *resourcestore.Store
	Files     storage.Store
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler constructs a vault Handler.
func NewHandler(resources *resourcestore.Store, files storage.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Resources: resources,
		Files:     files,
		ErrLog:    errLog,
		Log:       logger,
	}
}
