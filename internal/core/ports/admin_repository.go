package ports

import (
	"context"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// AdminRepository persists the super-admin designation and the append-only
// administrative audit log.
type AdminRepository interface {
	// SuperAdminUID returns the configured super admin, or "" when none has
	// been set up yet.
	SuperAdminUID(ctx context.Context) (string, error)
	SetSuperAdmin(ctx context.Context, uid, email string) error

	AppendAction(ctx context.Context, action *domain.AdminAction) error
	// ListActions returns up to limit audit entries, newest first.
	ListActions(ctx context.Context, limit int) ([]domain.AdminAction, error)
}
