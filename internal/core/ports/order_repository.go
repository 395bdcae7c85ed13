package ports

import (
	"context"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// OrderRepository defines persistence operations on a user's orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	// ListByUser returns up to limit orders, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Order, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	// UpdateStatus returns domain.ErrOrderNotFound when the id does not
	// belong to the user.
	UpdateStatus(ctx context.Context, userID, id string, status domain.OrderStatus) error
}
