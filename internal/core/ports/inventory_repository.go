package ports

import (
	"context"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// InventoryUpdate carries the mutable fields of a stock item. Nil pointers
// leave the stored value untouched.
type InventoryUpdate struct {
	Name              *string
	Quantity          *float64
	Unit              *string
	LowStockThreshold *float64
}

// InventoryRepository defines persistence operations on a user's stock.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	// ListByUser returns all items ordered by name.
	ListByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	// Update returns domain.ErrInventoryItemNotFound when the id does not
	// belong to the user.
	Update(ctx context.Context, userID, id string, update InventoryUpdate) error
	Delete(ctx context.Context, userID, id string) error
}
