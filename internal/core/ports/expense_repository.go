package ports

import (
	"context"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// ExpenseUpdate carries the mutable fields of an expense. Nil pointers leave
// the stored value untouched.
type ExpenseUpdate struct {
	Date        *string
	Type        *string
	Value       *float64
	Supplier    *string
	Description *string
	Category    *string
}

// ExpenseRepository defines persistence operations on a user's expenses.
// Every operation is scoped to a single user id.
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	// ListByUser returns up to limit expenses, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Expense, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	// Update returns domain.ErrExpenseNotFound when the id does not belong
	// to the user.
	Update(ctx context.Context, userID, id string, update ExpenseUpdate) error
	Delete(ctx context.Context, userID, id string) error
}
