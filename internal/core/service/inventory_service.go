package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

type AddInventoryItemInput struct {
	Name              string
	Quantity          float64
	Unit              string
	LowStockThreshold float64
}

// InventoryReport pairs the full item list with the subset running low.
type InventoryReport struct {
	Items    []domain.InventoryItem
	LowStock []domain.InventoryItem
}

type InventoryService struct {
	repo   ports.InventoryRepository
	logger zerolog.Logger
}

func NewInventoryService(repo ports.InventoryRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

func (s *InventoryService) Add(ctx context.Context, uid string, input AddInventoryItemInput) (string, error) {
	item := &domain.InventoryItem{
		ID:                uuid.NewString(),
		UserID:            uid,
		Name:              input.Name,
		Quantity:          input.Quantity,
		Unit:              input.Unit,
		LowStockThreshold: input.LowStockThreshold,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Msg("failed to add inventory item")
		return "", err
	}
	return item.ID, nil
}

func (s *InventoryService) List(ctx context.Context, uid string) (*InventoryReport, error) {
	items, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	report := &InventoryReport{Items: items}
	for _, item := range items {
		if item.IsLowStock() {
			report.LowStock = append(report.LowStock, item)
		}
	}
	return report, nil
}

func (s *InventoryService) Update(ctx context.Context, uid, id string, update ports.InventoryUpdate) error {
	return s.repo.Update(ctx, uid, id, update)
}

func (s *InventoryService) Delete(ctx context.Context, uid, id string) error {
	return s.repo.Delete(ctx, uid, id)
}
