package service

import (
	"context"
	"fmt"
	"time"

	"github.com/arisathang/Stock-management/internal/cache"
	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/arisathang/Stock-management/internal/report"
	"github.com/arisathang/Stock-management/internal/repository"
	"github.com/rs/zerolog/log"
)

// StockService serves the live stock page: the current or historical snapshot
// together with threshold alerts.
type StockService struct {
	repo  repository.StockRepository
	cache cache.StockStatusCache
}

func NewStockService(repo repository.StockRepository, cacheImpl cache.StockStatusCache) *StockService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopStockStatusCache()
	}
	return &StockService{repo: repo, cache: cacheImpl}
}

// GetStockStatus returns the snapshot for the given day, or the live snapshot
// when date is nil, with alerts computed on the way out.
func (s *StockService) GetStockStatus(ctx context.Context, date *time.Time) (*domain.StockStatus, error) {
	dateKey := cache.LatestStockKey
	if date != nil {
		dateKey = date.Format("2006-01-02")
	}

	if status, ok, err := s.cache.GetStatus(ctx, dateKey); err == nil && ok {
		return status, nil
	} else if err != nil {
		log.Warn().Err(err).Str("date", dateKey).Msg("stock: cache get status failed")
	}

	var (
		items []domain.Item
		err   error
	)
	if date != nil {
		items, err = s.repo.GetStockLevelsForDate(ctx, *date)
	} else {
		items, err = s.repo.GetStockLevels(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("stock: load snapshot: %w", err)
	}
	if items == nil {
		items = make([]domain.Item, 0)
	}

	status := &domain.StockStatus{
		StockItems: items,
		Alerts:     report.StockAlerts(items),
	}

	if err := s.cache.SetStatus(ctx, dateKey, status); err != nil {
		log.Warn().Err(err).Str("date", dateKey).Msg("stock: cache set status failed")
	}

	return status, nil
}

// UpdateStock records a stock correction for one product on one day and
// drops every cached snapshot, since both the day's row and the live page
// may have changed.
func (s *StockService) UpdateStock(ctx context.Context, productID string, remainingStock int, recordDate time.Time) error {
	if productID == "" {
		return fmt.Errorf("stock: product id is required")
	}
	if remainingStock < 0 {
		return fmt.Errorf("stock: remaining stock must not be negative, got %d", remainingStock)
	}

	if err := s.repo.UpdateStock(ctx, productID, remainingStock, recordDate); err != nil {
		return fmt.Errorf("stock: update %s: %w", productID, err)
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("stock: cache invalidation failed")
	}

	return nil
}
