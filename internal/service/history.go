package service

import (
	"context"
	"fmt"

	"github.com/jask/multitimer/internal/database/repository"
)

// HistoryService reads and clears the expiry journal.
type HistoryService struct {
	Expiries *repository.ExpiryRepo
}

func (s *HistoryService) Recent(ctx context.Context, limit int) ([]repository.Expiry, error) {
	if s.Expiries == nil {
		return nil, fmt.Errorf("history: repo not configured")
	}
	list, err := s.Expiries.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list expiries: %w", err)
	}
	return list, nil
}

// Count reports how many expiries the journal holds.
func (s *HistoryService) Count(ctx context.Context) (int, error) {
	if s.Expiries == nil {
		return 0, fmt.Errorf("history: repo not configured")
	}
	n, err := s.Expiries.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count expiries: %w", err)
	}
	return n, nil
}

// Clear wipes the journal and reports how many rows went.
func (s *HistoryService) Clear(ctx context.Context) (int64, error) {
	if s.Expiries == nil {
		return 0, fmt.Errorf("history: repo not configured")
	}
	n, err := s.Expiries.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear expiries: %w", err)
	}
	return n, nil
}
