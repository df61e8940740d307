package service

import (
	"RGFlow/internal/report"
	"RGFlow/internal/store"
	"context"
	"time"
)

// DashboardService считает показатели по текущему состоянию.
type DashboardService struct {
	store *store.Store
	now   func() time.Time
}

func NewDashboardService(st *store.Store) *DashboardService {
	return &DashboardService{store: st, now: time.Now}
}

func (s *DashboardService) Metrics(ctx context.Context) (report.Metrics, error) {
	st, err := s.store.Read(ctx)
	if err != nil {
		return report.Metrics{}, err
	}
	return report.ComputeMetrics(st, s.now()), nil
}
