package service

import (
	"context"

	"metalpedia-backend/internal/domains/stats/model"
	"metalpedia-backend/internal/domains/stats/repository"
)

type statsService struct {
	repo repository.RepositoryInterface
}

func NewStatsService(repo repository.RepositoryInterface) ServiceInterface {
	return &statsService{repo: repo}
}

func (s *statsService) Get(ctx context.Context) (*model.Stats, error) {
	return s.repo.Counts(ctx)
}

func (s *statsService) Invalidate(ctx context.Context) {
	s.repo.Invalidate(ctx)
}

// Noop is used where counters are not cached (tests, tools)
type Noop struct{}

func (Noop) Invalidate(context.Context) {}
