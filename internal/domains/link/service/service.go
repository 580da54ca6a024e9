package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"metalpedia-backend/internal/domains/link/model"
	"metalpedia-backend/internal/domains/link/repository"
	"metalpedia-backend/internal/infrastructure/metrics"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/auth"
)

type linkService struct {
	repo  repository.RepositoryInterface
	bands BandReader
	now   func() time.Time
}

func NewLinkService(repo repository.RepositoryInterface, bands BandReader) ServiceInterface {
	return &linkService{repo: repo, bands: bands, now: time.Now}
}

func (s *linkService) Create(ctx context.Context, p *auth.Principal, req model.CreateLinkRequest) (*model.Link, error) {
	req.Normalize()
	if err := auth.RequireActor(p, req.AddedBy, model.ErrAddressMismatch); err != nil {
		return nil, err
	}
	if err := apperr.FromValidation(model.ErrInvalidLink, req.Validate()); err != nil {
		return nil, err
	}

	bandID := uuid.MustParse(req.BandID)
	if _, err := s.bands.GetByID(ctx, bandID); err != nil {
		return nil, err
	}

	l := &model.Link{
		ID:        uuid.New(),
		BandID:    bandID,
		Type:      req.Type,
		URL:       req.URL,
		AddedBy:   p.Address,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("link", "create").Inc()
	return l, nil
}

func (s *linkService) Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) error {
	if err := auth.Require(p); err != nil {
		return err
	}

	// Step 1: 404 before 403
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.RequireOwnerOrAdmin(p, l.AddedBy, model.ErrForbidden); err != nil {
		return err
	}

	// Step 2: delete
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("link", "delete").Inc()
	return nil
}
