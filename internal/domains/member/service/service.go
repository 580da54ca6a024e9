package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"metalpedia-backend/internal/domains/member/model"
	"metalpedia-backend/internal/domains/member/repository"
	"metalpedia-backend/internal/infrastructure/metrics"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/auth"
)

type memberService struct {
	repo  repository.RepositoryInterface
	bands BandReader
	now   func() time.Time
}

func NewMemberService(repo repository.RepositoryInterface, bands BandReader) ServiceInterface {
	return &memberService{repo: repo, bands: bands, now: time.Now}
}

func (s *memberService) Create(ctx context.Context, p *auth.Principal, req model.CreateMemberRequest) (*model.Member, error) {
	// Step 1: caller and fields
	req.Normalize()
	if err := auth.RequireActor(p, req.AddedBy, model.ErrAddressMismatch); err != nil {
		return nil, err
	}
	if err := apperr.FromValidation(model.ErrInvalidMember, req.Validate()); err != nil {
		return nil, err
	}

	// Step 2: parent band must exist
	bandID := uuid.MustParse(req.BandID)
	if _, err := s.bands.GetByID(ctx, bandID); err != nil {
		return nil, err
	}

	// Step 3: insert
	m := &model.Member{
		ID:        uuid.New(),
		BandID:    bandID,
		Name:      req.Name,
		Role:      req.Role,
		IsCurrent: req.Current(),
		AddedBy:   p.Address,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("member", "create").Inc()
	return m, nil
}

// loadOwned is the 404-then-403 check shared by update and delete
func (s *memberService) loadOwned(ctx context.Context, p *auth.Principal, id uuid.UUID) (*model.Member, error) {
	if err := auth.Require(p); err != nil {
		return nil, err
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(p, m.AddedBy, model.ErrForbidden); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *memberService) Update(
	ctx context.Context,
	p *auth.Principal,
	id uuid.UUID,
	req model.UpdateMemberRequest,
) (*model.Member, error) {
	m, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := apperr.FromValidation(model.ErrInvalidMember, req.Validate()); err != nil {
		return nil, err
	}

	now := s.now()
	m.Name = req.Name
	m.Role = req.Role
	if req.IsCurrent != nil {
		m.IsCurrent = *req.IsCurrent
	}
	m.UpdatedAt = &now

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("member", "update").Inc()
	return m, nil
}

func (s *memberService) Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) error {
	if _, err := s.loadOwned(ctx, p, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("member", "delete").Inc()
	return nil
}
