package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	mediaModel "metalpedia-backend/internal/domains/media/model"
	mediaService "metalpedia-backend/internal/domains/media/service"
	statsService "metalpedia-backend/internal/domains/stats/service"
	"metalpedia-backend/internal/domains/user/model"
	"metalpedia-backend/internal/domains/user/repository"
	"metalpedia-backend/internal/infrastructure/metrics"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/auth"
)

type userService struct {
	repo  repository.RepositoryInterface
	media mediaService.ServiceInterface
	stats statsService.Invalidator
}

func NewUserService(
	repo repository.RepositoryInterface,
	media mediaService.ServiceInterface,
	stats statsService.Invalidator,
) ServiceInterface {
	return &userService{repo: repo, media: media, stats: stats}
}

func requireSelf(p *auth.Principal, address string) error {
	if err := auth.Require(p); err != nil {
		return err
	}
	if p.Address != address {
		return model.ErrNotSelf
	}
	return nil
}

func (s *userService) GetOrCreate(ctx context.Context, address string) (*model.User, bool, error) {
	if address == "" {
		return nil, false, model.ErrAddressRequired
	}

	u, created, err := s.repo.GetOrCreate(ctx, address)
	if err != nil {
		return nil, false, err
	}
	if created {
		metrics.MutationsTotal.WithLabelValues("user", "create").Inc()
		s.stats.Invalidate(ctx)
	}
	return u, created, nil
}

func (s *userService) GetProfile(ctx context.Context, address string) (*model.ProfileSummary, error) {
	if address == "" {
		return nil, model.ErrAddressRequired
	}

	u, err := s.repo.GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.DefaultProfile(), nil
		}
		return nil, err
	}
	return u.Summary(), nil
}

func (s *userService) UpdateProfile(
	ctx context.Context,
	p *auth.Principal,
	address string,
	req model.UpdateUserRequest,
) (*model.User, error) {
	// Step 1: caller must be the profile owner
	if err := requireSelf(p, address); err != nil {
		return nil, err
	}

	// Step 2: validate
	req.Normalize()
	if req.Empty() {
		return nil, model.ErrNoValidFields
	}
	if err := apperr.FromValidation(model.ErrInvalidProfile, req.Validate()); err != nil {
		return nil, err
	}

	// Step 3: upsert, the rename limit is enforced by the statement
	u, err := s.repo.UpdateProfile(ctx, address, req.ToUpdate(), p.IsAdmin())
	if err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("user", "update").Inc()
	return u, nil
}

func (s *userService) SaveProfile(
	ctx context.Context,
	p *auth.Principal,
	req model.SaveProfileRequest,
) (*model.SaveProfileResponse, error) {
	if req.Address == "" {
		return nil, model.ErrAddressRequired
	}
	if err := apperr.FromValidation(model.ErrInvalidProfile, req.Validate()); err != nil {
		return nil, err
	}
	if err := requireSelf(p, req.Address); err != nil {
		return nil, err
	}

	hasAccount := true
	upd := model.ProfileUpdate{HasAccount: &hasAccount}
	if req.Username != nil && *req.Username != "" {
		upd.Username = req.Username
	}
	if req.AvatarURL != nil {
		upd.AvatarURL = req.AvatarURL
	}

	u, err := s.repo.UpdateProfile(ctx, req.Address, upd, p.IsAdmin())
	if err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("user", "update").Inc()
	return &model.SaveProfileResponse{Success: true, Data: []*model.ProfileSummary{u.Summary()}}, nil
}

func (s *userService) Delete(ctx context.Context, p *auth.Principal, address string) error {
	if err := requireSelf(p, address); err != nil {
		return err
	}

	u, err := s.repo.GetByAddress(ctx, address)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, address); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("user", "delete").Inc()
	s.stats.Invalidate(ctx)

	if u.AvatarURL != nil {
		s.media.Remove(ctx, *u.AvatarURL)
	}
	return nil
}

func (s *userService) UploadAvatar(
	ctx context.Context,
	p *auth.Principal,
	address string,
	file *mediaModel.File,
) (string, error) {
	// Step 1: inputs and ownership
	if address == "" || file == nil {
		return "", model.ErrAvatarRequired
	}
	if err := requireSelf(p, address); err != nil {
		return "", err
	}
	if err := s.media.CheckSize(mediaModel.KindAvatar, file); err != nil {
		return "", err
	}

	// Step 2: previous avatar, if any
	var previous string
	existing, err := s.repo.GetByAddress(ctx, address)
	switch {
	case err == nil && existing.AvatarURL != nil:
		previous = *existing.AvatarURL
	case err != nil && !errors.Is(err, model.ErrUserNotFound):
		return "", err
	}

	// Step 3: store the file
	url, err := s.media.Upload(ctx, mediaModel.KindAvatar, mediaModel.AvatarKey(address, file.Name), file, true)
	if err != nil {
		return "", err
	}

	// Step 4: point the profile at it
	hasAccount := true
	if _, err := s.repo.UpdateProfile(ctx, address, model.ProfileUpdate{AvatarURL: &url, HasAccount: &hasAccount}, p.IsAdmin()); err != nil {
		if url != previous {
			s.media.Remove(ctx, url)
		}
		return "", err
	}

	if previous != "" && previous != url {
		s.media.Remove(ctx, previous)
	}

	log.Info().Str("address", address).Str("url", url).Msg("Avatar updated")
	return url, nil
}
