package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"metalpedia-backend/internal/domains/album/model"
	"metalpedia-backend/internal/domains/album/repository"
	mediaModel "metalpedia-backend/internal/domains/media/model"
	mediaService "metalpedia-backend/internal/domains/media/service"
	statsService "metalpedia-backend/internal/domains/stats/service"
	"metalpedia-backend/internal/infrastructure/metrics"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/auth"
	"metalpedia-backend/internal/shared/utils"
)

type albumService struct {
	repo  repository.RepositoryInterface
	bands BandReader
	media mediaService.ServiceInterface
	stats statsService.Invalidator
	now   func() time.Time
}

func NewAlbumService(
	repo repository.RepositoryInterface,
	bands BandReader,
	media mediaService.ServiceInterface,
	stats statsService.Invalidator,
) ServiceInterface {
	return &albumService{repo: repo, bands: bands, media: media, stats: stats, now: time.Now}
}

func (s *albumService) Create(ctx context.Context, p *auth.Principal, req model.CreateAlbumRequest) (*model.Album, error) {
	// Step 1: caller and fields
	req.Normalize()
	if err := auth.RequireActor(p, req.AddedBy, model.ErrAddressMismatch); err != nil {
		return nil, err
	}
	if err := apperr.FromValidation(model.ErrInvalidAlbum, req.Validate()); err != nil {
		return nil, err
	}

	// Step 2: parent band, then the cover cap, both before any write
	bandID := uuid.MustParse(req.BandID)
	if _, err := s.bands.GetByID(ctx, bandID); err != nil {
		return nil, err
	}
	if err := s.media.CheckSize(mediaModel.KindAlbumCover, req.Cover); err != nil {
		return nil, err
	}

	// Step 3: cover
	now := s.now()
	key := mediaModel.AlbumCoverKey(bandID.String(), now, req.Cover.Name)
	coverURL, err := s.media.Upload(ctx, mediaModel.KindAlbumCover, key, req.Cover, false)
	if err != nil {
		return nil, err
	}

	// Step 4: row, removing the cover again if the insert fails
	album := &model.Album{
		ID:          uuid.New(),
		BandID:      bandID,
		Title:       req.Title,
		ReleaseDate: utils.StringPtr(req.ReleaseDate),
		Type:        req.Type,
		CoverURL:    &coverURL,
		AddedBy:     p.Address,
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, album); err != nil {
		s.media.Remove(ctx, coverURL)
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("album", "create").Inc()
	s.stats.Invalidate(ctx)

	log.Info().
		Str("album_id", album.ID.String()).
		Str("band_id", bandID.String()).
		Str("added_by", album.AddedBy).
		Msg("Album created")

	return album, nil
}

func (s *albumService) GetByID(ctx context.Context, id uuid.UUID) (*model.Album, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *albumService) loadOwned(ctx context.Context, p *auth.Principal, id uuid.UUID) (*model.Album, error) {
	if err := auth.Require(p); err != nil {
		return nil, err
	}
	album, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(p, album.AddedBy, model.ErrForbidden); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *albumService) Update(
	ctx context.Context,
	p *auth.Principal,
	id uuid.UUID,
	req model.UpdateAlbumRequest,
) (*model.Album, error) {
	// Step 1: 404, 403, then fields
	album, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := apperr.FromValidation(model.ErrInvalidAlbum, req.Validate()); err != nil {
		return nil, err
	}
	if req.Cover != nil {
		if err := s.media.CheckSize(mediaModel.KindAlbumCover, req.Cover); err != nil {
			return nil, err
		}
	}

	// Step 2: optional cover replacement
	now := s.now()
	previous := album.CoverURL
	var uploaded string
	if req.Cover != nil {
		key := mediaModel.AlbumCoverKey(album.BandID.String(), now, req.Cover.Name)
		uploaded, err = s.media.Upload(ctx, mediaModel.KindAlbumCover, key, req.Cover, true)
		if err != nil {
			return nil, err
		}
		album.CoverURL = &uploaded
	}

	// Step 3: merge and save
	req.Apply(album)
	album.UpdatedAt = &now

	if err := s.repo.Update(ctx, album); err != nil {
		if uploaded != "" {
			s.media.Remove(ctx, uploaded)
		}
		return nil, err
	}

	if uploaded != "" && previous != nil && *previous != "" && *previous != uploaded {
		s.media.Remove(ctx, *previous)
	}

	metrics.MutationsTotal.WithLabelValues("album", "update").Inc()
	return album, nil
}

func (s *albumService) Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) error {
	album, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("album", "delete").Inc()
	s.stats.Invalidate(ctx)

	if album.CoverURL != nil && *album.CoverURL != "" {
		s.media.Remove(ctx, *album.CoverURL)
	}
	return nil
}
