package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/internal/domains/band/repository"
	mediaModel "metalpedia-backend/internal/domains/media/model"
	mediaService "metalpedia-backend/internal/domains/media/service"
	memberModel "metalpedia-backend/internal/domains/member/model"
	statsService "metalpedia-backend/internal/domains/stats/service"
	"metalpedia-backend/internal/infrastructure/metrics"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/auth"
	"metalpedia-backend/internal/shared/utils"
)

type bandService struct {
	repo    repository.RepositoryInterface
	members MemberLister
	albums  AlbumLister
	links   LinkLister
	users   UsernameResolver
	media   mediaService.ServiceInterface
	stats   statsService.Invalidator
	now     func() time.Time
}

func NewBandService(
	repo repository.RepositoryInterface,
	members MemberLister,
	albums AlbumLister,
	links LinkLister,
	users UsernameResolver,
	media mediaService.ServiceInterface,
	stats statsService.Invalidator,
) ServiceInterface {
	return &bandService{
		repo:    repo,
		members: members,
		albums:  albums,
		links:   links,
		users:   users,
		media:   media,
		stats:   stats,
		now:     time.Now,
	}
}

// loadOwned runs the existence check, then the ownership check
func (s *bandService) loadOwned(ctx context.Context, p *auth.Principal, id uuid.UUID) (*model.Band, error) {
	if err := auth.Require(p); err != nil {
		return nil, err
	}
	band, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(p, band.AddedBy, model.ErrForbidden); err != nil {
		return nil, err
	}
	return band, nil
}

// ========================================
// CREATE / UPDATE / DELETE
// ========================================

func (s *bandService) Create(ctx context.Context, p *auth.Principal, req model.CreateBandRequest) (*model.Band, error) {
	// Step 1: caller, submitted address and fields
	req.Normalize()
	if err := auth.RequireActor(p, req.Address, model.ErrAddressMismatch); err != nil {
		return nil, err
	}
	if err := apperr.FromValidation(model.ErrInvalidFields, req.Validate()); err != nil {
		return nil, err
	}
	if req.LogoFile != nil {
		if err := s.media.CheckSize(mediaModel.KindBandLogo, req.LogoFile); err != nil {
			return nil, err
		}
	}

	// Step 2: unique name
	exists, err := s.repo.ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateBandName
	}

	// Step 3: optional logo
	now := s.now()
	logoURL := utils.StringPtr(req.LogoURL)
	var uploaded string
	if req.LogoFile != nil {
		key := mediaModel.SubmittedLogoKey(p.Address, now, req.LogoFile.Name)
		uploaded, err = s.media.Upload(ctx, mediaModel.KindBandLogo, key, req.LogoFile, false)
		if err != nil {
			return nil, err
		}
		logoURL = &uploaded
	}

	// Step 4: band row and submitter counter
	band := &model.Band{
		ID:          uuid.New(),
		Name:        req.Name,
		Country:     req.Country,
		Genre:       req.Genre,
		YearFounded: req.Year(),
		LogoURL:     logoURL,
		AddedBy:     p.Address,
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, band); err != nil {
		if uploaded != "" {
			s.media.Remove(ctx, uploaded)
		}
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("band", "create").Inc()
	s.stats.Invalidate(ctx)

	log.Info().
		Str("band_id", band.ID.String()).
		Str("name", band.Name).
		Str("added_by", band.AddedBy).
		Msg("Band created")

	return band, nil
}

func (s *bandService) Update(
	ctx context.Context,
	p *auth.Principal,
	id uuid.UUID,
	req model.UpdateBandRequest,
) (*model.Band, error) {
	band, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := apperr.FromValidation(model.ErrInvalidFields, req.Validate()); err != nil {
		return nil, err
	}

	if req.Name != "" {
		taken, err := s.repo.ExistsByName(ctx, req.Name, &id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, model.ErrDuplicateBandName
		}
	}

	req.Apply(band)
	now := s.now()
	updatedBy := p.Address
	band.UpdatedAt = &now
	band.UpdatedBy = &updatedBy

	if err := s.repo.Update(ctx, band); err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("band", "update").Inc()
	return band, nil
}

func (s *bandService) Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) error {
	band, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return err
	}

	covers, err := s.repo.DeleteCascade(ctx, id, auth.OwnerFilter(p))
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("band", "delete").Inc()
	s.stats.Invalidate(ctx)

	// Rows are gone, storage cleanup is best-effort
	urls := covers
	for _, url := range []*string{band.LogoURL, band.ImageURL} {
		if url != nil && *url != "" {
			urls = append(urls, *url)
		}
	}
	for _, url := range urls {
		s.media.Remove(ctx, url)
	}

	log.Info().
		Str("band_id", id.String()).
		Str("deleted_by", p.Address).
		Int("albums", len(covers)).
		Msg("Band deleted")

	return nil
}

// ========================================
// LOGO / IMAGE
// ========================================

// artwork describes one of the band's image slots
type artwork struct {
	kind     mediaModel.Kind
	required error
	key      func(bandID string, now time.Time) string
	current  func(b *model.Band) *string
	set      func(ctx context.Context, id uuid.UUID, url *string) error
}

func (s *bandService) logo() artwork {
	return artwork{
		kind:     mediaModel.KindBandLogo,
		required: model.ErrLogoRequired,
		key:      mediaModel.BandLogoKey,
		current:  func(b *model.Band) *string { return b.LogoURL },
		set:      s.repo.SetLogoURL,
	}
}

func (s *bandService) image() artwork {
	return artwork{
		kind:     mediaModel.KindBandImage,
		required: model.ErrImageRequired,
		key:      mediaModel.BandImageKey,
		current:  func(b *model.Band) *string { return b.ImageURL },
		set:      s.repo.SetImageURL,
	}
}

func (s *bandService) replaceArtwork(
	ctx context.Context,
	p *auth.Principal,
	id uuid.UUID,
	file *mediaModel.File,
	art artwork,
) (string, error) {
	// Step 1: 404, then 403, then the file itself
	band, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return "", err
	}
	if file == nil {
		return "", art.required
	}
	if err := s.media.CheckSize(art.kind, file); err != nil {
		return "", err
	}

	// Step 2: store the grayscale rendition
	url, err := s.media.Upload(ctx, art.kind, art.key(id.String(), s.now()), file, true)
	if err != nil {
		return "", err
	}

	// Step 3: point the band at it
	if err := art.set(ctx, id, &url); err != nil {
		s.media.Remove(ctx, url)
		return "", err
	}

	if previous := art.current(band); previous != nil && *previous != "" && *previous != url {
		s.media.Remove(ctx, *previous)
	}

	metrics.MutationsTotal.WithLabelValues("band", "update").Inc()
	return url, nil
}

func (s *bandService) clearArtwork(ctx context.Context, p *auth.Principal, id uuid.UUID, art artwork) error {
	band, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return err
	}

	if err := art.set(ctx, id, nil); err != nil {
		return err
	}

	if previous := art.current(band); previous != nil && *previous != "" {
		s.media.Remove(ctx, *previous)
	}

	metrics.MutationsTotal.WithLabelValues("band", "update").Inc()
	return nil
}

func (s *bandService) UploadLogo(ctx context.Context, p *auth.Principal, id uuid.UUID, file *mediaModel.File) (string, error) {
	return s.replaceArtwork(ctx, p, id, file, s.logo())
}

func (s *bandService) DeleteLogo(ctx context.Context, p *auth.Principal, id uuid.UUID) error {
	return s.clearArtwork(ctx, p, id, s.logo())
}

func (s *bandService) UploadImage(ctx context.Context, p *auth.Principal, id uuid.UUID, file *mediaModel.File) (string, error) {
	return s.replaceArtwork(ctx, p, id, file, s.image())
}

func (s *bandService) DeleteImage(ctx context.Context, p *auth.Principal, id uuid.UUID) error {
	return s.clearArtwork(ctx, p, id, s.image())
}

// ========================================
// READS
// ========================================

func (s *bandService) GetDetail(ctx context.Context, id uuid.UUID) (*model.Detail, error) {
	band, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Any failing sub-fetch fails the whole page
	members, err := s.members.ListByBand(ctx, id)
	if err != nil {
		return nil, err
	}
	albums, err := s.albums.ListByBand(ctx, id)
	if err != nil {
		return nil, err
	}
	links, err := s.links.ListByBand(ctx, id)
	if err != nil {
		return nil, err
	}

	addresses := []string{band.AddedBy}
	if band.UpdatedBy != nil {
		addresses = append(addresses, *band.UpdatedBy)
	}
	names := s.usernames(ctx, addresses)

	current, past := memberModel.Split(members)
	detail := &model.Detail{
		Band:            band,
		Members:         current,
		PastMembers:     past,
		Albums:          albums,
		Links:           links,
		AddedByUsername: displayName(names, band.AddedBy, band.AddedBy),
	}
	if band.UpdatedBy != nil {
		name := displayName(names, *band.UpdatedBy, *band.UpdatedBy)
		detail.UpdatedByUsername = &name
	}
	return detail, nil
}

func (s *bandService) Recent(ctx context.Context, limit int) ([]model.RecentBand, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > model.MaxRecentLimit {
		limit = model.MaxRecentLimit
	}

	bands, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	addresses := make([]string, 0, len(bands))
	for _, b := range bands {
		addresses = append(addresses, b.AddedBy)
	}
	names := s.usernames(ctx, addresses)

	out := make([]model.RecentBand, 0, len(bands))
	for _, b := range bands {
		out = append(out, model.RecentBand{
			ID:        b.ID,
			Name:      b.Name,
			CreatedAt: b.CreatedAt,
			LogoURL:   b.LogoURL,
			AddedBy:   displayName(names, b.AddedBy, model.UnknownUser),
		})
	}
	return out, nil
}

func (s *bandService) Search(ctx context.Context, query string) ([]model.Band, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.ErrQueryRequired
	}
	return s.repo.Search(ctx, query, model.SearchLimit)
}

func (s *bandService) Exists(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, model.ErrNameRequired
	}
	return s.repo.ExistsByName(ctx, name, nil)
}

// usernames never fails: display names fall back to addresses
func (s *bandService) usernames(ctx context.Context, addresses []string) map[string]string {
	names, err := s.users.Usernames(ctx, addresses)
	if err != nil {
		log.Warn().Err(err).Int("addresses", len(addresses)).Msg("Username lookup failed, using fallbacks")
		return map[string]string{}
	}
	return names
}

func displayName(names map[string]string, address, fallback string) string {
	if name := names[address]; name != "" {
		return name
	}
	return fallback
}
