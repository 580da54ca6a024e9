package service

import (
	"context"

	"github.com/google/uuid"

	albumModel "metalpedia-backend/internal/domains/album/model"
	"metalpedia-backend/internal/domains/band/model"
	linkModel "metalpedia-backend/internal/domains/link/model"
	mediaModel "metalpedia-backend/internal/domains/media/model"
	memberModel "metalpedia-backend/internal/domains/member/model"
	"metalpedia-backend/internal/shared/auth"
)

type ServiceInterface interface {
	// ========================================
	// MUTATIONS
	// ========================================
	Create(ctx context.Context, p *auth.Principal, req model.CreateBandRequest) (*model.Band, error)
	Update(ctx context.Context, p *auth.Principal, id uuid.UUID, req model.UpdateBandRequest) (*model.Band, error)
	Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) error

	UploadLogo(ctx context.Context, p *auth.Principal, id uuid.UUID, file *mediaModel.File) (string, error)
	DeleteLogo(ctx context.Context, p *auth.Principal, id uuid.UUID) error
	UploadImage(ctx context.Context, p *auth.Principal, id uuid.UUID, file *mediaModel.File) (string, error)
	DeleteImage(ctx context.Context, p *auth.Principal, id uuid.UUID) error

	// ========================================
	// READS
	// ========================================
	GetDetail(ctx context.Context, id uuid.UUID) (*model.Detail, error)
	Recent(ctx context.Context, limit int) ([]model.RecentBand, error)
	Search(ctx context.Context, query string) ([]model.Band, error)
	Exists(ctx context.Context, name string) (bool, error)
}

// Collaborators of the detail aggregate, satisfied by the member, album,
// link and user repositories.

type MemberLister interface {
	ListByBand(ctx context.Context, bandID uuid.UUID) ([]memberModel.Member, error)
}

type AlbumLister interface {
	ListByBand(ctx context.Context, bandID uuid.UUID) ([]albumModel.Album, error)
}

type LinkLister interface {
	ListByBand(ctx context.Context, bandID uuid.UUID) ([]linkModel.Link, error)
}

// UsernameResolver maps addresses to non-empty usernames; missing addresses are absent
type UsernameResolver interface {
	Usernames(ctx context.Context, addresses []string) (map[string]string, error)
}
