// Package bandtest provides an in-memory band repository and read-side
// stubs for service and handler tests.
package bandtest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	albumModel "metalpedia-backend/internal/domains/album/model"
	"metalpedia-backend/internal/domains/band/model"
	linkModel "metalpedia-backend/internal/domains/link/model"
	memberModel "metalpedia-backend/internal/domains/member/model"
)

// Repo is an in-memory band repository
type Repo struct {
	mu         sync.Mutex
	Bands      map[uuid.UUID]model.Band
	BandsAdded map[string]int
	Covers     map[uuid.UUID][]string // album covers removed by DeleteCascade
	CreateErr  error
}

func NewRepo() *Repo {
	return &Repo{
		Bands:      map[uuid.UUID]model.Band{},
		BandsAdded: map[string]int{},
		Covers:     map[uuid.UUID][]string{},
	}
}

// Put seeds a band directly
func (r *Repo) Put(b model.Band) *model.Band {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.Bands[b.ID] = b
	return &b
}

func (r *Repo) nameTaken(name string, exclude uuid.UUID) bool {
	for id, b := range r.Bands {
		if id != exclude && strings.EqualFold(b.Name, name) {
			return true
		}
	}
	return false
}

func (r *Repo) Create(_ context.Context, b *model.Band) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return r.CreateErr
	}
	if r.nameTaken(b.Name, uuid.Nil) {
		return model.ErrDuplicateBandName
	}
	r.Bands[b.ID] = *b
	r.BandsAdded[b.AddedBy]++
	return nil
}

func (r *Repo) GetByID(_ context.Context, id uuid.UUID) (*model.Band, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.Bands[id]
	if !ok {
		return nil, model.ErrBandNotFound
	}
	return &b, nil
}

func (r *Repo) ExistsByName(_ context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exclude := uuid.Nil
	if excludeID != nil {
		exclude = *excludeID
	}
	return r.nameTaken(name, exclude), nil
}

func (r *Repo) Update(_ context.Context, b *model.Band) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.Bands[b.ID]; !ok {
		return model.ErrBandNotFound
	}
	if r.nameTaken(b.Name, b.ID) {
		return model.ErrDuplicateBandName
	}
	r.Bands[b.ID] = *b
	return nil
}

func (r *Repo) set(id uuid.UUID, apply func(b *model.Band)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.Bands[id]
	if !ok {
		return model.ErrBandNotFound
	}
	apply(&b)
	r.Bands[id] = b
	return nil
}

func (r *Repo) SetLogoURL(_ context.Context, id uuid.UUID, url *string) error {
	return r.set(id, func(b *model.Band) { b.LogoURL = url })
}

func (r *Repo) SetImageURL(_ context.Context, id uuid.UUID, url *string) error {
	return r.set(id, func(b *model.Band) { b.ImageURL = url })
}

func (r *Repo) DeleteCascade(_ context.Context, id uuid.UUID, owner string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.Bands[id]
	if !ok || (owner != "" && b.AddedBy != owner) {
		return nil, model.ErrBandNotFound
	}
	covers := r.Covers[id]
	delete(r.Bands, id)
	delete(r.Covers, id)
	return covers, nil
}

func (r *Repo) sorted(less func(a, b model.Band) bool) []model.Band {
	out := make([]model.Band, 0, len(r.Bands))
	for _, b := range r.Bands {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (r *Repo) Recent(_ context.Context, limit int) ([]model.Band, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.sorted(func(a, b model.Band) bool { return a.CreatedAt.After(b.CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repo) Search(_ context.Context, query string, limit int) ([]model.Band, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.Band
	for _, b := range r.sorted(func(a, b model.Band) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }) {
		if strings.Contains(strings.ToLower(b.Name), strings.ToLower(query)) {
			out = append(out, b)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Reads holds the detail sub-fetch results. A non-nil Err fails every list.
type Reads struct {
	Members []memberModel.Member
	Albums  []albumModel.Album
	Links   []linkModel.Link
	Err     error
}

func (r *Reads) Lister() (*MemberLister, *AlbumLister, *LinkLister) {
	return &MemberLister{r}, &AlbumLister{r}, &LinkLister{r}
}

type MemberLister struct{ r *Reads }

func (l *MemberLister) ListByBand(_ context.Context, bandID uuid.UUID) ([]memberModel.Member, error) {
	if l.r.Err != nil {
		return nil, l.r.Err
	}
	out := []memberModel.Member{}
	for _, m := range l.r.Members {
		if m.BandID == bandID {
			out = append(out, m)
		}
	}
	return out, nil
}

type AlbumLister struct{ r *Reads }

func (l *AlbumLister) ListByBand(_ context.Context, bandID uuid.UUID) ([]albumModel.Album, error) {
	if l.r.Err != nil {
		return nil, l.r.Err
	}
	out := []albumModel.Album{}
	for _, a := range l.r.Albums {
		if a.BandID == bandID {
			out = append(out, a)
		}
	}
	return out, nil
}

type LinkLister struct{ r *Reads }

func (l *LinkLister) ListByBand(_ context.Context, bandID uuid.UUID) ([]linkModel.Link, error) {
	if l.r.Err != nil {
		return nil, l.r.Err
	}
	out := []linkModel.Link{}
	for _, x := range l.r.Links {
		if x.BandID == bandID {
			out = append(out, x)
		}
	}
	return out, nil
}

// Users is a fixed address to username table
type Users struct {
	Names map[string]string
	Err   error
}

func (u *Users) Usernames(_ context.Context, addresses []string) (map[string]string, error) {
	if u.Err != nil {
		return nil, u.Err
	}
	out := map[string]string{}
	for _, a := range addresses {
		if name, ok := u.Names[a]; ok && name != "" {
			out[a] = name
		}
	}
	return out, nil
}

// Invalidations counts stats cache invalidations
type Invalidations struct {
	mu    sync.Mutex
	Count int
}

func (i *Invalidations) Invalidate(context.Context) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.Count++
}
