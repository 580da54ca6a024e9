// Package mediatest provides in-memory fakes of the media pipeline's
// collaborators for use in tests.
package mediatest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"metalpedia-backend/internal/domains/media/service"
	"metalpedia-backend/internal/infrastructure/storage"
)

const BaseURL = "http://media.test/metalpedia-media"

type Object struct {
	Data         []byte
	ContentType  string
	LastModified time.Time
}

// Store is an in-memory ObjectStore
type Store struct {
	mu        sync.Mutex
	Objects   map[string]Object
	Deleted   []string
	UploadErr error
	DeleteErr error
	Now       func() time.Time
}

func NewStore() *Store {
	return &Store{Objects: map[string]Object{}, Now: time.Now}
}

func (s *Store) Upload(_ context.Context, key string, data []byte, contentType string, upsert bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UploadErr != nil {
		return "", s.UploadErr
	}
	if _, exists := s.Objects[key]; exists && !upsert {
		return "", storage.ErrObjectExists
	}
	s.Objects[key] = Object{Data: data, ContentType: contentType, LastModified: s.Now()}
	return BaseURL + "/" + key, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.Objects, key)
	s.Deleted = append(s.Deleted, key)
	return nil
}

func (s *Store) List(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []storage.ObjectInfo
	for key, obj := range s.Objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.ObjectInfo{Key: key, LastModified: obj.LastModified})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Store) KeyFromURL(rawURL string) (string, bool) {
	key, ok := strings.CutPrefix(rawURL, BaseURL+"/")
	return key, ok && key != ""
}

// Put seeds an object directly
func (s *Store) Put(key string, data []byte, modified time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = Object{Data: data, LastModified: modified}
	return BaseURL + "/" + key
}

func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.Objects))
	for k := range s.Objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Queue records enqueued tasks
type Queue struct {
	mu    sync.Mutex
	Tasks []*asynq.Task
	Err   error
}

func (q *Queue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return nil, q.Err
	}
	q.Tasks = append(q.Tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

// Refs is a fixed media reference list
type Refs struct {
	URLs []string
	Err  error
}

func (r *Refs) ReferencedURLs(context.Context) ([]string, error) {
	return r.URLs, r.Err
}

// Passthrough is an ImageTransformer that returns its input unchanged
type Passthrough struct{}

func (Passthrough) Grayscale(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image")
	}
	return data, nil
}

// NewService wires a media service over the given fakes
func NewService(store *Store, images service.ImageTransformer, queue *Queue) service.ServiceInterface {
	if images == nil {
		images = Passthrough{}
	}
	if queue == nil {
		queue = &Queue{}
	}
	return service.NewMediaService(store, images, &Refs{}, queue, 3)
}
