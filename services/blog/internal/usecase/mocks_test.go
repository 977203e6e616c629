package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"inkwell/pkg/logger"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Unix(1700000000, 0)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, io.Discard)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByUID(ctx context.Context, uid string) (*entity.Post, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) Exists(ctx context.Context, uid string) (bool, error) {
	args := m.Called(ctx, uid)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) ListPublished(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) ListBookmarked(ctx context.Context, userUID string, filter entity.PostFilter) ([]*entity.Post, error) {
	args := m.Called(ctx, userUID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, uid string, changes entity.PostUpdate, updatedAt int64) error {
	args := m.Called(ctx, uid, changes, updatedAt)
	return args.Error(0)
}

func (m *MockPostRepository) GetTags(ctx context.Context, postUID string) ([]string, error) {
	args := m.Called(ctx, postUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPostRepository) SetTags(ctx context.Context, postUID string, tags []string) error {
	args := m.Called(ctx, postUID, tags)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

var _ persistent.PostRepository = (*MockPostRepository)(nil)

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) List(ctx context.Context) ([]*entity.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Tag), args.Error(1)
}

func (m *MockTagRepository) ExistingUIDs(ctx context.Context, uids []string) ([]string, error) {
	args := m.Called(ctx, uids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ persistent.TagRepository = (*MockTagRepository)(nil)

type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) AddClaps(ctx context.Context, userUID, postUID string, increment int, createdAt int64) (*entity.Clap, error) {
	args := m.Called(ctx, userUID, postUID, increment, createdAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Clap), args.Error(1)
}

func (m *MockEngagementRepository) ClapTotal(ctx context.Context, postUID string) (int64, error) {
	args := m.Called(ctx, postUID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) AddBookmark(ctx context.Context, userUID, postUID string, createdAt int64) (bool, error) {
	args := m.Called(ctx, userUID, postUID, createdAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) RemoveBookmark(ctx context.Context, userUID, postUID string) (bool, error) {
	args := m.Called(ctx, userUID, postUID)
	return args.Bool(0), args.Error(1)
}

var _ persistent.EngagementRepository = (*MockEngagementRepository)(nil)

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByUID(ctx context.Context, uid string) (*entity.Comment, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postUID string) ([]*entity.Comment, error) {
	args := m.Called(ctx, postUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, uid, content string, updatedAt int64) error {
	args := m.Called(ctx, uid, content, updatedAt)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

var _ persistent.CommentRepository = (*MockCommentRepository)(nil)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *entity.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

var _ persistent.ReportRepository = (*MockReportRepository)(nil)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, uid string, changes entity.UserUpdate, updatedAt int64) error {
	args := m.Called(ctx, uid, changes, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) CreatePasswordReset(ctx context.Context, reset *entity.PasswordReset) error {
	args := m.Called(ctx, reset)
	return args.Error(0)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

// recordingPublisher captures published events and signals each one on
// published.
type recordingPublisher struct {
	mu        sync.Mutex
	keys      []string
	events    []map[string]interface{}
	published chan struct{}
	err       error
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{published: make(chan struct{}, 8)}
}

func (p *recordingPublisher) Publish(routingKey string, event map[string]interface{}) error {
	p.mu.Lock()
	p.keys = append(p.keys, routingKey)
	p.events = append(p.events, event)
	p.mu.Unlock()
	p.published <- struct{}{}
	return p.err
}

func (p *recordingPublisher) wait() bool {
	select {
	case <-p.published:
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

type fakeStorage struct {
	key         string
	contentType string
	url         string
	err         error
}

func (s *fakeStorage) UploadFile(key string, body io.Reader, contentType string) (string, error) {
	s.key = key
	s.contentType = contentType
	return s.url, s.err
}

type fakeThrottle struct {
	seen map[string]bool
	err  error
}

func (f *fakeThrottle) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if f.seen[key] {
		return redis.NewBoolResult(false, nil)
	}
	f.seen[key] = true
	return redis.NewBoolResult(true, nil)
}
