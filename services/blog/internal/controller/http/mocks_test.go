package http

import (
	"context"
	"io"

	"inkwell/pkg/logger"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, io.Discard)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for the auth middleware.
func asUser(userID string, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("is_admin", isAdmin)
		c.Next()
	}
}

type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(ctx context.Context, authorUID string, input entity.PostInput) (*entity.Post, error) {
	args := m.Called(ctx, authorUID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPost(ctx context.Context, uid string) (*entity.Post, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(ctx context.Context, actor entity.Actor, uid string, changes entity.PostUpdate) (*entity.Post, error) {
	args := m.Called(ctx, actor, uid, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) SetPostTags(ctx context.Context, actor entity.Actor, uid string, tags *[]string) ([]string, error) {
	args := m.Called(ctx, actor, uid, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(ctx context.Context, actor entity.Actor, uid string) error {
	args := m.Called(ctx, actor, uid)
	return args.Error(0)
}

func (m *MockPostUseCase) UploadFeaturedImage(ctx context.Context, userUID, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, userUID, filename, contentType, body)
	return args.String(0), args.Error(1)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

type MockEngagementUseCase struct {
	mock.Mock
}

func (m *MockEngagementUseCase) AddClap(ctx context.Context, userUID, postUID string, increment int) (*entity.Clap, int64, error) {
	args := m.Called(ctx, userUID, postUID, increment)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*entity.Clap), args.Get(1).(int64), args.Error(2)
}

func (m *MockEngagementUseCase) AddBookmark(ctx context.Context, userUID, postUID string) (bool, error) {
	args := m.Called(ctx, userUID, postUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementUseCase) RemoveBookmark(ctx context.Context, userUID, postUID string) error {
	args := m.Called(ctx, userUID, postUID)
	return args.Error(0)
}

func (m *MockEngagementUseCase) ListBookmarks(ctx context.Context, userUID string, filter entity.PostFilter) ([]*entity.Post, error) {
	args := m.Called(ctx, userUID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

var _ usecase.EngagementUseCase = (*MockEngagementUseCase)(nil)

type MockCommentUseCase struct {
	mock.Mock
}

func (m *MockCommentUseCase) CreateComment(ctx context.Context, userUID, postUID, content string, parentUID *string) (*entity.Comment, error) {
	args := m.Called(ctx, userUID, postUID, content, parentUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) ListComments(ctx context.Context, postUID string) ([]*entity.Comment, error) {
	args := m.Called(ctx, postUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) UpdateComment(ctx context.Context, actor entity.Actor, uid, content string) (*entity.Comment, error) {
	args := m.Called(ctx, actor, uid, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) DeleteComment(ctx context.Context, actor entity.Actor, uid string) error {
	args := m.Called(ctx, actor, uid)
	return args.Error(0)
}

var _ usecase.CommentUseCase = (*MockCommentUseCase)(nil)

type MockTagUseCase struct {
	mock.Mock
}

func (m *MockTagUseCase) ListTags(ctx context.Context) ([]*entity.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Tag), args.Error(1)
}

var _ usecase.TagUseCase = (*MockTagUseCase)(nil)

type MockReportUseCase struct {
	mock.Mock
}

func (m *MockReportUseCase) CreateReport(ctx context.Context, reporterUID string, reportType entity.ReportType, objectUID string, reason *string) (*entity.Report, error) {
	args := m.Called(ctx, reporterUID, reportType, objectUID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Report), args.Error(1)
}

var _ usecase.ReportUseCase = (*MockReportUseCase)(nil)

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) GetUser(ctx context.Context, uid string) (*entity.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateUser(ctx context.Context, actor entity.Actor, uid string, changes entity.UserUpdate) (*entity.User, error) {
	args := m.Called(ctx, actor, uid, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) RequestPasswordReset(ctx context.Context, email string) (*entity.PasswordReset, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PasswordReset), args.Error(1)
}

var _ usecase.UserUseCase = (*MockUserUseCase)(nil)
