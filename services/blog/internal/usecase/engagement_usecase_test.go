package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"inkwell/services/blog/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEngagementUseCase(engagementRepo *MockEngagementRepository, postRepo *MockPostRepository) *engagementUseCase {
	uc := NewEngagementUseCase(engagementRepo, postRepo, testLogger()).(*engagementUseCase)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestAddClap_DefaultIncrement(t *testing.T) {
	engagementRepo := new(MockEngagementRepository)
	postRepo := new(MockPostRepository)
	uc := newTestEngagementUseCase(engagementRepo, postRepo)

	postRepo.On("Exists", mock.Anything, "p1").Return(true, nil)
	engagementRepo.On("AddClaps", mock.Anything, "u1", "p1", 1, fixedNow.Unix()).
		Return(&entity.Clap{UserUID: "u1", PostUID: "p1", ClapCount: 4}, nil)
	engagementRepo.On("ClapTotal", mock.Anything, "p1").Return(int64(9), nil)

	clap, total, err := uc.AddClap(context.Background(), "u1", "p1", 0)

	require.NoError(t, err)
	assert.Equal(t, 4, clap.ClapCount)
	assert.Equal(t, int64(9), total)
	engagementRepo.AssertExpectations(t)
}

func TestAddClap_CustomIncrement(t *testing.T) {
	engagementRepo := new(MockEngagementRepository)
	postRepo := new(MockPostRepository)
	uc := newTestEngagementUseCase(engagementRepo, postRepo)

	postRepo.On("Exists", mock.Anything, "p1").Return(true, nil)
	engagementRepo.On("AddClaps", mock.Anything, "u1", "p1", 5, fixedNow.Unix()).
		Return(&entity.Clap{ClapCount: 5}, nil)
	engagementRepo.On("ClapTotal", mock.Anything, "p1").Return(int64(5), nil)

	_, _, err := uc.AddClap(context.Background(), "u1", "p1", 5)

	require.NoError(t, err)
	engagementRepo.AssertExpectations(t)
}

func TestAddClap_NegativeIncrement(t *testing.T) {
	engagementRepo := new(MockEngagementRepository)
	uc := newTestEngagementUseCase(engagementRepo, new(MockPostRepository))

	_, _, err := uc.AddClap(context.Background(), "u1", "p1", -2)

	assert.ErrorIs(t, err, entity.ErrValidation)
	engagementRepo.AssertNotCalled(t, "AddClaps", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddClap_IncrementTooLarge(t *testing.T) {
	engagementRepo := new(MockEngagementRepository)
	uc := newTestEngagementUseCase(engagementRepo, new(MockPostRepository))

	_, _, err := uc.AddClap(context.Background(), "u1", "p1", math.MaxInt32+1)

	assert.ErrorIs(t, err, entity.ErrValidation)
	engagementRepo.AssertNotCalled(t, "AddClaps", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddClap_MissingPost(t *testing.T) {
	engagementRepo := new(MockEngagementRepository)
	postRepo := new(MockPostRepository)
	uc := newTestEngagementUseCase(engagementRepo, postRepo)

	postRepo.On("Exists", mock.Anything, "ghost").Return(false, nil)

	_, _, err := uc.AddClap(context.Background(), "u1", "ghost", 1)

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAddClap_MissingPostUID(t *testing.T) {
	uc := newTestEngagementUseCase(new(MockEngagementRepository), new(MockPostRepository))

	_, _, err := uc.AddClap(context.Background(), "u1", "", 1)

	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestAddBookmark_Idempotent(t *testing.T) {
	engagementRepo := new(MockEngagementRepository)
	postRepo := new(MockPostRepository)
	uc := newTestEngagementUseCase(engagementRepo, postRepo)

	postRepo.On("Exists", mock.Anything, "p1").Return(true, nil)
	engagementRepo.On("AddBookmark", mock.Anything, "u1", "p1", fixedNow.Unix()).Return(true, nil).Once()
	engagementRepo.On("AddBookmark", mock.Anything, "u1", "p1", fixedNow.Unix()).Return(false, nil).Once()

	created, err := uc.AddBookmark(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.AddBookmark(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestAddBookmark_StorageError(t *testing.T) {
	engagementRepo := new(MockEngagementRepository)
	postRepo := new(MockPostRepository)
	uc := newTestEngagementUseCase(engagementRepo, postRepo)
	storageErr := errors.New("timeout")

	postRepo.On("Exists", mock.Anything, "p1").Return(true, nil)
	engagementRepo.On("AddBookmark", mock.Anything, "u1", "p1", mock.Anything).Return(false, storageErr)

	_, err := uc.AddBookmark(context.Background(), "u1", "p1")

	assert.ErrorIs(t, err, storageErr)
}

func TestRemoveBookmark_AbsentIsSuccess(t *testing.T) {
	engagementRepo := new(MockEngagementRepository)
	uc := newTestEngagementUseCase(engagementRepo, new(MockPostRepository))

	engagementRepo.On("RemoveBookmark", mock.Anything, "u1", "p1").Return(false, nil)

	assert.NoError(t, uc.RemoveBookmark(context.Background(), "u1", "p1"))
}

func TestListBookmarks(t *testing.T) {
	postRepo := new(MockPostRepository)
	uc := newTestEngagementUseCase(new(MockEngagementRepository), postRepo)

	postRepo.On("ListBookmarked", mock.Anything, "u1", entity.PostFilter{Page: 2, Limit: 10}).Return([]*entity.Post{}, nil)

	posts, err := uc.ListBookmarks(context.Background(), "u1", entity.PostFilter{Page: 2})

	require.NoError(t, err)
	assert.Empty(t, posts)
	postRepo.AssertExpectations(t)
}
