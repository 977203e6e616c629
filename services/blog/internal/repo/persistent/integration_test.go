//go:build integration

package persistent

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"inkwell/migrations"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "inkwell",
			"POSTGRES_PASSWORD": "inkwell",
			"POSTGRES_DB":       "inkwell",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres: %v\n", err)
		os.Exit(1)
	}

	code := func() int {
		defer container.Terminate(ctx)

		host, err := container.Host(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "container host: %v\n", err)
			return 1
		}
		port, err := container.MappedPort(ctx, "5432/tcp")
		if err != nil {
			fmt.Fprintf(os.Stderr, "container port: %v\n", err)
			return 1
		}

		dsn := fmt.Sprintf("host=%s port=%s user=inkwell password=inkwell dbname=inkwell sslmode=disable", host, port.Port())
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "open database: %v\n", err)
			return 1
		}
		sqlDB, err := testDB.DB()
		if err != nil {
			fmt.Fprintf(os.Stderr, "sql handle: %v\n", err)
			return 1
		}
		if err := migrations.Up(sqlDB); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			return 1
		}
		return m.Run()
	}()
	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()
	require.NoError(t, testDB.Exec("TRUNCATE posts_tags, claps, bookmarks, comments, reports, tags, posts, password_resets, users").Error)
}

func seedUser(t *testing.T, name string) string {
	t.Helper()
	user := &model.UserModel{
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "x",
		CreatedAt:    1,
		UpdatedAt:    1,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user.UID
}

func seedPost(t *testing.T, authorUID, title, content string, status entity.PostStatus, createdAt int64, tags ...string) string {
	t.Helper()
	post := &entity.Post{
		Title:     title,
		Content:   content,
		AuthorUID: authorUID,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Tags:      tags,
	}
	require.NoError(t, NewPostRepository(testDB).Create(context.Background(), post))
	return post.UID
}

func seedTag(t *testing.T, name string) string {
	t.Helper()
	tag := &model.TagModel{Name: name}
	require.NoError(t, testDB.Create(tag).Error)
	return tag.UID
}

func postUIDs(posts []*entity.Post) []string {
	uids := make([]string, len(posts))
	for i, post := range posts {
		uids[i] = post.UID
	}
	return uids
}

func TestIntegration_ListPublished(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewPostRepository(testDB)

	author := seedUser(t, "ann")
	golang := seedTag(t, "golang")
	rust := seedTag(t, "rust")

	oldest := seedPost(t, author, "Intro to Go", "basics", entity.StatusPublished, 100, golang)
	middle := seedPost(t, author, "Systems", "Learning GO deeply", entity.StatusPublished, 200, golang, rust)
	newest := seedPost(t, author, "Cooking", "pasta", entity.StatusPublished, 300)
	seedPost(t, author, "Go draft", "secret go", entity.StatusDraft, 400, golang)

	t.Run("only published, newest first", func(t *testing.T) {
		posts, err := repo.ListPublished(ctx, entity.PostFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{newest, middle, oldest}, postUIDs(posts))
		assert.Equal(t, "ann", posts[0].AuthorName)
	})

	t.Run("untagged post has empty tags", func(t *testing.T) {
		posts, err := repo.ListPublished(ctx, entity.PostFilter{})
		require.NoError(t, err)
		assert.NotNil(t, posts[0].Tags)
		assert.Empty(t, posts[0].Tags)
		assert.ElementsMatch(t, []string{golang, rust}, posts[1].Tags)
	})

	t.Run("search is case-insensitive on title or content", func(t *testing.T) {
		posts, err := repo.ListPublished(ctx, entity.PostFilter{Search: "go"})
		require.NoError(t, err)
		assert.Equal(t, []string{middle, oldest}, postUIDs(posts))
	})

	t.Run("tag filter", func(t *testing.T) {
		posts, err := repo.ListPublished(ctx, entity.PostFilter{Tag: rust})
		require.NoError(t, err)
		assert.Equal(t, []string{middle}, postUIDs(posts))
	})

	t.Run("search and tag combine", func(t *testing.T) {
		posts, err := repo.ListPublished(ctx, entity.PostFilter{Search: "intro", Tag: golang})
		require.NoError(t, err)
		assert.Equal(t, []string{oldest}, postUIDs(posts))

		posts, err = repo.ListPublished(ctx, entity.PostFilter{Search: "intro", Tag: rust})
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("pages do not overlap", func(t *testing.T) {
		first, err := repo.ListPublished(ctx, entity.PostFilter{Page: 1, Limit: 2})
		require.NoError(t, err)
		second, err := repo.ListPublished(ctx, entity.PostFilter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{newest, middle}, postUIDs(first))
		assert.Equal(t, []string{oldest}, postUIDs(second))
	})
}

func TestIntegration_ListPublished_TieBreak(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewPostRepository(testDB)
	author := seedUser(t, "bo")

	a := seedPost(t, author, "A", "a", entity.StatusPublished, 500)
	b := seedPost(t, author, "B", "b", entity.StatusPublished, 500)

	first, err := repo.ListPublished(ctx, entity.PostFilter{Page: 1, Limit: 1})
	require.NoError(t, err)
	second, err := repo.ListPublished(ctx, entity.PostFilter{Page: 2, Limit: 1})
	require.NoError(t, err)

	got := append(postUIDs(first), postUIDs(second)...)
	assert.ElementsMatch(t, []string{a, b}, got)
	assert.NotEqual(t, got[0], got[1])
}

func TestIntegration_SetTags(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewPostRepository(testDB)
	author := seedUser(t, "cy")
	post := seedPost(t, author, "T", "c", entity.StatusPublished, 1, "a", "b")

	require.NoError(t, repo.SetTags(ctx, post, []string{"b", "c", "c"}))
	tags, err := repo.GetTags(ctx, post)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, tags)

	require.NoError(t, repo.SetTags(ctx, post, []string{}))
	tags, err = repo.GetTags(ctx, post)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestIntegration_UpdateWithoutTagsKeepsTags(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewPostRepository(testDB)
	author := seedUser(t, "di")
	post := seedPost(t, author, "T", "c", entity.StatusDraft, 1, "a")

	title := "New title"
	require.NoError(t, repo.Update(ctx, post, entity.PostUpdate{Title: &title}, 2))

	got, err := repo.GetByUID(ctx, post)
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, []string{"a"}, got.Tags)
	assert.Equal(t, int64(2), got.UpdatedAt)

	empty := []string{}
	require.NoError(t, repo.Update(ctx, post, entity.PostUpdate{Tags: &empty}, 3))
	got, err = repo.GetByUID(ctx, post)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	err = repo.Update(ctx, uuid.NewString(), entity.PostUpdate{Title: &title}, 4)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIntegration_GetByUIDIncludesAuthor(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewPostRepository(testDB)
	author := seedUser(t, "eve")
	post := seedPost(t, author, "T", "c", entity.StatusPublished, 1)

	var user model.UserModel
	require.NoError(t, testDB.Where("uid = ?", author).Take(&user).Error)

	got, err := repo.GetByUID(ctx, post)
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, author, got.Author.UID)
	assert.Equal(t, "eve", got.Author.Name)
	assert.Equal(t, user.Email, got.Author.Email)
	assert.Empty(t, got.AuthorName)
	assert.Nil(t, got.AuthorImage)
}

func TestIntegration_Claps(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewEngagementRepository(testDB)
	author := seedUser(t, "ed")
	reader := seedUser(t, "fi")
	post := seedPost(t, author, "T", "c", entity.StatusPublished, 1)

	clap, err := repo.AddClaps(ctx, reader, post, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, clap.ClapCount)

	clap, err = repo.AddClaps(ctx, reader, post, 2, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, clap.ClapCount)
	assert.Equal(t, int64(20), clap.CreatedAt)

	_, err = repo.AddClaps(ctx, author, post, 4, 30)
	require.NoError(t, err)

	total, err := repo.ClapTotal(ctx, post)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)

	var rows int64
	require.NoError(t, testDB.Model(&model.ClapModel{}).Where("post_uid = ?", post).Count(&rows).Error)
	assert.Equal(t, int64(2), rows)

	listed, err := NewPostRepository(testDB).ListPublished(ctx, entity.PostFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(7), listed[0].ClapTotal)
}

func TestIntegration_Bookmarks(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewEngagementRepository(testDB)
	author := seedUser(t, "gus")
	post := seedPost(t, author, "T", "c", entity.StatusPublished, 1)
	draft := seedPost(t, author, "D", "c", entity.StatusDraft, 2)

	created, err := repo.AddBookmark(ctx, author, post, 10)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.AddBookmark(ctx, author, post, 11)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = repo.AddBookmark(ctx, author, draft, 12)
	require.NoError(t, err)

	listed, err := NewPostRepository(testDB).ListBookmarked(ctx, author, entity.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{draft, post}, postUIDs(listed))

	removed, err := repo.RemoveBookmark(ctx, author, post)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveBookmark(ctx, author, post)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestIntegration_DeleteCascades(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	posts := NewPostRepository(testDB)
	engagement := NewEngagementRepository(testDB)
	comments := NewCommentRepository(testDB)

	author := seedUser(t, "hal")
	post := seedPost(t, author, "T", "c", entity.StatusPublished, 1, "x")
	_, err := engagement.AddClaps(ctx, author, post, 1, 1)
	require.NoError(t, err)
	_, err = engagement.AddBookmark(ctx, author, post, 1)
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, &entity.Comment{PostUID: post, UserUID: author, Content: "hi", CreatedAt: 1, UpdatedAt: 1}))

	require.NoError(t, posts.Delete(ctx, post))

	for _, table := range []string{"posts_tags", "claps", "bookmarks", "comments"} {
		var count int64
		require.NoError(t, testDB.Table(table).Where("post_uid = ?", post).Count(&count).Error)
		assert.Zero(t, count, table)
	}
	exists, err := posts.Exists(ctx, post)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, posts.Delete(ctx, post), gorm.ErrRecordNotFound)
}

func TestIntegration_UserDuplicateEmail(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewUserRepository(testDB)

	require.NoError(t, repo.Create(ctx, &entity.User{Name: "a", Email: "dup@example.com", PasswordHash: "x", CreatedAt: 1, UpdatedAt: 1}))
	err := repo.Create(ctx, &entity.User{Name: "b", Email: "dup@example.com", PasswordHash: "x", CreatedAt: 1, UpdatedAt: 1})
	assert.ErrorIs(t, err, entity.ErrConflict)
}
