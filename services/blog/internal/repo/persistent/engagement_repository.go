package persistent

import (
	"context"
	"errors"

	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

type EngagementRepository interface {
	AddClaps(ctx context.Context, userUID, postUID string, increment int, createdAt int64) (*entity.Clap, error)
	ClapTotal(ctx context.Context, postUID string) (int64, error)
	AddBookmark(ctx context.Context, userUID, postUID string, createdAt int64) (bool, error)
	RemoveBookmark(ctx context.Context, userUID, postUID string) (bool, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// AddClaps adds increment to the user's clap count for the post in a single
// upsert and returns the stored row.
func (r *engagementRepository) AddClaps(ctx context.Context, userUID, postUID string, increment int, createdAt int64) (*entity.Clap, error) {
	clap := &model.ClapModel{
		UserUID:   userUID,
		PostUID:   postUID,
		ClapCount: increment,
		CreatedAt: createdAt,
	}
	if err := clapUpsert(r.db.WithContext(ctx)).Create(clap).Error; err != nil {
		return nil, err
	}
	return ToClapEntity(clap), nil
}

func (r *engagementRepository) ClapTotal(ctx context.Context, postUID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.ClapModel{}).
		Select("COALESCE(SUM(clap_count), 0)::BIGINT").
		Where("post_uid = ?", postUID).
		Scan(&total).Error
	return total, err
}

// AddBookmark reports whether a new bookmark was stored. An existing
// bookmark is not an error.
func (r *engagementRepository) AddBookmark(ctx context.Context, userUID, postUID string, createdAt int64) (bool, error) {
	bookmark := &model.BookmarkModel{
		UserUID:   userUID,
		PostUID:   postUID,
		CreatedAt: createdAt,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_uid"}, {Name: "post_uid"}},
			DoNothing: true,
		}).
		Create(bookmark)
	if result.Error != nil {
		if IsUniqueViolation(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveBookmark reports whether a bookmark was deleted. Removing a missing
// bookmark is not an error.
func (r *engagementRepository) RemoveBookmark(ctx context.Context, userUID, postUID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_uid = ? AND post_uid = ?", userUID, postUID).
		Delete(&model.BookmarkModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func clapUpsert(db *gorm.DB) *gorm.DB {
	return db.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_uid"}, {Name: "post_uid"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"clap_count": gorm.Expr("claps.clap_count + EXCLUDED.clap_count"),
				"created_at": gorm.Expr("EXCLUDED.created_at"),
			}),
		},
		clause.Returning{},
	)
}

// IsUniqueViolation matches both gorm's translated duplicate-key error and a
// raw Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
