package persistent

import (
	"context"

	"inkwell/services/blog/internal/entity"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	reportModel := ToReportModel(report)
	if err := r.db.WithContext(ctx).Create(reportModel).Error; err != nil {
		return err
	}
	*report = *ToReportEntity(reportModel)
	return nil
}
