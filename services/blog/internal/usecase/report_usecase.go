package usecase

import (
	"context"
	"fmt"
	"time"

	"inkwell/pkg/logger"
	"inkwell/pkg/queue"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/repo/persistent"
)

// Comment reports are triaged ahead of post reports.
const (
	postReportPriority    = 5
	commentReportPriority = 7
)

type ReportUseCase interface {
	CreateReport(ctx context.Context, reporterUID string, reportType entity.ReportType, objectUID string, reason *string) (*entity.Report, error)
}

type reportUseCase struct {
	reportRepo persistent.ReportRepository
	publisher  EventPublisher
	logger     *logger.Logger
	now        func() time.Time
}

func NewReportUseCase(reportRepo persistent.ReportRepository, publisher EventPublisher, logger *logger.Logger) ReportUseCase {
	return &reportUseCase{
		reportRepo: reportRepo,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *reportUseCase) CreateReport(ctx context.Context, reporterUID string, reportType entity.ReportType, objectUID string, reason *string) (*entity.Report, error) {
	if reportType == "" || objectUID == "" {
		return nil, entity.NewValidationError("Missing required fields")
	}
	if !reportType.Valid() {
		return nil, entity.NewValidationError("report_type must be post or comment")
	}
	if reason != nil && *reason == "" {
		reason = nil
	}

	report := &entity.Report{
		ReportType:    reportType,
		ObjectUID:     objectUID,
		ReportedByUID: reporterUID,
		Reason:        reason,
		CreatedAt:     uc.now().Unix(),
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	if uc.publisher != nil {
		priority := postReportPriority
		if reportType == entity.ReportTypeComment {
			priority = commentReportPriority
		}
		event := map[string]interface{}{
			"type":            "report_created",
			"report_uid":      report.UID,
			"report_type":     string(report.ReportType),
			"object_uid":      report.ObjectUID,
			"reported_by_uid": report.ReportedByUID,
			"priority":        priority,
		}
		go func() {
			if err := uc.publisher.Publish(queue.RoutingReportCreated, event); err != nil {
				uc.logger.Warn("Failed to publish report_created for report %s: %v", report.UID, err)
			}
		}()
	}

	return report, nil
}
