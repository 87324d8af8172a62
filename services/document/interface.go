package document

import (
	"context"
	"fmt"

	activityRepo "sessionsheet/database/repository/activity"
	"sessionsheet/models"
	"sessionsheet/services/quota"
	"sessionsheet/services/sheet"

	"go.uber.org/zap"
)

// DocumentService turns schedule requests into attendance spreadsheets.
type DocumentService interface {
	// Preview expands the schedule without touching the template.
	Preview(req models.ScheduleRequest) (*models.SchedulePreview, error)
	// Generate renders one spreadsheet over the whole request range.
	Generate(ctx context.Context, actor string, req models.DocumentRequest) (*models.Document, error)
	// GenerateByMonth renders one spreadsheet per calendar month, in order.
	GenerateByMonth(ctx context.Context, actor string, req models.DocumentRequest) ([]models.Document, error)
	// RecentActivity lists the latest generations, newest first.
	RecentActivity(ctx context.Context, actor string, limit int) ([]models.ActivityLog, error)
}

// DefaultDocumentService is the production implementation.
type DefaultDocumentService struct {
	Opener      sheet.Opener
	TemplateRef string
	Layout      sheet.Layout
	Activity    activityRepo.ActivityLogRepository
	Quota       quota.Limiter
	Logger      *zap.Logger
}

func NewDefaultDocumentService(
	opener sheet.Opener,
	templateRef string,
	activity activityRepo.ActivityLogRepository,
	limiter quota.Limiter,
	logger *zap.Logger,
) (*DefaultDocumentService, error) {
	if opener == nil || templateRef == "" {
		return nil, fmt.Errorf("document service initialization error: template opener and reference are required")
	}
	if limiter == nil {
		limiter = quota.Unlimited{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultDocumentService{
		Opener:      opener,
		TemplateRef: templateRef,
		Layout:      sheet.DefaultLayout,
		Activity:    activity,
		Quota:       limiter,
		Logger:      logger,
	}, nil
}
