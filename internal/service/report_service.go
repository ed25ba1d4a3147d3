package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"finlite/internal/domain"
	"finlite/internal/repository"
	"finlite/internal/storage"
)

// ReportService records export actions and optionally archives a snapshot of
// the caller's paid accounts to object storage.
type ReportService interface {
	Create(ctx context.Context, userID int64, reportName string) (*domain.Report, error)
	List(ctx context.Context, userID int64) ([]domain.Report, error)
	Delete(ctx context.Context, id, userID int64) error
	ListArchives(ctx context.Context) ([]storage.ObjectInfo, error)
}

type reportService struct {
	reports   repository.ReportRepository
	accounts  repository.AccountRepository
	store     storage.Service
	bucket    string
	keyPrefix string
	logger    logrus.FieldLogger
}

func NewReportService(
	reports repository.ReportRepository,
	accounts repository.AccountRepository,
	store storage.Service,
	bucket, keyPrefix string,
	logger logrus.FieldLogger,
) ReportService {
	return &reportService{
		reports:   reports,
		accounts:  accounts,
		store:     store,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		logger:    logger,
	}
}

type archivedAccount struct {
	ID           int64      `json:"id"`
	ClientID     int64      `json:"client_id"`
	CategoryName string     `json:"category_name"`
	Amount       float64    `json:"amount"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
}

type archiveSnapshot struct {
	ReportName string            `json:"report_name"`
	CreatedAt  time.Time         `json:"created_at"`
	Accounts   []archivedAccount `json:"accounts"`
}

func (s *reportService) Create(ctx context.Context, userID int64, reportName string) (*domain.Report, error) {
	reportName = strings.TrimSpace(reportName)
	if reportName == "" {
		return nil, invalidField("report_name", "report name is required")
	}

	report := &domain.Report{
		UserID:     userID,
		ReportName: reportName,
	}

	if s.store != nil && s.bucket != "" {
		location, err := s.archive(ctx, userID, reportName)
		if err != nil {
			// a report row without an archive beats a failed report
			s.logger.Warnf("archive report %q: %v", reportName, err)
		} else {
			report.ArchiveLocation = location
		}
	}

	if _, err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) archive(ctx context.Context, userID int64, reportName string) (string, error) {
	accounts, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load accounts for archive: %w", err)
	}

	snapshot := archiveSnapshot{
		ReportName: reportName,
		CreatedAt:  time.Now().UTC(),
	}
	for _, account := range accounts {
		if account.Status != domain.AccountStatusPaid {
			continue
		}
		snapshot.Accounts = append(snapshot.Accounts, archivedAccount{
			ID:           account.ID,
			ClientID:     account.ClientID,
			CategoryName: account.CategoryName,
			Amount:       account.Amount,
			PaidAt:       account.PaidAt,
		})
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode archive: %w", err)
	}

	key := uuid.NewString() + ".json"
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}
	return s.store.PutObject(ctx, s.bucket, key, payload, "application/json")
}

func (s *reportService) List(ctx context.Context, userID int64) ([]domain.Report, error) {
	return s.reports.ListByUser(ctx, userID)
}

func (s *reportService) Delete(ctx context.Context, id, userID int64) error {
	report, err := s.reports.Get(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.reports.Delete(ctx, id, userID); err != nil {
		return err
	}

	if report.ArchiveLocation == "" || s.store == nil || s.bucket == "" {
		return nil
	}

	// the row is gone either way; an orphaned snapshot only costs storage
	key := strings.TrimPrefix(report.ArchiveLocation, "s3://"+s.bucket+"/")
	if key == report.ArchiveLocation || key == "" {
		s.logger.Warnf("unrecognized archive location %q, snapshot not removed", report.ArchiveLocation)
		return nil
	}
	if err := s.store.DeleteObject(ctx, s.bucket, key); err != nil {
		s.logger.Warnf("delete archive %s: %v", key, err)
	}
	return nil
}

func (s *reportService) ListArchives(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.store == nil || s.bucket == "" {
		return nil, fmt.Errorf("storage service not configured")
	}
	return s.store.ListObjects(ctx, s.bucket, s.keyPrefix)
}
