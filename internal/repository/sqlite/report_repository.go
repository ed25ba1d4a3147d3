package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"finlite/internal/domain"
	"finlite/internal/repository"
)

const createReportsTable = `
CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	report_name TEXT NOT NULL,
	archive_location TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);
`

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createReportsTable); err != nil {
		return fmt.Errorf("create reports table: %w", err)
	}
	return nil
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (int64, error) {
	report.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO reports (user_id, report_name, archive_location, created_at)
VALUES (?, ?, ?, ?)`,
		report.UserID,
		report.ReportName,
		report.ArchiveLocation,
		report.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("report last insert id: %w", err)
	}
	report.ID = id
	return id, nil
}

func (r *ReportRepository) Get(ctx context.Context, id, userID int64) (*domain.Report, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, report_name, archive_location, created_at
FROM reports
WHERE id = ? AND user_id = ?`,
		id, userID,
	)

	var rep domain.Report
	err := row.Scan(&rep.ID, &rep.UserID, &rep.ReportName, &rep.ArchiveLocation, &rep.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &rep, nil
}

func (r *ReportRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Report, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, report_name, archive_location, created_at
FROM reports
WHERE user_id = ?
ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.ReportName, &rep.ArchiveLocation, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return requireAffected(res)
}
