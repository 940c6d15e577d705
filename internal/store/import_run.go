package store

import (
	"database/sql"
	"fmt"
	"time"
)

// ImportRun 单次导入运行的审计记录
type ImportRun struct {
	ID             int64      `json:"id"`
	SessionID      string     `json:"sessionId"`
	ProjectID      string     `json:"projectId"`
	Filename       string     `json:"filename"`
	TotalDevices   int        `json:"totalDevices"`
	ValidDevices   int        `json:"validDevices"`
	InvalidDevices int        `json:"invalidDevices"`
	SuccessCount   int        `json:"successCount"`
	FailedCount    int        `json:"failedCount"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	Status         string     `json:"status"` // processing / completed / failed
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

// CreateImportRun 创建导入审计记录，返回 run id
func (s *Store) CreateImportRun(sessionID, projectID, filename string, total, valid, invalid int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_runs (session_id, project_id, filename, total_devices, valid_devices, invalid_devices, status)
		VALUES (?, ?, ?, ?, ?, ?, 'processing')
	`, sessionID, projectID, filename, total, valid, invalid)
	if err != nil {
		return 0, fmt.Errorf("failed to create import run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import run id: %w", err)
	}
	return id, nil
}

// CompleteImportRun 回填导入结果
func (s *Store) CompleteImportRun(id int64, successCount, failedCount int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_runs SET
			success_count = ?,
			failed_count = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, successCount, failedCount, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to complete import run: %w", err)
	}
	return nil
}

// ListImportRuns 按项目列出最近的导入记录
func (s *Store) ListImportRuns(projectID string, limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, session_id, project_id, filename,
		       total_devices, valid_devices, invalid_devices,
		       success_count, failed_count, error_message, status,
		       created_at, completed_at
		FROM import_runs
		WHERE project_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var run ImportRun
		var completedAt sql.NullTime
		if err := rows.Scan(
			&run.ID, &run.SessionID, &run.ProjectID, &run.Filename,
			&run.TotalDevices, &run.ValidDevices, &run.InvalidDevices,
			&run.SuccessCount, &run.FailedCount, &run.ErrorMessage, &run.Status,
			&run.CreatedAt, &completedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		if completedAt.Valid {
			t := completedAt.Time
			run.CompletedAt = &t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
