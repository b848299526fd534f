package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/wine-cx/wine-pricing-system/internal/model"
)

// CleanLog 一条清洗历史
type CleanLog struct {
	ID           int64  `json:"id"`
	TotalFiles   int    `json:"totalFiles"`
	MatchedFiles int    `json:"matchedFiles"`
	SkippedFiles int    `json:"skippedFiles"`
	TotalRows    int    `json:"totalRows"`
	ExportPath   string `json:"exportPath"`
	CreatedAt    string `json:"createdAt"`
}

// RecordClean 写入一条清洗历史，detail 存整份报告的 JSON
func (s *Store) RecordClean(report *model.CleanReport) (int64, error) {
	detail, err := json.Marshal(report)
	if err != nil {
		detail = []byte("{}")
	}

	res, err := s.db.Exec(`
		INSERT INTO clean_logs (total_files, matched_files, skipped_files, total_rows, export_path, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`, report.TotalFiles, report.Matched, report.Skipped, report.TotalRows, report.ExportPath, string(detail))
	if err != nil {
		return 0, fmt.Errorf("failed to record clean log: %w", err)
	}
	return res.LastInsertId()
}

// ListCleanLogs 最近的清洗历史，按时间倒序
func (s *Store) ListCleanLogs(limit int) ([]CleanLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, total_files, matched_files, skipped_files, total_rows, export_path, created_at
		FROM clean_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CleanLog, 0, limit)
	for rows.Next() {
		var l CleanLog
		if err := rows.Scan(&l.ID, &l.TotalFiles, &l.MatchedFiles, &l.SkippedFiles, &l.TotalRows, &l.ExportPath, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// LastCleanTime 最近一次清洗时间，没有历史时返回空串
func (s *Store) LastCleanTime() (string, error) {
	var t string
	err := s.db.QueryRow(`SELECT created_at FROM clean_logs ORDER BY id DESC LIMIT 1`).Scan(&t)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return t, nil
}
