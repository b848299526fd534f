package store

import (
	"path/filepath"
	"testing"

	"github.com/wine-cx/wine-pricing-system/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "wine.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConfigKV(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetConfig("missing"); err == nil {
		t.Fatalf("缺失键应报错")
	}

	if err := s.SetConfig("export_format", "xlsx"); err != nil {
		t.Fatalf("SetConfig failed: %v", err)
	}
	if err := s.SetConfig("export_format", "csv"); err != nil {
		t.Fatalf("SetConfig upsert failed: %v", err)
	}

	v, err := s.GetConfig("export_format")
	if err != nil || v != "csv" {
		t.Fatalf("GetConfig=%q, %v", v, err)
	}

	all, err := s.GetAllConfig()
	if err != nil || all["export_format"] != "csv" {
		t.Fatalf("GetAllConfig=%v, %v", all, err)
	}
}

func TestCleanLogs(t *testing.T) {
	s := newTestStore(t)

	last, err := s.LastCleanTime()
	if err != nil || last != "" {
		t.Fatalf("无历史时应返回空串: %q %v", last, err)
	}

	report := &model.CleanReport{
		TotalFiles: 3, Matched: 2, Skipped: 1, TotalRows: 40,
		ExportPath: "/data/exports/cleaned_data.xlsx",
		Files: []model.FileResult{
			{FileName: "a(101).xlsx", Matched: true, Rows: 25},
			{FileName: "b(102).xlsx", Matched: true, Rows: 15},
			{FileName: "c.xlsx"},
		},
	}
	id, err := s.RecordClean(report)
	if err != nil || id == 0 {
		t.Fatalf("RecordClean=%d, %v", id, err)
	}

	logs, err := s.ListCleanLogs(10)
	if err != nil {
		t.Fatalf("ListCleanLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].MatchedFiles != 2 || logs[0].TotalRows != 40 {
		t.Fatalf("logs=%+v", logs)
	}

	last, err = s.LastCleanTime()
	if err != nil || last == "" {
		t.Fatalf("LastCleanTime=%q, %v", last, err)
	}
}
