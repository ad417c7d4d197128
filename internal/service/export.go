package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/overtime"
)

// ExportService downloads overtime workbooks and records the downloads
type ExportService struct {
	client *api.Client
	auth   *AuthService
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewExportService creates a new ExportService writing into dir. An empty
// dir means the working directory; a leading "~/" is the home directory.
func NewExportService(client *api.Client, auth *AuthService, dir string, logger *slog.Logger) *ExportService {
	return &ExportService{client: client, auth: auth, dir: dir, logger: logger, now: time.Now}
}

// FileName returns the name an export of [start, end] is saved under.
func FileName(start, end time.Time) string {
	return fmt.Sprintf("Overtime_%s_to_%s.xlsx", start.Format(overtime.DateLayout), end.Format(overtime.DateLayout))
}

// Export downloads the workbook for [start, end], checks it opens, saves it
// and records the download. dir overrides the configured directory when
// non-empty.
func (s *ExportService) Export(ctx context.Context, start, end time.Time, dir string) (*ExportResult, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", end.Format(overtime.DateLayout), start.Format(overtime.DateLayout))
	}

	data, err := s.client.ExportOvertime(ctx, start, end)
	if err != nil {
		return nil, err
	}
	sheet, rows, err := VerifyWorkbook(data)
	if err != nil {
		return nil, err
	}

	if dir == "" {
		dir = s.dir
	}
	dir, err = expandHome(dir)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, FileName(start, end))
	if err := writeFileAtomic(path, data); err != nil {
		return nil, fmt.Errorf("saving export: %w", err)
	}

	result := &ExportResult{Path: path, Sheet: sheet, Rows: rows}
	result.LogErr = s.recordDownload(ctx, start, end)
	if result.LogErr != nil {
		s.logger.Warn("download log not recorded", "error", result.LogErr)
	}
	s.logger.Info("overtime exported", "path", path, "rows", rows)
	return result, nil
}

// DownloadLogs returns the export download history.
func (s *ExportService) DownloadLogs(ctx context.Context) ([]api.DownloadLog, error) {
	return s.client.ListDownloadLogs(ctx)
}

func (s *ExportService) recordDownload(ctx context.Context, start, end time.Time) error {
	profile, err := s.auth.Profile(ctx)
	if err != nil {
		return err
	}
	return s.client.AddDownloadLog(ctx, api.DownloadLog{
		UserID:       profile.ID,
		StartDate:    start.Format(overtime.DateLayout),
		EndDate:      end.Format(overtime.DateLayout),
		DownloadedAt: s.now().UTC(),
	})
}

// VerifyWorkbook opens data as an xlsx workbook and returns the name and
// row count of its first sheet.
func VerifyWorkbook(data []byte) (sheet string, rows int, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheet = f.GetSheetName(0)
	if sheet == "" {
		return "", 0, fmt.Errorf("%w: no sheets", ErrInvalidWorkbook)
	}
	all, err := f.GetRows(sheet)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	return sheet, len(all), nil
}

func expandHome(dir string) (string, error) {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(dir, "~")), nil
	}
	return dir, nil
}

// writeFileAtomic writes through a temp file and a rename so a partial
// export is never left under the final name.
func writeFileAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
