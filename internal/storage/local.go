package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	drifterrors "github.com/driftlens/driftlens/internal/errors"
)

// LocalStorage keeps a history of generated reports on the local filesystem
type LocalStorage struct {
	baseDir string
	reports string
}

// ReportInfo describes one stored report
type ReportInfo struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLocal creates a local storage rooted at baseDir; empty selects
// ~/.driftlens. The reports directory is created if needed.
func NewLocal(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, drifterrors.New(drifterrors.ErrorTypeStorage,
				"cannot determine home directory for report storage").
				WithCause(err.Error()).
				WithSolutions("Set storage.base_dir in the config file")
		}
		baseDir = filepath.Join(homeDir, ".driftlens")
	}

	s := &LocalStorage{
		baseDir: baseDir,
		reports: filepath.Join(baseDir, "reports"),
	}
	if err := os.MkdirAll(s.reports, 0o755); err != nil {
		return nil, drifterrors.New(drifterrors.ErrorTypeStorage,
			fmt.Sprintf("cannot create report directory %s", s.reports)).
			WithCause(err.Error())
	}
	return s, nil
}

// SaveReport stores serialized report data under a timestamped filename and
// returns its path. Writes are atomic so a crash never leaves a truncated
// report in the history.
func (s *LocalStorage) SaveReport(data []byte, at time.Time) (string, error) {
	filename := fmt.Sprintf("report-%s.json", at.UTC().Format("20060102-150405"))
	path := filepath.Join(s.reports, filename)

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return "", drifterrors.New(drifterrors.ErrorTypeStorage,
			fmt.Sprintf("failed to save report %s", path)).
			WithCause(err.Error()).
			WithSolutions("Check free disk space and directory permissions")
	}
	return path, nil
}

// LoadReport reads a stored report by path
func (s *LocalStorage) LoadReport(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, drifterrors.New(drifterrors.ErrorTypeStorage,
			fmt.Sprintf("cannot read report %s", path)).
			WithCause(err.Error())
	}
	return data, nil
}

// ListReports returns stored reports, newest first
func (s *LocalStorage) ListReports() ([]ReportInfo, error) {
	entries, err := os.ReadDir(s.reports)
	if err != nil {
		return nil, drifterrors.New(drifterrors.ErrorTypeStorage,
			fmt.Sprintf("cannot list report directory %s", s.reports)).
			WithCause(err.Error())
	}

	var reports []ReportInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		reports = append(reports, ReportInfo{
			Name:      entry.Name(),
			Path:      filepath.Join(s.reports, entry.Name()),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

// LatestReport returns the path of the most recently saved report
func (s *LocalStorage) LatestReport() (string, error) {
	reports, err := s.ListReports()
	if err != nil {
		return "", err
	}
	if len(reports) == 0 {
		return "", drifterrors.New(drifterrors.ErrorTypeStorage,
			"no saved reports found").
			WithSolutions("Run 'driftlens analyze --save' to store a report first")
	}
	return reports[0].Path, nil
}

// BaseDir returns the storage root
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}
