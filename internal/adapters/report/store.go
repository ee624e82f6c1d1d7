// Package report reads and writes YAML build reports.
package report

import (
	"os"
	"path/filepath"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ReportStore = (*Store)(nil)

// Store implements ports.ReportStore with YAML files.
type Store struct{}

// NewStore creates a new report Store.
func NewStore() *Store {
	return &Store{}
}

// Write marshals report to path, creating parent directories.
func (s *Store) Write(path string, report domain.BuildReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", path)
	}
	return nil
}

// Read loads the report stored at path.
func (s *Store) Read(path string) (domain.BuildReport, error) {
	var report domain.BuildReport

	//nolint:gosec // path is chosen by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return report, zerr.With(zerr.Wrap(err, domain.ErrReportReadFailed.Error()), "path", path)
	}
	if err := yaml.Unmarshal(data, &report); err != nil {
		return report, zerr.With(zerr.Wrap(err, domain.ErrReportReadFailed.Error()), "path", path)
	}
	for _, task := range report.Tasks {
		if !task.Outcome.Valid() {
			return report, zerr.With(zerr.With(domain.ErrReportReadFailed, "path", path), "outcome", string(task.Outcome))
		}
	}
	return report, nil
}
