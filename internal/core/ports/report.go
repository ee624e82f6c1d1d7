package ports

import "go.trai.ch/buildlogic/internal/core/domain"

// ReportStore persists the structured result of a build.
//
//go:generate mockgen -source=report.go -destination=mocks/mock_report.go -package=mocks
type ReportStore interface {
	// Write stores report at path, replacing any previous report.
	Write(path string, report domain.BuildReport) error

	// Read loads the report at path.
	Read(path string) (domain.BuildReport, error)
}
