package conventions

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/upstream"
)

// JacocoReportTask is the coverage report task registered by the jacoco conventions.
const JacocoReportTask = "jacocoTestReport"

// coverageExclusions are generated classes left out of coverage reports.
var coverageExclusions = []string{
	"**/R.class",
	"**/R$*.class",
	"**/BuildConfig.*",
	"**/Manifest*.*",
}

func applyAndroidApplicationJacoco(p *domain.Project) error {
	if err := applyAll(p, upstream.JacocoID, upstream.AndroidApplicationID); err != nil {
		return err
	}
	return configureJacoco(p)
}

func applyAndroidLibraryJacoco(p *domain.Project) error {
	if err := applyAll(p, upstream.JacocoID, upstream.AndroidLibraryID); err != nil {
		return err
	}
	return configureJacoco(p)
}

func configureJacoco(p *domain.Project) error {
	jacoco, ok := upstream.Jacoco(p)
	if !ok {
		return nil
	}
	jacoco.ToolVersion = versionOr(optionalLibs(p), "jacoco", upstream.DefaultJacocoVersion)

	return p.RegisterTask(&domain.Task{
		Name:        domain.NewInternedString(JacocoReportTask),
		Group:       "verification",
		Description: "Generates code coverage reports.",
		Action: func(_ context.Context, out io.Writer) error {
			_, err := fmt.Fprintf(out, "jacoco %s: reports=xml,html excludes=%s\n",
				jacoco.ToolVersion, strings.Join(coverageExclusions, ","))
			return err
		},
	})
}
