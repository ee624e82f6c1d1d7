package conventions

import (
	"path/filepath"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/upstream"
)

// DefaultKtlintVersion is used when the catalog declares no ktlint version.
const DefaultKtlintVersion = "0.43.0"

func applySpotless(p *domain.Project) error {
	if err := p.ApplyPlugin(upstream.SpotlessID); err != nil {
		return err
	}
	ext, ok := upstream.Spotless(p)
	if !ok {
		return nil
	}
	ktlint := versionOr(optionalLibs(p), "ktlint", DefaultKtlintVersion)

	kotlin := ext.Kotlin()
	kotlin.Target = []string{"**/*.kt"}
	kotlin.TargetExclude = []string{"**/build/**/*.kt"}
	kotlin.Ktlint = ktlint
	kotlin.LicenseHeaderFile = filepath.Join(p.Dir, "spotless", "copyright.kt")

	kts := ext.Format("kts")
	kts.Target = []string{"**/*.kts"}
	kts.TargetExclude = []string{"**/build/**/*.kts"}
	kts.LicenseHeaderFile = filepath.Join(p.Dir, "spotless", "copyright.kts")

	xml := ext.Format("xml")
	xml.Target = []string{"**/*.xml"}
	xml.TargetExclude = []string{"**/build/**/*.xml"}
	xml.LicenseHeaderFile = filepath.Join(p.Dir, "spotless", "copyright.xml")
	return nil
}
