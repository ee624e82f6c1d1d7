package upstream

import "go.trai.ch/buildlogic/internal/core/domain"

// JacocoExtensionName is the extension registered by the jacoco plugin.
const JacocoExtensionName = "jacoco"

// DefaultJacocoVersion is the tool version used unless configured.
const DefaultJacocoVersion = "0.8.7"

// JacocoExtension configures coverage reporting.
type JacocoExtension struct {
	ToolVersion string
}

// Jacoco returns the project's jacoco extension.
func Jacoco(p *domain.Project) (*JacocoExtension, bool) {
	return domain.ExtensionOf[*JacocoExtension](p, JacocoExtensionName)
}

func applyJacoco(p *domain.Project) error {
	return p.AddExtension(JacocoExtensionName, &JacocoExtension{ToolVersion: DefaultJacocoVersion})
}
