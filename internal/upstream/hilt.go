package upstream

import (
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/zerr"
)

// HiltExtensionName is the extension registered by the Hilt plugin.
const HiltExtensionName = "hilt"

// HiltExtension configures Hilt code generation.
type HiltExtension struct {
	EnableAggregatingTask bool
}

// Hilt returns the project's Hilt extension.
func Hilt(p *domain.Project) (*HiltExtension, bool) {
	return domain.ExtensionOf[*HiltExtension](p, HiltExtensionName)
}

func applyHilt(p *domain.Project) error {
	if !HasAndroidPlugin(p) {
		return zerr.With(ErrAndroidPluginRequired, "plugin_id", HiltID)
	}
	return p.AddExtension(HiltExtensionName, &HiltExtension{EnableAggregatingTask: true})
}
