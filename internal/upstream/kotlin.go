package upstream

import (
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/zerr"
)

// Extension names registered by the Kotlin plugins.
const (
	KotlinExtensionName = "kotlin"
	KaptExtensionName   = "kapt"
)

// KotlinAndroidExtension configures Kotlin compilation for Android modules.
type KotlinAndroidExtension struct {
	JvmTarget        string
	FreeCompilerArgs []string
}

// KaptExtension configures annotation processing.
type KaptExtension struct {
	CorrectErrorTypes bool
}

// Kotlin returns the project's Kotlin extension.
func Kotlin(p *domain.Project) (*KotlinAndroidExtension, bool) {
	return domain.ExtensionOf[*KotlinAndroidExtension](p, KotlinExtensionName)
}

// Kapt returns the project's kapt extension.
func Kapt(p *domain.Project) (*KaptExtension, bool) {
	return domain.ExtensionOf[*KaptExtension](p, KaptExtensionName)
}

func applyKotlinAndroid(p *domain.Project) error {
	if !HasAndroidPlugin(p) {
		return zerr.With(ErrAndroidPluginRequired, "plugin_id", KotlinAndroidID)
	}
	return p.AddExtension(KotlinExtensionName, &KotlinAndroidExtension{JvmTarget: "1.8"})
}

func applyKapt(p *domain.Project) error {
	return p.AddExtension(KaptExtensionName, &KaptExtension{})
}
