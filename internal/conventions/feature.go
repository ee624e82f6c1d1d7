package conventions

import (
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/upstream"
)

// TestInstrumentationRunner is the runner configured on feature modules.
const TestInstrumentationRunner = "com.google.samples.apps.nowinandroid.core.testing.NiaTestRunner"

var featureProjectDependencies = []string{
	":core:model",
	":core:ui",
	":core:designsystem",
	":core:data",
	":core:common",
	":core:navigation",
}

var featureLibraries = []string{
	"coil.kt",
	"coil.kt.compose",
	"androidx.hilt.navigation.compose",
	"androidx.lifecycle.runtimeCompose",
	"androidx.lifecycle.viewModelCompose",
	"kotlinx.coroutines.android",
	"hilt.android",
}

func applyAndroidFeature(p *domain.Project) error {
	if err := applyAll(p, AndroidLibraryID, upstream.KotlinKaptID, upstream.HiltID); err != nil {
		return err
	}

	common, err := androidExtension(p)
	if err != nil {
		return err
	}
	common.DefaultConfig.TestInstrumentationRunner = TestInstrumentationRunner

	if kapt, ok := upstream.Kapt(p); ok {
		kapt.CorrectErrorTypes = true
	}

	for _, dep := range featureProjectDependencies {
		p.AddDependency("implementation", "project("+dep+")")
	}
	p.AddDependency("testImplementation", "project(:core:testing)")
	p.AddDependency("androidTestImplementation", "project(:core:testing)")

	c := optionalLibs(p)
	for _, alias := range featureLibraries {
		addLibrary(p, c, "implementation", alias)
	}
	addLibrary(p, c, "kapt", "hilt.compiler")
	return nil
}
