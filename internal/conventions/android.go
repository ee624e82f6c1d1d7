package conventions

import (
	"strings"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/upstream"
	"go.trai.ch/zerr"
)

// SDK levels shared by every module.
const (
	CompileSdk = 33
	MinSdk     = 21
	TargetSdk  = 33
)

// JavaVersion is the source and target compatibility of every module.
const JavaVersion = "1.8"

// optInAnnotations are opted into for every Kotlin compilation.
var optInAnnotations = []string{
	"kotlin.RequiresOptIn",
	"kotlinx.coroutines.ExperimentalCoroutinesApi",
	"kotlinx.coroutines.FlowPreview",
	"kotlin.Experimental",
}

func androidExtension(p *domain.Project) (*upstream.CommonExtension, error) {
	ext, ok := upstream.Android(p)
	if !ok {
		return nil, zerr.With(upstream.ErrAndroidPluginRequired, "project", p.Name)
	}
	return ext.Common(), nil
}

// configureKotlinAndroid applies the defaults shared by application,
// library and test modules.
func configureKotlinAndroid(p *domain.Project, common *upstream.CommonExtension) {
	common.CompileSdk = CompileSdk
	common.DefaultConfig.MinSdk = MinSdk
	common.CompileOptions.SourceCompatibility = JavaVersion
	common.CompileOptions.TargetCompatibility = JavaVersion
	common.CompileOptions.CoreLibraryDesugaring = true

	if kotlin, ok := upstream.Kotlin(p); ok {
		kotlin.JvmTarget = JavaVersion
		for _, annotation := range optInAnnotations {
			kotlin.FreeCompilerArgs = append(kotlin.FreeCompilerArgs, "-opt-in="+annotation)
		}
	}

	addLibrary(p, optionalLibs(p), "coreLibraryDesugaring", "android.desugarJdkLibs")
}

func applyAndroidApplication(p *domain.Project) error {
	if err := applyAll(p, upstream.AndroidApplicationID, upstream.KotlinAndroidID); err != nil {
		return err
	}
	common, err := androidExtension(p)
	if err != nil {
		return err
	}
	configureKotlinAndroid(p, common)
	common.DefaultConfig.TargetSdk = TargetSdk
	return nil
}

func applyAndroidLibrary(p *domain.Project) error {
	if err := applyAll(p, upstream.AndroidLibraryID, upstream.KotlinAndroidID); err != nil {
		return err
	}
	common, err := androidExtension(p)
	if err != nil {
		return err
	}
	configureKotlinAndroid(p, common)
	common.DefaultConfig.TargetSdk = TargetSdk

	if lib, ok := upstream.Android(p); ok {
		if library, ok := lib.(*upstream.LibraryExtension); ok {
			library.ResourcePrefix = resourcePrefix(p.Name)
		}
	}

	p.AddDependency("androidTestImplementation", kotlinModule("test"))
	p.AddDependency("testImplementation", kotlinModule("test"))
	return nil
}

func applyAndroidTest(p *domain.Project) error {
	if err := applyAll(p, upstream.AndroidTestID, upstream.KotlinAndroidID); err != nil {
		return err
	}
	common, err := androidExtension(p)
	if err != nil {
		return err
	}
	configureKotlinAndroid(p, common)
	common.DefaultConfig.TargetSdk = TargetSdk
	return nil
}

// kotlinModule mirrors the kotlin("name") dependency shorthand.
func kotlinModule(name string) string {
	return "org.jetbrains.kotlin:kotlin-" + name
}

// resourcePrefix derives the library resource prefix from the project name,
// e.g. "core-ui" becomes "core_ui_".
func resourcePrefix(name string) string {
	return strings.ToLower(strings.NewReplacer("-", "_", ":", "_").Replace(name)) + "_"
}
