package plugins

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/zerr"
)

// BasePluginID is the id of the core plugin that every project can apply.
const BasePluginID = "base"

// BuildDirName is the project-relative directory that clean removes.
const BuildDirName = "build"

func corePlugins() map[string]Factory {
	return map[string]Factory{
		BasePluginID: func() domain.Plugin { return domain.PluginFunc(applyBase) },
	}
}

// applyBase registers the clean task.
func applyBase(p *domain.Project) error {
	dir := p.Dir
	return p.RegisterTask(&domain.Task{
		Name:        domain.NewInternedString("clean"),
		Description: "Deletes the build directory.",
		Group:       "build",
		Action: func(_ context.Context, out io.Writer) error {
			buildDir := filepath.Join(dir, BuildDirName)
			if err := os.RemoveAll(buildDir); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrFailedToCleanOutput.Error()), "path", buildDir)
			}
			_, _ = fmt.Fprintf(out, "Deleted %s\n", BuildDirName)
			return nil
		},
	})
}
