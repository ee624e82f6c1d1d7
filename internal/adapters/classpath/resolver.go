// Package classpath resolves plugin descriptors from build script classpath entries.
package classpath

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.PluginResolver = (*Resolver)(nil)

// Resolver implements ports.PluginResolver.
// A directory entry contributes its buildlogic-plugins.yaml, if any. A file
// entry is read as a descriptor itself.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve reads every entry in order. Entries without a descriptor are skipped.
func (r *Resolver) Resolve(entries []string) (map[string]domain.PluginRegistration, error) {
	plugins := make(map[string]domain.PluginRegistration)

	for _, entry := range entries {
		descriptor, err := readEntry(entry)
		if err != nil {
			return nil, zerr.With(err, "classpath_entry", entry)
		}
		if descriptor == nil {
			continue
		}
		for _, reg := range descriptor.Plugins {
			if reg.ID == "" || reg.ImplementationClass == "" {
				return nil, zerr.With(zerr.With(domain.ErrPluginDescriptorInvalid, "classpath_entry", entry), "plugin", reg.Name)
			}
		}
		descriptor.RegisterInto(plugins)
	}

	return plugins, nil
}

func readEntry(entry string) (*domain.PluginDescriptor, error) {
	info, err := os.Stat(entry)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrClasspathEntryMissing.Error())
	}

	path := entry
	if info.IsDir() {
		path = filepath.Join(entry, domain.PluginDescriptorFileName)
	}

	//nolint:gosec // classpath entries are chosen by the build script
	data, err := os.ReadFile(path)
	if err != nil {
		if info.IsDir() && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrPluginDescriptorInvalid.Error())
	}

	var descriptor domain.PluginDescriptor
	if err := yaml.Unmarshal(data, &descriptor); err != nil {
		return nil, zerr.Wrap(err, domain.ErrPluginDescriptorInvalid.Error())
	}
	return &descriptor, nil
}
