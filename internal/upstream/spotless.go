package upstream

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/buildlogic/internal/core/domain"
)

// SpotlessExtensionName is the extension registered by the spotless plugin.
const SpotlessExtensionName = "spotless"

// FormatExtension configures one spotless format.
type FormatExtension struct {
	Target            []string
	TargetExclude     []string
	Ktlint            string
	LicenseHeaderFile string
}

// SpotlessExtension holds the configured formats by name.
type SpotlessExtension struct {
	Formats map[string]*FormatExtension
}

// Format returns the format called name, creating it on first use.
func (s *SpotlessExtension) Format(name string) *FormatExtension {
	f, ok := s.Formats[name]
	if !ok {
		f = &FormatExtension{}
		s.Formats[name] = f
	}
	return f
}

// Kotlin returns the kotlin format.
func (s *SpotlessExtension) Kotlin() *FormatExtension {
	return s.Format("kotlin")
}

// Spotless returns the project's spotless extension.
func Spotless(p *domain.Project) (*SpotlessExtension, bool) {
	return domain.ExtensionOf[*SpotlessExtension](p, SpotlessExtensionName)
}

func applySpotless(p *domain.Project) error {
	ext := &SpotlessExtension{Formats: make(map[string]*FormatExtension)}
	if err := p.AddExtension(SpotlessExtensionName, ext); err != nil {
		return err
	}

	for _, verb := range []string{"Check", "Apply"} {
		err := p.RegisterTask(&domain.Task{
			Name:        domain.NewInternedString("spotless" + verb),
			Group:       "verification",
			Description: "Runs spotless" + verb + " for every configured format.",
			Action: func(_ context.Context, out io.Writer) error {
				for _, name := range slices.Sorted(maps.Keys(ext.Formats)) {
					f := ext.Formats[name]
					_, _ = fmt.Fprintf(out, "spotless%s %s: target=%s", verb, name, strings.Join(f.Target, ","))
					if f.Ktlint != "" {
						_, _ = fmt.Fprintf(out, " ktlint=%s", f.Ktlint)
					}
					_, _ = fmt.Fprintln(out)
				}
				return nil
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
