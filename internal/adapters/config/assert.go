package config

import (
	"context"
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strings"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/zerr"
)

// assertionAction builds the task body that checks spec against p.
func assertionAction(p *domain.Project, spec AssertDTO) domain.Action {
	return func(_ context.Context, out io.Writer) error {
		var failures []string
		fail := func(format string, args ...any) {
			failures = append(failures, fmt.Sprintf(format, args...))
		}

		for _, id := range spec.HasPlugin {
			if !p.HasPlugin(id) {
				fail("expected plugin %q to be applied", id)
			}
		}
		for _, id := range spec.NotPlugin {
			if p.HasPlugin(id) {
				fail("expected plugin %q not to be applied", id)
			}
		}
		for _, name := range spec.Extensions {
			if _, ok := p.Extension(name); !ok {
				fail("expected extension %q to be registered", name)
			}
		}
		for _, key := range slices.Sorted(maps.Keys(spec.Properties)) {
			if got, _ := p.Property(key); got != spec.Properties[key] {
				fail("expected property %q to be %q, got %q", key, spec.Properties[key], got)
			}
		}
		for _, conf := range slices.Sorted(maps.Keys(spec.Dependencies)) {
			declared := p.Dependencies(conf)
			for _, notation := range spec.Dependencies[conf] {
				if !slices.Contains(declared, notation) {
					fail("expected %s dependency %q, got %v", conf, notation, declared)
				}
			}
		}
		for _, name := range spec.Tasks {
			if _, ok := p.Tasks().GetTask(domain.NewInternedString(domain.TaskNameFromPath(name))); !ok {
				fail("expected task %q to be registered", name)
			}
		}
		for _, path := range slices.Sorted(maps.Keys(spec.Values)) {
			got, err := lookupValue(p, path)
			if err != nil {
				fail("%v", err)
				continue
			}
			if got != spec.Values[path] {
				fail("expected %s to be %q, got %q", path, spec.Values[path], got)
			}
		}

		if len(failures) > 0 {
			for _, f := range failures {
				_, _ = fmt.Fprintln(out, f)
			}
			return zerr.With(domain.ErrAssertionFailed, "failures", len(failures))
		}
		return nil
	}
}

// lookupValue resolves a dotted path such as "android.DefaultConfig.MinSdk".
// The first segment names an extension. Later segments select struct fields
// or map keys.
func lookupValue(p *domain.Project, path string) (string, error) {
	segments := strings.Split(path, ".")
	ext, ok := p.Extension(segments[0])
	if !ok {
		return "", zerr.New(fmt.Sprintf("extension %q is not registered", segments[0]))
	}

	v := reflect.ValueOf(ext)
	for _, seg := range segments[1:] {
		v = indirect(v)
		switch v.Kind() {
		case reflect.Struct:
			v = v.FieldByName(seg)
		case reflect.Map:
			v = v.MapIndex(reflect.ValueOf(seg))
		default:
			return "", zerr.New(fmt.Sprintf("cannot select %q in %s", seg, path))
		}
		if !v.IsValid() {
			return "", zerr.New(fmt.Sprintf("%s: no field or key %q", path, seg))
		}
	}

	v = indirect(v)
	if !v.IsValid() {
		return "", nil
	}
	if v.Kind() == reflect.Slice {
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(v.Index(i).Interface())
		}
		return strings.Join(parts, ","), nil
	}
	return fmt.Sprint(v.Interface()), nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
