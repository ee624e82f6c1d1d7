// Package testkit runs the build tool against throwaway projects from Go
// tests. A Suite loads the plugin classpath manifest once; each test gets its
// own Project rooted in a fresh temporary directory.
package testkit

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/manifest"
	"go.trai.ch/zerr"
)

const (
	// DirEnv overrides the shared test-kit directory.
	DirEnv = "BUILDLOGIC_TESTKIT_DIR"

	// SDKRootEnv names the Android SDK location copied into local.properties.
	SDKRootEnv = "ANDROID_SDK_ROOT"

	// RootProjectName is the root project name written to every sandbox.
	RootProjectName = "test-app"

	defaultDirName = "buildlogic-testkit"
	reportFileName = "build-report.yaml"
	defaultBinary  = "buildlogic"
)

// Dir returns the test-kit directory shared by all sandboxes. It holds the
// shared output cache and is never cleaned by the harness.
func Dir() string {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), defaultDirName)
}

// Option configures a Suite.
type Option func(*Suite)

// WithRunner sets the runner used to invoke the build tool.
func WithRunner(r Runner) Option {
	return func(s *Suite) { s.runner = r }
}

// WithSetup sets a hook called after the standard fixtures of every project
// are written.
func WithSetup(fn func(*Project)) Option {
	return func(s *Suite) { s.setup = fn }
}

// WithManifestDirs sets the resource directories searched for the manifest.
func WithManifestDirs(dirs ...string) Option {
	return func(s *Suite) { s.manifestDirs = dirs }
}

// WithDir overrides the shared test-kit directory.
func WithDir(dir string) Option {
	return func(s *Suite) { s.dir = dir }
}

// Suite holds the state shared by the projects of one test suite.
type Suite struct {
	runner       Runner
	setup        func(*Project)
	manifestDirs []string
	dir          string

	classpath manifest.Manifest

	// PluginsClasspath is the manifest rendered as a classpath literal,
	// ready to be interpolated into buildscript.classpath.
	PluginsClasspath string
}

// NewSuite loads the plugin classpath manifest and returns a Suite.
func NewSuite(opts ...Option) (*Suite, error) {
	s := &Suite{
		runner: ExecRunner{Binary: defaultBinary},
		dir:    Dir(),
	}
	for _, opt := range opts {
		opt(s)
	}

	classpath, err := manifest.Load(domain.ClasspathManifestName, s.manifestDirs...)
	if err != nil {
		return nil, err
	}
	s.classpath = classpath
	s.PluginsClasspath = classpath.Literal()
	return s, nil
}

// Classpath returns a copy of the loaded manifest entries.
func (s *Suite) Classpath() []string {
	return append([]string(nil), s.classpath...)
}

// Dir returns the shared test-kit directory of the suite.
func (s *Suite) Dir() string {
	return s.dir
}

// BuildScript returns a build.yaml body whose buildscript classpath is the
// suite's plugin classpath, followed by body.
func (s *Suite) BuildScript(body string) string {
	var b strings.Builder
	b.WriteString("buildscript:\n")
	b.WriteString("  classpath: [")
	b.WriteString(s.PluginsClasspath)
	b.WriteString("]\n")
	b.WriteString(body)
	return b.String()
}

// Project creates a sandbox project for t and writes its standard fixtures.
// The directory is removed when the test finishes.
func (s *Suite) Project(t testing.TB) *Project {
	t.Helper()
	p := &Project{
		t:         t,
		suite:     s,
		Dir:       t.TempDir(),
		reportDir: t.TempDir(),
		files:     make(map[string]string),
	}
	p.Setup()
	return p
}

// Project is a sandboxed build project owned by a single test.
type Project struct {
	t         testing.TB
	suite     *Suite
	reportDir string

	// Dir is the absolute project root.
	Dir string

	mu    sync.Mutex
	files map[string]string
}

// Setup writes the standard fixtures and calls the suite setup hook.
// Files are overwritten, so calling Setup again is harmless.
func (p *Project) Setup() {
	p.t.Helper()
	p.WriteFile(domain.SettingsFileName, "rootProject: "+RootProjectName+"\n")
	if sdk := os.Getenv(SDKRootEnv); strings.TrimSpace(sdk) != "" {
		p.WriteFile(domain.LocalPropertiesFileName, domain.SDKDirProperty+"="+sdk+"\n")
	}
	if p.suite.setup != nil {
		p.suite.setup(p)
	}
}

// Suite returns the suite that created the project.
func (p *Project) Suite() *Suite {
	return p.suite
}

// File returns the absolute path of rel, creating its parent directories.
func (p *Project) File(rel string) string {
	p.t.Helper()
	path := filepath.Join(p.Dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil && !errors.Is(err, fs.ErrExist) {
		p.t.Fatalf("%v", zerr.With(zerr.Wrap(err, domain.ErrFixtureIO.Error()), "path", path))
	}
	return path
}

// WriteFile writes contents to rel, replacing any previous contents, and
// returns the absolute path.
func (p *Project) WriteFile(rel, contents string) string {
	p.t.Helper()
	path := p.File(rel)
	if err := os.WriteFile(path, []byte(contents), domain.FilePerm); err != nil {
		p.t.Fatalf("%v", zerr.With(zerr.Wrap(err, domain.ErrFixtureIO.Error()), "path", path))
	}

	p.mu.Lock()
	p.files[filepath.ToSlash(rel)] = contents
	p.mu.Unlock()
	return path
}

// WriteBuildScript writes build.yaml with the suite classpath and body.
func (p *Project) WriteBuildScript(body string) string {
	p.t.Helper()
	return p.WriteFile(domain.BuildFileName, p.suite.BuildScript(body))
}

// Files returns the fixture files written so far, keyed by relative path.
func (p *Project) Files() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	files := make(map[string]string, len(p.files))
	for k, v := range p.files {
		files[k] = v
	}
	return files
}

// Run builds the project with args and fails the test unless the build
// succeeds.
func (p *Project) Run(args ...string) *Result {
	p.t.Helper()
	res := p.invoke(args)
	if res == nil {
		return nil
	}
	require.Truef(p.t, res.Success, "expected build %v to succeed, it failed: %s", args, res.Failure)
	return res
}

// RunAndFail builds the project with args and fails the test if the build
// succeeds.
func (p *Project) RunAndFail(args ...string) *Result {
	p.t.Helper()
	res := p.invoke(args)
	if res == nil {
		return nil
	}
	require.Falsef(p.t, res.Success, "expected build %v to fail, it succeeded", args)
	return res
}

func (p *Project) invoke(args []string) *Result {
	p.t.Helper()

	if err := os.MkdirAll(p.suite.dir, domain.DirPerm); err != nil {
		p.t.Fatalf("%v", zerr.With(zerr.Wrap(err, domain.ErrFixtureIO.Error()), "path", p.suite.dir))
		return nil
	}

	reportFile := filepath.Join(p.reportDir, reportFileName)
	_ = os.Remove(reportFile)

	var output bytes.Buffer
	logw := &logWriter{t: p.t}
	out := &teeWriter{buf: &output, log: logw}

	inv := Invocation{
		ProjectDir: p.Dir,
		Home:       p.suite.dir,
		ReportFile: reportFile,
		Args:       args,
		Output:     out,
	}
	exitCode, err := p.suite.runner.Run(p.t.Context(), inv)
	logw.Flush()
	if err != nil {
		p.t.Fatalf("failed to run build: %v", err)
		return nil
	}

	res, err := newResult(exitCode, reportFile, output.String())
	if err != nil {
		p.t.Fatalf("failed to read build result: %v", err)
		return nil
	}
	return res
}
