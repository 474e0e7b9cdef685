package run

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"frontbuild/internal/config"
	"frontbuild/internal/fs"
	"frontbuild/internal/process"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		Name     string
		Err      error
		Expected int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"child exit", &process.ChildExit{ExitCode: 3, Command: "npm run build"}, 3},
		{"wrapped child exit", pkgerrors.Wrap(&process.ChildExit{ExitCode: 7}, "building"), 7},
		{"child killed", &process.ChildExit{ExitCode: process.ExitCodeError}, 1},
		{"closing", process.ErrClosing, 1},
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, ExitCode(tc.Err))
		})
	}
}

func newUi() (*cli.ColoredUi, *cli.MockUi) {
	mock := cli.NewMockUi()
	return &cli.ColoredUi{Ui: mock}, mock
}

func testConfig(root fs.AbsolutePath) *config.Config {
	frontend := root.Join("FullStackApp", "frontend")
	return &config.Config{
		Logger:      hclog.NewNullLogger(),
		Root:        root,
		FrontendDir: frontend,
		OutputDir:   frontend.Join("build"),
		TargetDir:   root.Join("build"),
	}
}

func TestCopyCommand(t *testing.T) {
	root := fs.AbsolutePath(t.TempDir())
	require.NoError(t, os.MkdirAll(root.Join("src", "sub").ToString(), 0755))
	require.NoError(t, os.WriteFile(root.Join("src", "a.txt").ToString(), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(root.Join("src", "sub", "b.txt").ToString(), []byte("world"), 0644))

	coloredUi, mock := newUi()
	cmd := &CopyCommand{Ui: coloredUi, Config: testConfig(root)}

	assert.Equal(t, 0, cmd.Run([]string{"src", "dst"}))
	b, err := os.ReadFile(root.Join("dst", "sub", "b.txt").ToString())
	require.NoError(t, err)
	assert.Equal(t, "world", string(b))
	assert.Contains(t, mock.OutputWriter.String(), "Copied")
}

func TestCopyCommandErrors(t *testing.T) {
	root := fs.AbsolutePath(t.TempDir())
	require.NoError(t, os.MkdirAll(root.Join("src").ToString(), 0755))

	cases := []struct {
		Name     string
		Args     []string
		Expected int
		Stderr   string
	}{
		{"no args", nil, 1, "expected <source> <destination>"},
		{"one arg", []string{"src"}, 1, "expected <source> <destination>"},
		{"into itself", []string{"src", "src/inner"}, 1, "into itself"},
		{"same path", []string{"src", "src"}, 1, "into itself"},
		{"missing source", []string{"missing", "dst"}, 0, "nothing to copy"},
		{"missing parent", []string{"src", "no/such/dst"}, 1, "copy failed"},
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			coloredUi, mock := newUi()
			cmd := &CopyCommand{Ui: coloredUi, Config: testConfig(root)}
			assert.Equal(t, tc.Expected, cmd.Run(tc.Args))
			assert.Contains(t, mock.ErrorWriter.String(), tc.Stderr)
		})
	}
	assert.False(t, fs.PathExists(root.Join("dst").ToString()))
}

// fakeNpm puts an npm on PATH that runs script for every invocation.
func fakeNpm(t *testing.T, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake npm is a shell script")
	}
	bin := t.TempDir()
	contents := "#!/bin/sh\n" + script + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(bin, "npm"), []byte(contents), 0755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func newProject(t *testing.T) fs.AbsolutePath {
	t.Helper()
	root := fs.AbsolutePath(t.TempDir())
	frontend := root.Join("FullStackApp", "frontend")
	require.NoError(t, os.MkdirAll(frontend.ToString(), 0755))
	require.NoError(t, os.WriteFile(frontend.Join("package.json").ToString(), []byte(`{"name":"frontend","scripts":{"build":"react-scripts build"}}`), 0644))
	return root
}

func TestBuildCommand(t *testing.T) {
	fakeNpm(t, `
if [ "$1" = "run" ] && [ "$2" = "build" ]; then
  mkdir -p build/static
  printf 'hello' > build/index.html
  printf "$PUBLIC_URL" > build/static/url.txt
fi`)
	root := newProject(t)
	cfg := testConfig(root)
	cfg.BuildEnv = []string{"PUBLIC_URL=/app"}
	coloredUi, mock := newUi()
	mgr := process.NewManager(hclog.NewNullLogger())
	defer mgr.Close()
	cmd := &BuildCommand{Ui: coloredUi, Config: cfg, Processes: mgr}

	code := cmd.Run(nil)

	require.Equal(t, 0, code, mock.ErrorWriter.String())
	b, err := os.ReadFile(root.Join("build", "index.html").ToString())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	b, err = os.ReadFile(root.Join("build", "static", "url.txt").ToString())
	require.NoError(t, err)
	assert.Equal(t, "/app", string(b))
	assert.Contains(t, mock.OutputWriter.String(), "Build process completed successfully!")
}

func TestBuildCommandChildFailure(t *testing.T) {
	fakeNpm(t, `
if [ "$1" = "run" ]; then
  mkdir -p build
  printf 'partial' > build/index.html
  echo "Failed to compile." >&2
  exit 3
fi`)
	root := newProject(t)
	coloredUi, mock := newUi()
	mgr := process.NewManager(hclog.NewNullLogger())
	defer mgr.Close()
	cmd := &BuildCommand{Ui: coloredUi, Config: testConfig(root), Processes: mgr}

	code := cmd.Run(nil)

	assert.Equal(t, 3, code)
	assert.False(t, fs.PathExists(root.Join("build").ToString()), "copy must not run after a failed build")
	assert.True(t, strings.Contains(mock.ErrorWriter.String(), "exited (3)"), mock.ErrorWriter.String())
}

func TestBuildCommandChildKilled(t *testing.T) {
	fakeNpm(t, `
if [ "$1" = "run" ]; then
  kill -9 $$
fi`)
	root := newProject(t)
	coloredUi, mock := newUi()
	mgr := process.NewManager(hclog.NewNullLogger())
	defer mgr.Close()
	cmd := &BuildCommand{Ui: coloredUi, Config: testConfig(root), Processes: mgr}

	assert.Equal(t, 1, cmd.Run(nil))
	assert.False(t, fs.PathExists(root.Join("build").ToString()))
	assert.Contains(t, mock.ErrorWriter.String(), "was terminated")
}

func TestBuildCommandInterrupted(t *testing.T) {
	fakeNpm(t, "exit 0")
	root := newProject(t)
	coloredUi, mock := newUi()
	mgr := process.NewManager(hclog.NewNullLogger())
	mgr.Close()
	cmd := &BuildCommand{Ui: coloredUi, Config: testConfig(root), Processes: mgr}

	assert.Equal(t, 1, cmd.Run(nil))
	assert.Contains(t, mock.ErrorWriter.String(), "build interrupted")
}

func TestBuildCommandUnexpectedArgs(t *testing.T) {
	coloredUi, mock := newUi()
	cmd := &BuildCommand{Ui: coloredUi, Config: testConfig(fs.AbsolutePath(t.TempDir()))}

	assert.Equal(t, 1, cmd.Run([]string{"extra"}))
	assert.Contains(t, mock.ErrorWriter.String(), "unexpected arguments")
}
