package lite_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/databrickslabs/sandbox/tally/lite"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type config struct {
	Workers int
	Exclude []string
}

type echo struct {
	Top int
}

type seen struct {
	cfg  config
	req  echo
	args []string
}

func newRoot(t *testing.T, configDir string) (*lite.Root[config], *seen) {
	t.Helper()
	got := &seen{}
	root := lite.New(context.Background(), lite.Init[config]{
		Name:       "demo",
		Version:    "0.0.1",
		ConfigPath: configDir,
		Bind: func(flags *pflag.FlagSet, cfg *config) {
			flags.IntVar(&cfg.Workers, "workers", 2, "workers")
			flags.StringSliceVar(&cfg.Exclude, "exclude", nil, "exclude")
		},
	}).With(&lite.Command[config, echo]{
		Name: "echo",
		Args: cobra.MinimumNArgs(1),
		Flags: func(flags *pflag.FlagSet, req *echo) {
			flags.IntVar(&req.Top, "top", 10, "top")
		},
		Run: func(ctx context.Context, root *lite.Root[config], req *echo, args []string) error {
			got.cfg = root.Config
			got.req = *req
			got.args = args
			return nil
		},
	})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root, got
}

func TestDefaults(t *testing.T) {
	root, got := newRoot(t, t.TempDir())
	root.SetArgs([]string{"echo", "x"})
	require.NoError(t, root.Execute())
	assert.Equal(t, 2, got.cfg.Workers)
	assert.Equal(t, 10, got.req.Top)
	assert.Equal(t, []string{"x"}, got.args)
}

func TestFlagsWin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.yml"), []byte("workers: 7\n"), 0o600))
	t.Setenv("DEMO_ECHO_TOP", "3")

	root, got := newRoot(t, dir)
	root.SetArgs([]string{"echo", "--workers", "4", "--top", "5", "x"})
	require.NoError(t, root.Execute())
	assert.Equal(t, 4, got.cfg.Workers)
	assert.Equal(t, 5, got.req.Top)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.yml"), []byte(`workers: 7
exclude:
  - vendor
  - \.git
echo:
  top: 3
`), 0o600))

	root, got := newRoot(t, dir)
	root.SetArgs([]string{"echo", "x"})
	require.NoError(t, root.Execute())
	assert.Equal(t, 7, got.cfg.Workers)
	assert.Equal(t, []string{"vendor", `\.git`}, got.cfg.Exclude)
	assert.Equal(t, 3, got.req.Top)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("DEMO_WORKERS", "9")
	t.Setenv("DEMO_ECHO_TOP", "1")

	root, got := newRoot(t, t.TempDir())
	root.SetArgs([]string{"echo", "x"})
	require.NoError(t, root.Execute())
	assert.Equal(t, 9, got.cfg.Workers)
	assert.Equal(t, 1, got.req.Top)
}

func TestBadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.yml"), []byte("workers: [oops\n"), 0o600))

	root, _ := newRoot(t, dir)
	root.SetArgs([]string{"echo", "x"})
	assert.ErrorContains(t, root.Execute(), "config")
}

func TestArgsValidated(t *testing.T) {
	root, _ := newRoot(t, t.TempDir())
	root.SetArgs([]string{"echo"})
	assert.Error(t, root.Execute())
}
