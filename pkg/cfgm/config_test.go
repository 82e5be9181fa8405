package cfgm_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/cfgm"
)

type testExprConfig struct {
	Prefix      string `json:"prefix"`
	RejectEmpty bool   `json:"reject-empty"`
}

type testConfig struct {
	Name    string            `json:"name"`
	Timeout time.Duration     `json:"timeout"`
	Tags    []string          `json:"tags"`
	Labels  map[string]string `json:"labels"`
	Expr    testExprConfig    `json:"expr"`
}

func defaultTestConfig() testConfig {
	return testConfig{
		Name:    "default",
		Timeout: 5 * time.Second,
		Expr:    testExprConfig{Prefix: "${{"},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
name: from-file
timeout: 2m
expr:
  reject-empty: true
`)

	cfg, err := cfgm.Load(defaultTestConfig(), cfgm.WithConfigPaths(path))
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Name)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.True(t, cfg.Expr.RejectEmpty)
	assert.Equal(t, "${{", cfg.Expr.Prefix, "nested defaults survive a partial file")
}

func TestLoad_FirstExistingFileWins(t *testing.T) {
	first := writeFile(t, "a.yaml", "name: first")
	second := writeFile(t, "b.yaml", "name: second")

	cfg, err := cfgm.Load(defaultTestConfig(), cfgm.WithConfigPaths("missing.yaml", first, second))
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Name)
}

func TestLoad_RelativePathUsesBaseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte("name: relative"), 0o600))

	cfg, err := cfgm.Load(defaultTestConfig(), cfgm.WithBaseDir(dir), cfgm.WithConfigPaths("app.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "relative", cfg.Name)
}

func TestLoad_TemplateExpansion(t *testing.T) {
	t.Setenv("CFGM_TEST_NAME", "expanded")
	path := writeFile(t, "config.yaml", `name: "${CFGM_TEST_NAME}-${CFGM_TEST_MISSING:-x}"`)

	cfg, err := cfgm.Load(defaultTestConfig(), cfgm.WithConfigPaths(path))
	require.NoError(t, err)
	assert.Equal(t, "expanded-x", cfg.Name)

	cfg, err = cfgm.Load(defaultTestConfig(), cfgm.WithConfigPaths(path), cfgm.WithoutTemplateExpansion())
	require.NoError(t, err)
	assert.Equal(t, "${CFGM_TEST_NAME}-${CFGM_TEST_MISSING:-x}", cfg.Name)
}

func TestLoad_TemplateExpansionError(t *testing.T) {
	path := writeFile(t, "config.yaml", `name: "${CFGM_TEST_REQUIRED:?must be set}"`)

	_, err := cfgm.Load(defaultTestConfig(), cfgm.WithConfigPaths(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be set")
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "- just\n- a list\n")

	_, err := cfgm.Load(defaultTestConfig(), cfgm.WithConfigPaths(path))
	require.ErrorIs(t, err, cfgm.ErrRootNotObject)
}

func TestLoad_EnvPrefix(t *testing.T) {
	path := writeFile(t, "config.json", `{"name": "from-file"}`)
	t.Setenv("CFGMTEST_NAME", "from-env")
	t.Setenv("CFGMTEST_EXPR_REJECT_EMPTY", "true")
	t.Setenv("CFGMTEST_TIMEOUT", "90s")

	cfg, err := cfgm.Load(defaultTestConfig(), cfgm.WithConfigPaths(path), cfgm.WithEnvPrefix("CFGMTEST_"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Name)
	assert.True(t, cfg.Expr.RejectEmpty)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestLoadCmd_ExplicitFlagsWin(t *testing.T) {
	path := writeFile(t, "config.yaml", "name: from-file\nexpr:\n  prefix: '<%'\n")

	var got *testConfig
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name"},
			&cli.StringFlag{Name: "expr-prefix"},
			&cli.BoolFlag{Name: "expr-reject-empty"},
			&cli.DurationFlag{Name: "timeout"},
			&cli.StringSliceFlag{Name: "tags"},
			&cli.StringMapFlag{Name: "labels"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := cfgm.LoadCmd(cmd, defaultTestConfig(), "", cfgm.WithConfigPaths(path))
			got = cfg

			return err
		},
	}

	err := cmd.Run(context.Background(), []string{
		"test", "--name", "from-flag", "--expr-reject-empty", "--timeout", "3s",
		"--tags", "a", "--tags", "b", "--labels", "k=v",
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "from-flag", got.Name)
	assert.Equal(t, "<%", got.Expr.Prefix, "unset flags do not override the file")
	assert.True(t, got.Expr.RejectEmpty)
	assert.Equal(t, 3*time.Second, got.Timeout)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.Equal(t, map[string]string{"k": "v"}, got.Labels)
}

func TestParseBytesAndDecode(t *testing.T) {
	data, err := cfgm.ParseBytes("suite.yml", []byte("name: x\nexpr:\n  reject-empty: 'true'\n"))
	require.NoError(t, err)

	var cfg testConfig
	require.NoError(t, cfgm.Decode(data, &cfg))
	assert.Equal(t, "x", cfg.Name)
	assert.True(t, cfg.Expr.RejectEmpty)

	empty, err := cfgm.ParseBytes("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFindProjectRoot(t *testing.T) {
	root, err := cfgm.FindProjectRoot(0)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "go.mod"))
}
