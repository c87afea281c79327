package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/navd/pkg/config"
	"github.com/mchmarny/navd/pkg/menu"
)

const validMenus = `
menus:
  - name: main
    items:
      - alias: home
        title: Home
        href: /
      - alias: more
        title: More
        children:
          - alias: about
            title: About
            href: /about
`

const invalidMenus = `
menus:
  - name: good
    items:
      - alias: home
        title: Home
        href: /
  - name: bad
    items:
      - alias: orphan
        title: Orphan
`

// execute runs the CLI with an empty config file and returns the exit code
// with everything written to stdout and stderr.
func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := filepath.Join(t.TempDir(), "navd.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: error\n"), 0o600))

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	code := run(root, append(args, "--config", cfg))
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "version")
	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, "navd dev (commit none, built unknown)\n", out)
}

func TestValidate(t *testing.T) {
	path := writeFile(t, "menus.yaml", validMenus)

	code, out, _ := execute(t, "validate", path)
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "main (3 items)")
}

func TestValidateInvalid(t *testing.T) {
	path := writeFile(t, "menus.yaml", invalidMenus)

	code, out, errOut := execute(t, "validate", path)
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, out, "good (1 items)")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "FAIL")
	assert.Contains(t, lines[1], "bad")
	assert.Contains(t, errOut, ErrInvalidDefinitions.Error())
}

func TestValidateMissingFile(t *testing.T) {
	code, _, errOut := execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, "error:")
}

func TestRender(t *testing.T) {
	path := writeFile(t, "menus.yaml", validMenus)

	code, out, _ := execute(t, "render", path, "MAIN")
	require.Equal(t, exitSuccess, code)
	assert.True(t, strings.HasPrefix(out, `<ul class="nav navbar-nav navbar-left ">`))
	assert.Contains(t, out, `<a href="/about">About</a>`)

	code, _, errOut := execute(t, "render", path, "other")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, `menu "other" not found`)
}

func TestRenderRejectedDefinitions(t *testing.T) {
	path := writeFile(t, "menus.yaml", invalidMenus)

	code, _, errOut := execute(t, "render", path, "good")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, menu.ErrMenuRejected.Error())
}

func TestMissingConfigFile(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	code := run(root, []string{"validate", "x.yaml", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Equal(t, exitUserError, code)
}

func TestBoot(t *testing.T) {
	cfg := &config.Config{
		Menus: config.MenusConfig{Files: []string{writeFile(t, "menus.yaml", validMenus)}},
	}

	nav, err := boot(t.Context(), cfg, prometheus.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, nav.Names())
	assert.NotEmpty(t, nav.GetMenu("main"))

	cfg.Menus.Files = append(cfg.Menus.Files, writeFile(t, "broken.yaml", invalidMenus))
	_, err = boot(t.Context(), cfg, prometheus.NewRegistry())
	assert.ErrorIs(t, err, menu.ErrMenuRejected)
}
