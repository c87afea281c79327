package menu

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `
menus:
  - name: main
    options:
      class: main-nav
    items:
      - alias: account
        title: Account
        icon: fa-gear
        children:
          - alias: profile
            title: Profile
            href: /account/profile
          - alias: sep
            separator: true
      - alias: logout
        title: Logout
        href: /logout
  - name: broken
    items:
      - alias: nothing
        title: Nothing
`

func TestReadDefinitions(t *testing.T) {
	defs, err := ReadDefinitions(strings.NewReader(testDocument))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	want := Definition{
		Name:    "main",
		Options: Options{Class: "main-nav"},
		Items: []Item{
			{Alias: "account", Title: "Account", Icon: "fa-gear", Children: []Item{
				{Alias: "profile", Title: "Profile", Href: "/account/profile"},
				{Alias: "sep", Separator: true},
			}},
			{Alias: "logout", Title: "Logout", Href: "/logout"},
		},
	}
	if diff := cmp.Diff(want, defs[0]); diff != "" {
		t.Errorf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestReadDefinitionsJSON(t *testing.T) {
	doc := `{"menus": [{"name": "m", "items": [{"alias": "a", "title": "A", "href": "/a", "children": []}]}]}`

	defs, err := ReadDefinitions(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "m", defs[0].Name)
	assert.True(t, ValidForest(defs[0].Items))
}

func TestReadDefinitionsMalformed(t *testing.T) {
	_, err := ReadDefinitions(strings.NewReader("menus:\n  - name: [unterminated\n"))
	assert.Error(t, err)

	_, err = ReadDefinitions(strings.NewReader("menus:\n  - name: m\n    items:\n      - alias: a\n        children: nope\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDocument), 0o600))

	defs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, defs, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	defs, err := ReadDefinitions(strings.NewReader(testDocument))
	require.NoError(t, err)

	s := New()
	err = s.Apply(defs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMenuRejected))
	assert.Contains(t, err.Error(), `"broken"`)

	assert.Contains(t, s.GetMenu("main"), `class="nav navbar-nav navbar-left main-nav"`)
	assert.Empty(t, s.GetMenu("broken"))

	// Applying the same definitions again rejects the existing name too.
	err = s.Apply(defs[:1])
	assert.ErrorIs(t, err, ErrMenuRejected)
}

func TestApplyExampleFile(t *testing.T) {
	defs, err := LoadFile(filepath.Join("..", "..", "examples", "menus.yaml"))
	require.NoError(t, err)

	s := New()
	require.NoError(t, s.Apply(defs))
	assert.Equal(t, []string{"docs", "main"}, s.Names())
	assert.NotEmpty(t, s.GetMenu("main"))
	assert.True(t, strings.HasPrefix(s.GetMenu("docs"), `<ul class="docs-list">`))
}
