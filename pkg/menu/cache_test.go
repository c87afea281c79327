package menu

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := NewCache(prometheus.NewRegistry())

	_, ok := c.Get("main")
	assert.False(t, ok)

	c.Put("Main", "<ul></ul>")
	got, ok := c.Get("MAIN")
	assert.True(t, ok)
	assert.Equal(t, "<ul></ul>", got)
	assert.True(t, c.Has("main"))

	assert.Equal(t, 1.0, c.lookups.Value(cacheHit))
	assert.Equal(t, 1.0, c.lookups.Value(cacheMiss))

	c.Put("docs", "<ul></ul>")
	c.Invalidate("main")
	assert.False(t, c.Has("main"))
	assert.Equal(t, 1, c.Len())

	c.Put("main", "<ul></ul>")
	c.Invalidate("")
	assert.Equal(t, 0, c.Len())
}

func TestStore(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Has("main"))
	assert.Nil(t, s.Get("main"))

	roots := Build(exampleMenu())
	s.Put("Main", roots, Options{Class: "x"})
	s.Put("docs", nil, Options{})

	e := s.Get("MAIN")
	if assert.NotNil(t, e) {
		assert.Equal(t, roots, e.Roots)
		assert.Equal(t, "x", e.Options.Class)
	}
	assert.Equal(t, []string{"docs", "main"}, s.Names())

	assert.True(t, s.Delete("main"))
	assert.False(t, s.Delete("main"))
	assert.Equal(t, []string{"docs"}, s.Names())
}

func TestSharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := New(WithRegistry(reg))
	b := New(WithRegistry(reg))

	a.CreateMenu("m", exampleMenu(), Options{})
	b.CreateMenu("m", exampleMenu(), Options{})

	assert.Equal(t, 2.0, a.mutations.Value("create", resultOK))
}
