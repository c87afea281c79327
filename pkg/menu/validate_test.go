package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidItem(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want bool
	}{
		{
			name: "link with empty children",
			item: Item{Alias: "test", Href: "http://www.google.com/", Icon: "fa-user", Title: "Test", Children: []Item{}},
			want: true,
		},
		{
			name: "link without children",
			item: Item{Alias: "test", Href: "/test", Title: "Test"},
			want: true,
		},
		{
			name: "separator",
			item: Item{Alias: "test", Separator: true},
			want: true,
		},
		{
			name: "separator with title",
			item: Item{Alias: "test", Title: "Ignored", Separator: true},
			want: true,
		},
		{
			name: "parent",
			item: Item{Alias: "p", Title: "P", Children: []Item{{Alias: "c", Href: "/c", Title: "C"}}},
			want: true,
		},
		{
			name: "empty alias",
			item: Item{Alias: "", Href: "http://www.google.com", Icon: "fa-users", Title: "Test", Children: []Item{}},
		},
		{
			name: "empty href and title",
			item: Item{Alias: "test", Href: "", Icon: "fa-users", Title: "", Children: []Item{}},
		},
		{
			name: "no title",
			item: Item{Alias: "test", Href: "/test"},
		},
		{
			name: "neither href nor children",
			item: Item{Alias: "test", Title: "Test"},
		},
		{
			name: "parent with empty children",
			item: Item{Alias: "test", Title: "Test", Children: []Item{}},
		},
		{
			name: "href and children",
			item: Item{Alias: "test", Href: "/test", Title: "Test", Children: []Item{{Alias: "c", Href: "/c", Title: "C"}}},
		},
		{
			name: "separator with href",
			item: Item{Alias: "test", Separator: true, Href: "http://www.google.com/"},
		},
		{
			name: "separator with empty children",
			item: Item{Alias: "test", Separator: true, Children: []Item{}},
		},
		{
			name: "separator with children",
			item: Item{Alias: "test", Separator: true, Children: []Item{{Alias: "c", Href: "/c", Title: "C"}}},
		},
		{
			name: "invalid parent and child",
			item: Item{Alias: "", Title: "P", Children: []Item{{Alias: "c", Title: "C"}}},
		},
		{
			name: "valid parent with invalid child",
			item: Item{Alias: "p", Title: "P", Children: []Item{{Alias: "c", Title: "C"}}},
		},
		{
			name: "invalid grandchild",
			item: Item{Alias: "p", Title: "P", Children: []Item{
				{Alias: "q", Title: "Q", Children: []Item{{Alias: "", Href: "/x", Title: "X"}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidItem(tt.item))
		})
	}
}

func TestValidForest(t *testing.T) {
	assert.True(t, ValidForest(exampleMenu()))
	assert.True(t, ValidForest(nil))
	assert.True(t, ValidForest([]Item{{Alias: "test", Separator: true}}))

	broken := append(exampleMenu(), Item{Alias: "bad", Title: "Bad"})
	assert.False(t, ValidForest(broken))

	// A failing root does not hide later ones.
	assert.False(t, ValidForest([]Item{{Alias: "bad", Title: "Bad"}, {Alias: "ok", Href: "/ok", Title: "OK"}}))
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindSeparator, Item{Separator: true, Href: "/x"}.Kind())
	assert.Equal(t, KindLink, Item{Href: "/x"}.Kind())
	assert.Equal(t, KindParent, Item{Children: []Item{{}}}.Kind())
	assert.Equal(t, KindInvalid, Item{Children: []Item{}}.Kind())
	assert.Equal(t, "parent", KindParent.String())
	assert.Equal(t, "invalid", KindInvalid.String())
}
