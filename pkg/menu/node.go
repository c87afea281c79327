package menu

// Node is a single entry of a menu tree. It is implemented only by *Link,
// *Parent and *Separator.
type Node interface {
	base() *Base
}

// Base holds the fields shared by every kind of node.
type Base struct {
	// Alias identifies the node within its menu tree.
	Alias string

	// Title is the visible text. Separators have none.
	Title string

	// Icon is a font-awesome glyph class, e.g. "fa-user".
	Icon string

	// Class, Style and Directives override the rendered attributes verbatim.
	Class      string
	Style      string
	Directives string

	// Simple selects the nested-list compiler when set on the first root.
	Simple bool
}

func (b *Base) base() *Base { return b }

// Link is a leaf node pointing at a navigable target.
type Link struct {
	Base
	Href string
}

// Parent is a node whose content is an ordered list of child nodes.
type Parent struct {
	Base
	Children []Node

	// href is kept when a link is promoted by appending below it, so the
	// link comes back once its last child is deleted.
	href string
}

// Separator is a visual divider.
type Separator struct {
	Base
}

// Options are the presentation options given when a menu is created.
// They apply to the top-level list element.
type Options struct {
	Class      string `json:"class,omitempty" yaml:"class,omitempty"`
	Style      string `json:"style,omitempty" yaml:"style,omitempty"`
	Directives string `json:"directives,omitempty" yaml:"directives,omitempty"`
}

// AliasOf returns the alias of n, or an empty string for a nil node.
func AliasOf(n Node) string {
	if b := baseOf(n); b != nil {
		return b.Alias
	}
	return ""
}

// baseOf returns the common fields of n, tolerating nil interfaces and
// nil typed pointers.
func baseOf(n Node) *Base {
	switch v := n.(type) {
	case *Link:
		if v == nil {
			return nil
		}
	case *Parent:
		if v == nil {
			return nil
		}
	case *Separator:
		if v == nil {
			return nil
		}
	default:
		return nil
	}
	return n.base()
}
