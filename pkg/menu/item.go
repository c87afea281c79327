package menu

// Kind tells which shape an Item has.
type Kind int

const (
	KindInvalid Kind = iota
	KindLink
	KindParent
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindLink:
		return "link"
	case KindParent:
		return "parent"
	case KindSeparator:
		return "separator"
	default:
		return "invalid"
	}
}

// Item is the serializable form of a menu node, as handed in by plugins or
// read from definition files. Its kind is implied by which fields are set.
type Item struct {
	// Alias is the unique identifier for the item within its menu tree.
	Alias string `json:"alias" yaml:"alias"`

	// Title is the visible text of the item.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Href makes the item a link.
	Href string `json:"href,omitempty" yaml:"href,omitempty"`

	Icon       string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Class      string `json:"class,omitempty" yaml:"class,omitempty"`
	Style      string `json:"style,omitempty" yaml:"style,omitempty"`
	Directives string `json:"directives,omitempty" yaml:"directives,omitempty"`

	// Separator makes the item a divider.
	Separator bool `json:"separator,omitempty" yaml:"separator,omitempty"`

	// Simple selects the nested-list compiler for the whole menu when set
	// on its first root.
	Simple bool `json:"simple,omitempty" yaml:"simple,omitempty"`

	// Children are the sub-items of this item. A nil slice means the field
	// was absent; an empty one means it was given but empty.
	Children []Item `json:"children,omitempty" yaml:"children,omitempty"`
}

// Kind reports the shape the item claims by field presence. It does not
// validate the item.
func (it Item) Kind() Kind {
	switch {
	case it.Separator:
		return KindSeparator
	case it.Href != "":
		return KindLink
	case len(it.Children) > 0:
		return KindParent
	default:
		return KindInvalid
	}
}

func (it Item) header() Base {
	return Base{
		Alias:      it.Alias,
		Title:      it.Title,
		Icon:       it.Icon,
		Class:      it.Class,
		Style:      it.Style,
		Directives: it.Directives,
		Simple:     it.Simple,
	}
}

// Build converts validated items into nodes. Items must have passed
// ValidForest; an item of no recognizable kind yields a nil node.
func Build(items []Item) []Node {
	nodes := make([]Node, 0, len(items))
	for _, it := range items {
		nodes = append(nodes, buildItem(it))
	}
	return nodes
}

func buildItem(it Item) Node {
	switch it.Kind() {
	case KindSeparator:
		return &Separator{Base: it.header()}
	case KindLink:
		return &Link{Base: it.header(), Href: it.Href}
	case KindParent:
		return &Parent{Base: it.header(), Children: Build(it.Children)}
	default:
		return nil
	}
}

// Flatten converts nodes back into their serializable form.
func Flatten(nodes []Node) []Item {
	items := make([]Item, 0, len(nodes))
	for _, n := range nodes {
		b := baseOf(n)
		if b == nil {
			continue
		}
		it := Item{
			Alias:      b.Alias,
			Title:      b.Title,
			Icon:       b.Icon,
			Class:      b.Class,
			Style:      b.Style,
			Directives: b.Directives,
			Simple:     b.Simple,
		}
		switch v := n.(type) {
		case *Link:
			it.Href = v.Href
		case *Parent:
			it.Children = Flatten(v.Children)
		case *Separator:
			it.Separator = true
		}
		items = append(items, it)
	}
	return items
}
