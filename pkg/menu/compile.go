package menu

import (
	"fmt"
	"strings"
)

// Strategy names a markup compiler.
type Strategy string

const (
	// StrategyDropdown renders Bootstrap navbar dropdowns.
	StrategyDropdown Strategy = "dropdown"

	// StrategySimple renders plain nested lists.
	StrategySimple Strategy = "simple"
)

// Default classes used when a node does not override them.
const (
	classDropdown = "dropdown"
	classSubmenu  = "dropdown-submenu"
	classDivider  = "divider"
)

const iconStyle = "width:24px;text-align:center;"

// InvalidNodeError is the panic value raised when a node that validation
// would have rejected reaches the compiler, e.g. after a caller edited the
// forest returned by GetMenuRaw.
type InvalidNodeError struct {
	Alias  string
	Reason string
}

func (e *InvalidNodeError) Error() string {
	return fmt.Sprintf("menu: invalid node %q reached the compiler: %s", e.Alias, e.Reason)
}

// StrategyOf selects the compiler for a forest from its first root.
func StrategyOf(roots []Node) Strategy {
	if len(roots) > 0 {
		if b := baseOf(roots[0]); b != nil && b.Simple {
			return StrategySimple
		}
	}
	return StrategyDropdown
}

// Compile renders a forest into markup. No field is escaped: titles, hrefs,
// icons and attribute overrides are emitted exactly as stored.
//
// Compile panics with *InvalidNodeError if the forest holds a node that
// is not a well-formed link, parent or separator.
func Compile(roots []Node, opts Options) string {
	var sb strings.Builder
	switch StrategyOf(roots) {
	case StrategySimple:
		sb.WriteString("<ul")
		writeAttrs(&sb, opts.Class, opts.Style, opts.Directives)
		sb.WriteString(">")
		compileSimple(&sb, roots)
	default:
		sb.WriteString(`<ul class="nav navbar-nav navbar-left `)
		sb.WriteString(opts.Class)
		sb.WriteString(`"`)
		writeAttrs(&sb, "", opts.Style, opts.Directives)
		sb.WriteString(">")
		compileDropdown(&sb, roots, 0)
	}
	sb.WriteString("</ul>")
	return sb.String()
}

func compileDropdown(sb *strings.Builder, nodes []Node, depth int) {
	for _, n := range nodes {
		switch v := checked(n).(type) {
		case *Link:
			writeLink(sb, v)
		case *Separator:
			writeSeparator(sb, v)
		case *Parent:
			if depth == 0 {
				sb.WriteString(`<li class="`)
				sb.WriteString(or(v.Class, classDropdown))
				sb.WriteString(`"`)
				writeAttrs(sb, "", v.Style, v.Directives)
				sb.WriteString(`><a href="#" class="dropdown-toggle" data-toggle="dropdown" role="button" aria-haspopup="true" aria-expanded="false">`)
				writeIcon(sb, v.Icon)
				sb.WriteString(v.Title)
				sb.WriteString(` <span class="caret"></span></a>`)
			} else {
				sb.WriteString(`<li class="`)
				sb.WriteString(or(v.Class, classSubmenu))
				sb.WriteString(`"`)
				writeAttrs(sb, "", v.Style, v.Directives)
				sb.WriteString(`><a href="#">`)
				writeIcon(sb, v.Icon)
				sb.WriteString(v.Title)
				sb.WriteString(`</a>`)
			}
			sb.WriteString(`<ul class="dropdown-menu">`)
			compileDropdown(sb, v.Children, depth+1)
			sb.WriteString(`</ul></li>`)
		}
	}
}

func compileSimple(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch v := checked(n).(type) {
		case *Link:
			writeLink(sb, v)
		case *Separator:
			writeSeparator(sb, v)
		case *Parent:
			sb.WriteString("<li")
			writeAttrs(sb, v.Class, v.Style, v.Directives)
			sb.WriteString(">")
			writeIcon(sb, v.Icon)
			sb.WriteString(v.Title)
			sb.WriteString("<ul>")
			compileSimple(sb, v.Children)
			sb.WriteString("</ul></li>")
		}
	}
}

// checked returns n if it can be rendered and panics otherwise.
func checked(n Node) Node {
	b := baseOf(n)
	if b == nil {
		panic(&InvalidNodeError{Reason: fmt.Sprintf("unrenderable node %T", n)})
	}
	if l, ok := n.(*Link); ok && l.Href == "" {
		panic(&InvalidNodeError{Alias: b.Alias, Reason: "link without href"})
	}
	return n
}

func writeLink(sb *strings.Builder, l *Link) {
	sb.WriteString("<li")
	writeAttrs(sb, l.Class, l.Style, l.Directives)
	sb.WriteString(`><a href="`)
	sb.WriteString(l.Href)
	sb.WriteString(`">`)
	writeIcon(sb, l.Icon)
	sb.WriteString(l.Title)
	sb.WriteString("</a></li>")
}

func writeSeparator(sb *strings.Builder, s *Separator) {
	sb.WriteString(`<li class="`)
	sb.WriteString(or(s.Class, classDivider))
	sb.WriteString(`" role="separator"`)
	writeAttrs(sb, "", s.Style, s.Directives)
	sb.WriteString("></li>")
}

func writeIcon(sb *strings.Builder, icon string) {
	if icon == "" {
		return
	}
	sb.WriteString(`<i class="fa `)
	sb.WriteString(icon)
	sb.WriteString(`" style="` + iconStyle + `"></i> `)
}

// writeAttrs appends the class and style attributes when set, followed by
// the raw directives.
func writeAttrs(sb *strings.Builder, class, style, directives string) {
	if class != "" {
		sb.WriteString(` class="`)
		sb.WriteString(class)
		sb.WriteString(`"`)
	}
	if style != "" {
		sb.WriteString(` style="`)
		sb.WriteString(style)
		sb.WriteString(`"`)
	}
	if directives != "" {
		sb.WriteString(" ")
		sb.WriteString(directives)
	}
}

func or(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
