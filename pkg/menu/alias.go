package menu

import "slices"

// Aliases returns the aliases of the given nodes and all their descendants
// in pre-order.
func Aliases(nodes ...Node) []string {
	var list []string
	walk(nodes, func(n Node) {
		list = append(list, AliasOf(n))
	})
	return list
}

// ItemAliases returns the aliases of the given items and all their
// descendants in pre-order.
func ItemAliases(items ...Item) []string {
	var list []string
	for _, it := range items {
		list = append(list, it.Alias)
		list = append(list, ItemAliases(it.Children...)...)
	}
	return list
}

// walk visits every node depth first, parents before their children.
func walk(nodes []Node, visit func(Node)) {
	for _, n := range nodes {
		visit(n)
		if p, ok := n.(*Parent); ok && p != nil {
			walk(p.Children, visit)
		}
	}
}

// intersects reports whether the two alias lists share at least one member.
func intersects(a, b []string) bool {
	for _, s := range a {
		if slices.Contains(b, s) {
			return true
		}
	}
	return false
}

// find returns the first node with the given alias, searching depth first.
func find(nodes []Node, alias string) Node {
	for _, n := range nodes {
		if AliasOf(n) == alias {
			return n
		}
		if p, ok := n.(*Parent); ok && p != nil {
			if found := find(p.Children, alias); found != nil {
				return found
			}
		}
	}
	return nil
}

// findParent returns the parent holding the node with the given alias. A nil
// parent with ok set means the node is a root of the forest.
func findParent(nodes []Node, alias string) (parent *Parent, ok bool) {
	return findParentIn(nodes, alias, nil)
}

func findParentIn(nodes []Node, alias string, holder *Parent) (*Parent, bool) {
	for _, n := range nodes {
		if AliasOf(n) == alias {
			return holder, true
		}
		if p, ok := n.(*Parent); ok && p != nil {
			if found, ok := findParentIn(p.Children, alias, p); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// replace swaps old for n wherever old is referenced in the tree.
func replace(nodes []Node, old, n Node) bool {
	for i, c := range nodes {
		if c == old {
			nodes[i] = n
			return true
		}
		if p, ok := c.(*Parent); ok && p != nil {
			if replace(p.Children, old, n) {
				return true
			}
		}
	}
	return false
}
