package menu

// check is a single rule an item must satisfy.
type check func(it Item) bool

// itemChecks are the rules every item is held to on its own. All of them
// run for each item; the item is valid only if none failed. Children are
// checked by ValidItem itself; the list must not refer back to it.
var itemChecks = []check{
	hasAlias,
	hasTitle,
	hasShape,
}

// ValidItem reports whether it, and every item below it, is a well-formed
// link, parent or separator.
func ValidItem(it Item) bool {
	failed := false
	for _, c := range itemChecks {
		if !c(it) {
			failed = true
		}
	}
	if !ValidForest(it.Children) {
		failed = true
	}
	return !failed
}

// ValidForest reports whether every root of the forest is valid. An empty
// forest is valid.
func ValidForest(items []Item) bool {
	failed := false
	for _, it := range items {
		if !ValidItem(it) {
			failed = true
		}
	}
	return !failed
}

func hasAlias(it Item) bool {
	return it.Alias != ""
}

// separators carry no title, everything else must.
func hasTitle(it Item) bool {
	return it.Title != "" || it.Separator
}

func hasShape(it Item) bool {
	switch it.Kind() {
	case KindSeparator:
		return validSeparator(it)
	case KindLink:
		return validLink(it)
	case KindParent:
		return validParent(it)
	default:
		return false
	}
}

func validSeparator(it Item) bool {
	return it.Href == "" && it.Children == nil
}

// links may carry an empty children list.
func validLink(it Item) bool {
	return len(it.Children) == 0
}

func validParent(it Item) bool {
	return it.Href == "" && len(it.Children) > 0
}
