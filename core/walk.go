package core

// WalkFunc is called for each block in document order.
// Returning an error stops the walk and is returned from Walk.
type WalkFunc func(index int, b Block) error

// Walk visits the blocks of doc in order.
func Walk(doc *Document, visit WalkFunc) error {
	if doc == nil {
		return nil
	}
	for i, b := range doc.Blocks {
		if err := visit(i, b); err != nil {
			return err
		}
	}
	return nil
}

// InlineFunc is called for each inline, parents before children.
// Returning false skips the children of that inline.
type InlineFunc func(in Inline) bool

// WalkInlines visits inlines depth-first.
func WalkInlines(inlines []Inline, visit InlineFunc) {
	for _, in := range inlines {
		if !visit(in) {
			continue
		}
		switch n := in.(type) {
		case *Emphasis:
			WalkInlines(n.Children, visit)
		case *Strong:
			WalkInlines(n.Children, visit)
		case *Link:
			WalkInlines(n.Children, visit)
		}
	}
}

// BlockInlines returns the inline content held directly by b.
// Lists return the inlines of every item, in order. Nil blocks hold none.
func BlockInlines(b Block) []Inline {
	if IsNilBlock(b) {
		return nil
	}
	switch n := b.(type) {
	case *Paragraph:
		return n.Inlines
	case *Heading:
		return n.Inlines
	case *Quote:
		return n.Inlines
	case *List:
		var all []Inline
		for _, item := range n.Items {
			all = append(all, item.Inlines...)
		}
		return all
	}
	return nil
}

// CheckInlines reports the first inline in b that is nil or whose kind is
// not part of the closed variant set.
func CheckInlines(b Block) (Inline, bool) {
	var bad Inline
	found := false
	WalkInlines(BlockInlines(b), func(in Inline) bool {
		if found {
			return false
		}
		if IsNilInline(in) || !in.InlineKind().Valid() {
			bad, found = in, true
			return false
		}
		return true
	})
	return bad, found
}

// IsNilBlock reports whether b is nil or a nil pointer to a block variant.
func IsNilBlock(b Block) bool {
	switch n := b.(type) {
	case nil:
		return true
	case *Paragraph:
		return n == nil
	case *Heading:
		return n == nil
	case *CodeBlock:
		return n == nil
	case *List:
		return n == nil
	case *Quote:
		return n == nil
	case *Rule:
		return n == nil
	}
	return false
}

// IsNilInline reports whether in is nil or a nil pointer to an inline variant.
func IsNilInline(in Inline) bool {
	switch n := in.(type) {
	case nil:
		return true
	case *Text:
		return n == nil
	case *Emphasis:
		return n == nil
	case *Strong:
		return n == nil
	case *Code:
		return n == nil
	case *Link:
		return n == nil
	}
	return false
}
