package basic

import (
	enc "github.com/ndnkit/ndnkit/std/encoding"
)

// NameTrie is a hash-keyed trie over Name, used as the backing structure for
// the FIB, PIT, and interest-filter tables. Each level holds the children of
// one name component, keyed by the component's hash so that descending one
// level is an O(1) map lookup rather than a scan.
type NameTrie[V any] struct {
	parent   *NameTrie[V]
	children map[uint64]*NameTrie[V]
	comp     enc.Component
	depth    int
	value    V
	hasValue bool
}

// NewNameTrie constructs an empty root node.
func NewNameTrie[V any]() *NameTrie[V] {
	return &NameTrie[V]{}
}

// Parent returns the node one component shorter than n, or nil at the root.
func (n *NameTrie[V]) Parent() *NameTrie[V] {
	return n.parent
}

// Depth returns the number of name components from the root to n.
func (n *NameTrie[V]) Depth() int {
	return n.depth
}

// Value returns the value stored at n, or the zero value if unset.
func (n *NameTrie[V]) Value() V {
	return n.value
}

// SetValue stores v at n.
func (n *NameTrie[V]) SetValue(v V) {
	n.value = v
	n.hasValue = true
}

// HasValue reports whether n has had SetValue called on it.
func (n *NameTrie[V]) HasValue() bool {
	return n.hasValue
}

// ExactMatch returns the node exactly at name, or nil if no such node has
// ever been created.
func (n *NameTrie[V]) ExactMatch(name enc.Name) *NameTrie[V] {
	cur := n
	for _, c := range name {
		if cur.children == nil {
			return nil
		}
		next, ok := cur.children[c.Hash()]
		if !ok || !next.comp.Equal(c) {
			return nil
		}
		cur = next
	}
	return cur
}

// PrefixMatch returns the deepest existing node along name, which may be
// shorter than name itself (the caller walks Parent() to find a set value).
func (n *NameTrie[V]) PrefixMatch(name enc.Name) *NameTrie[V] {
	cur := n
	for _, c := range name {
		if cur.children == nil {
			return cur
		}
		next, ok := cur.children[c.Hash()]
		if !ok || !next.comp.Equal(c) {
			return cur
		}
		cur = next
	}
	return cur
}

// MatchAlways returns the node at name, creating any missing intermediate
// nodes along the way.
func (n *NameTrie[V]) MatchAlways(name enc.Name) *NameTrie[V] {
	cur := n
	for _, c := range name {
		if cur.children == nil {
			cur.children = make(map[uint64]*NameTrie[V])
		}
		h := c.Hash()
		next, ok := cur.children[h]
		if !ok || !next.comp.Equal(c) {
			next = &NameTrie[V]{
				parent: cur,
				comp:   c.Clone(),
				depth:  cur.depth + 1,
			}
			cur.children[h] = next
		}
		cur = next
	}
	return cur
}

// Prune removes n, and any now-childless ancestors, from the trie, provided
// they hold no value.
func (n *NameTrie[V]) Prune() {
	n.PruneIf(func(V) bool { return true })
}

// PruneIf removes n if it has no children and pred(n.Value()) is true,
// then recursively applies the same check to its parent.
func (n *NameTrie[V]) PruneIf(pred func(V) bool) {
	cur := n
	for cur != nil && cur.parent != nil {
		if len(cur.children) > 0 {
			return
		}
		if cur.hasValue && !pred(cur.value) {
			return
		}
		parent := cur.parent
		delete(parent.children, cur.comp.Hash())
		cur.hasValue = false
		var zero V
		cur.value = zero
		cur = parent
	}
}
