package markup

import (
	"fmt"
	"slices"
	"sort"
)

// maxSuffixDraws bounds how many random clone suffixes are tried before
// falling back to counting upward from the suffix range.
const maxSuffixDraws = 32

// Append adds child to parent.
//
//   - Text replaces parent's content; current children are detached and
//     keep their own identifiers.
//   - A node must be a root. Every identifier in its subtree is checked
//     against the destination tree before it is attached.
//   - A list is applied item by item, in order, as one unit.
//
// On any error the arena is left exactly as it was.
func (a *Arena) Append(parent NodeID, child Value) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.appendLocked(parent, child)
	a.emit(OpAppend, parent, err)
	return err
}

// AppendText replaces parent's content with text.
func (a *Arena) AppendText(parent NodeID, text string) error {
	return a.Append(parent, Text(text))
}

// AppendChild attaches child under parent.
func (a *Arena) AppendChild(parent, child NodeID) error {
	return a.Append(parent, Child(child))
}

func (a *Arena) appendLocked(parent NodeID, child Value) error {
	if a.get(parent) == nil {
		return invalidArgument("parent node %d does not exist", parent)
	}

	s := &stage{
		a:       a,
		parent:  parent,
		reg:     a.trees[a.rootOf(parent)],
		claimed: make(map[string]struct{}),
	}
	if err := s.add(child); err != nil {
		return err
	}
	s.commit()
	return nil
}

// stage collects the whole effect of one Append call so it can be
// validated before anything is mutated.
type stage struct {
	a      *Arena
	parent NodeID
	reg    map[string]NodeID

	setText bool
	text    string

	// freed holds identifiers under parent's current children. A text
	// replace detaches those children, so their identifiers become free.
	freed map[string]NodeID

	attach  []NodeID
	claimed map[string]struct{}
}

func (s *stage) add(v Value) error {
	switch v.kind {
	case ValueEmpty:
		return nil
	case ValueText:
		if s.freed == nil {
			s.freed = make(map[string]NodeID)
			for _, c := range s.a.nodes[s.parent].children {
				s.a.collectIdentifiers(c, s.freed)
			}
		}
		s.setText = true
		s.text = v.text
		s.attach = s.attach[:0]
		s.claimed = make(map[string]struct{})
		return nil
	case ValueList:
		for _, item := range v.list {
			if err := s.add(item); err != nil {
				return err
			}
		}
		return nil
	case ValueNode:
		return s.addNode(v.node)
	default:
		return invalidArgument("unknown value kind %d", v.kind)
	}
}

func (s *stage) addNode(child NodeID) error {
	n := s.a.get(child)
	if n == nil {
		return invalidArgument("node %d does not exist", child)
	}
	if n.parent != NoNode {
		return invalidArgument("node %d is already attached to node %d; remove it first", child, n.parent)
	}
	if s.a.isAncestorOrSelf(child, s.parent) {
		return invalidArgument("node %d cannot be appended inside its own tree", child)
	}
	if slices.Contains(s.attach, child) {
		return invalidArgument("node %d is appended twice in one call", child)
	}

	idents := sortedIdentifiers(s.a.trees[child])
	for _, ident := range idents {
		if _, ok := s.claimed[ident]; ok {
			return duplicateIdentifier(ident)
		}
		if _, ok := s.reg[ident]; ok {
			if _, released := s.freed[ident]; !released {
				return duplicateIdentifier(ident)
			}
		}
	}

	for _, ident := range idents {
		s.claimed[ident] = struct{}{}
	}
	s.attach = append(s.attach, child)
	return nil
}

func (s *stage) commit() {
	p := s.a.nodes[s.parent]
	if s.setText {
		for _, c := range slices.Clone(p.children) {
			s.a.detach(c)
		}
		p.text = s.text
		p.hasText = true
	}
	for _, c := range s.attach {
		s.a.attach(s.parent, c)
	}
}

func sortedIdentifiers(reg map[string]NodeID) []string {
	idents := make([]string, 0, len(reg))
	for ident := range reg {
		idents = append(idents, ident)
	}
	sort.Strings(idents)
	return idents
}

// Remove detaches subtree from the tree under root. It reports false when
// subtree is not a descendant of root. The detached subtree keeps its
// identifiers and can be appended again elsewhere.
func (a *Arena) Remove(root, subtree NodeID) (NodeID, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.get(root) == nil || a.get(subtree) == nil || root == subtree || !a.isAncestorOrSelf(root, subtree) {
		a.emit(OpRemove, subtree, ErrNotFound)
		return NoNode, false
	}

	a.detach(subtree)
	a.emit(OpRemove, subtree, nil)
	return subtree, true
}

// Clone returns a standalone deep copy of source whose identifiers are
// fresh: each rewritten value gets a "_clone<N>" suffix chosen so it is
// not used in source's tree, in context's tree (when context is not
// NoNode), or elsewhere in the clone. The arena's ClonePolicy decides
// whether other attributes are rewritten too.
func (a *Arena) Clone(context, source NodeID) (NodeID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.cloneLocked(context, source)
	a.emit(OpClone, id, err)
	return id, err
}

func (a *Arena) cloneLocked(context, source NodeID) (NodeID, error) {
	if a.get(source) == nil {
		return NoNode, invalidArgument("clone source %d does not exist", source)
	}
	if context != NoNode && a.get(context) == nil {
		return NoNode, invalidArgument("clone context %d does not exist", context)
	}

	taken := make(map[string]struct{})
	for ident := range a.trees[a.rootOf(source)] {
		taken[ident] = struct{}{}
	}
	if context != NoNode {
		for ident := range a.trees[a.rootOf(context)] {
			taken[ident] = struct{}{}
		}
	}

	return a.cloneNode(source, taken), nil
}

func (a *Arena) cloneNode(src NodeID, taken map[string]struct{}) NodeID {
	s := a.nodes[src]
	suffix := a.cloneSuffix(s.attrs, taken)

	attrs := make(Attrs, 0, len(s.attrs))
	for _, at := range s.attrs {
		if at.Key == IDKey || a.clonePolicy == CloneAll {
			at.Value += suffix
		}
		attrs = append(attrs, at)
	}

	id := a.alloc(s.tag, attrs)
	n := a.nodes[id]
	n.text = s.text
	n.hasText = s.hasText

	for _, c := range s.children {
		a.attach(id, a.cloneNode(c, taken))
	}
	return id
}

// cloneSuffix picks a suffix that makes the node's id unused and claims
// the resulting identifier in taken.
func (a *Arena) cloneSuffix(attrs Attrs, taken map[string]struct{}) string {
	ident, hasID := attrs.Get(IDKey)

	for i := 0; i < maxSuffixDraws; i++ {
		suffix := fmt.Sprintf("_clone%d", a.intn(a.suffixMax)+1)
		if !hasID {
			return suffix
		}
		if _, used := taken[ident+suffix]; !used {
			taken[ident+suffix] = struct{}{}
			return suffix
		}
	}

	for n := a.suffixMax + 1; ; n++ {
		suffix := fmt.Sprintf("_clone%d", n)
		if _, used := taken[ident+suffix]; !used {
			taken[ident+suffix] = struct{}{}
			return suffix
		}
	}
}
