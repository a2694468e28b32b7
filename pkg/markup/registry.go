package markup

import (
	"slices"
	"sort"
)

// rootOf climbs parent links to the top of id's tree.
func (a *Arena) rootOf(id NodeID) NodeID {
	for {
		p := a.nodes[id].parent
		if p == NoNode {
			return id
		}
		id = p
	}
}

// isAncestorOrSelf reports whether anc is id or one of its ancestors.
func (a *Arena) isAncestorOrSelf(anc, id NodeID) bool {
	for id != NoNode {
		if id == anc {
			return true
		}
		id = a.nodes[id].parent
	}
	return false
}

// walk visits id and its descendants in pre-order until fn returns false.
// It reports whether the walk ran to completion.
func (a *Arena) walk(id NodeID, fn func(NodeID) bool) bool {
	if !fn(id) {
		return false
	}
	for _, c := range a.nodes[id].children {
		if !a.walk(c, fn) {
			return false
		}
	}
	return true
}

// collectIdentifiers records every id attribute in id's subtree.
func (a *Arena) collectIdentifiers(id NodeID, into map[string]NodeID) {
	a.walk(id, func(n NodeID) bool {
		if v, ok := a.nodes[n].attrs.Get(IDKey); ok {
			into[v] = n
		}
		return true
	})
}

// attach links child, which must be a root, under parent and merges the
// child's registry into the destination tree's.
func (a *Arena) attach(parent, child NodeID) {
	reg := a.trees[a.rootOf(parent)]
	for ident, owner := range a.trees[child] {
		reg[ident] = owner
	}
	delete(a.trees, child)

	a.nodes[child].parent = parent
	p := a.nodes[parent]
	p.children = append(p.children, child)
}

// detach unlinks child from its parent and moves the subtree's identifiers
// into a registry of its own.
func (a *Arena) detach(child NodeID) {
	n := a.nodes[child]
	parent := n.parent
	if parent == NoNode {
		return
	}

	reg := a.trees[a.rootOf(parent)]
	own := make(map[string]NodeID)
	a.collectIdentifiers(child, own)
	for ident := range own {
		delete(reg, ident)
	}
	a.trees[child] = own

	p := a.nodes[parent]
	if i := slices.Index(p.children, child); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = NoNode
}

// IdentifierInUse reports whether ident is the id of any node in the tree
// containing at. Unlike the registration done by Append, it has no side
// effects.
func (a *Arena) IdentifierInUse(at NodeID, ident string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.get(at) == nil {
		return false
	}
	_, ok := a.trees[a.rootOf(at)][ident]
	return ok
}

// FindByID returns the node carrying ident in the tree containing at.
func (a *Arena) FindByID(at NodeID, ident string) (NodeID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.get(at) == nil {
		return NoNode, false
	}
	owner, ok := a.trees[a.rootOf(at)][ident]
	if !ok {
		return NoNode, false
	}
	return owner, true
}

// Identifiers returns, in sorted order, the id of the node and of every
// node below it.
func (a *Arena) Identifiers(id NodeID) []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.get(id) == nil {
		return nil
	}

	var idents []string
	if a.nodes[id].parent == NoNode {
		for ident := range a.trees[id] {
			idents = append(idents, ident)
		}
	} else {
		set := make(map[string]NodeID)
		a.collectIdentifiers(id, set)
		for ident := range set {
			idents = append(idents, ident)
		}
	}
	sort.Strings(idents)
	return idents
}
