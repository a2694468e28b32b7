package markup

// Walk visits root and its descendants in pre-order. Returning false from
// fn stops the walk. The visit order is fixed before fn is first called,
// so fn may query the arena.
func (a *Arena) Walk(root NodeID, fn func(NodeID) bool) {
	for _, id := range a.findAll(root, func(*node) bool { return true }) {
		if !fn(id) {
			return
		}
	}
}

// FindByTag returns every element under root (inclusive) named tag, in
// document order.
func (a *Arena) FindByTag(root NodeID, tag string) []NodeID {
	return a.findAll(root, func(n *node) bool {
		return n.tag == tag
	})
}

// FindByAttr returns every element under root (inclusive) whose attribute
// key equals value, in document order.
func (a *Arena) FindByAttr(root NodeID, key, value string) []NodeID {
	return a.findAll(root, func(n *node) bool {
		v, ok := n.attrs.Get(key)
		return ok && v == value
	})
}

func (a *Arena) findAll(root NodeID, match func(*node) bool) []NodeID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.get(root) == nil {
		return nil
	}

	var result []NodeID
	a.walk(root, func(id NodeID) bool {
		if match(a.nodes[id]) {
			result = append(result, id)
		}
		return true
	})
	return result
}
