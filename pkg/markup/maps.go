package markup

import "strconv"

// ElementMap is the structured, serializable form of an element:
//
//	{"name": "h1", "value": "Ayosh", "attrs": {"id": "id1"}, "children": []}
//
// Value is nil when the element has no text. Text never appears among
// Children.
type ElementMap struct {
	Name     string       `json:"name" yaml:"name"`
	Value    *string      `json:"value" yaml:"value"`
	Attrs    Attrs        `json:"attrs" yaml:"attrs"`
	Children []ElementMap `json:"children" yaml:"children"`
}

// ToMap converts the element and its descendants to an ElementMap. An
// unknown id yields the zero ElementMap.
func (a *Arena) ToMap(id NodeID) ElementMap {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.get(id) == nil {
		return ElementMap{}
	}
	return a.toMap(id)
}

func (a *Arena) toMap(id NodeID) ElementMap {
	n := a.nodes[id]
	m := ElementMap{
		Name:     n.tag,
		Attrs:    n.attrs.Clone(),
		Children: make([]ElementMap, 0, len(n.children)),
	}
	if m.Attrs == nil {
		m.Attrs = Attrs{}
	}
	if n.hasText {
		text := n.text
		m.Value = &text
	}
	for _, c := range n.children {
		m.Children = append(m.Children, a.toMap(c))
	}
	return m
}

// FromMap builds a new standalone tree from m. Every child goes through
// the normal append path, so identifiers are validated exactly as in a
// fresh build. On error nothing is allocated and the error's path names
// the offending element.
func (a *Arena) FromMap(m ElementMap) (NodeID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	mark := len(a.nodes)
	id, err := a.fromMap(m, "")
	if err != nil {
		a.release(mark)
		id = NoNode
	}
	a.emit(OpFromMap, id, err)
	return id, err
}

func (a *Arena) fromMap(m ElementMap, path string) (NodeID, error) {
	if m.Name == "" {
		return NoNode, malformedMap("element has no name").WithPath(path)
	}

	content := Empty()
	if m.Value != nil {
		content = Text(*m.Value)
	}
	id, err := a.newLocked(m.Name, content, m.Attrs)
	if err != nil {
		return NoNode, withPath(err, path)
	}

	for i, cm := range m.Children {
		cpath := childPath(path, i)
		cid, err := a.fromMap(cm, cpath)
		if err != nil {
			return NoNode, err
		}
		if err := a.appendLocked(id, Child(cid)); err != nil {
			return NoNode, withPath(err, cpath)
		}
	}
	return id, nil
}

func childPath(parent string, i int) string {
	p := "children[" + strconv.Itoa(i) + "]"
	if parent == "" {
		return p
	}
	return parent + "." + p
}
