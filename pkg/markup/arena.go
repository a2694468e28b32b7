package markup

import (
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
)

// NodeID addresses a node inside its Arena.
type NodeID int

// NoNode is the absent node, used for "no parent" and failed lookups.
const NoNode NodeID = -1

// node is the element record. Children are owned through their ids; the
// parent id is a plain back-reference.
type node struct {
	tag      string
	attrs    Attrs
	text     string
	hasText  bool
	children []NodeID
	parent   NodeID
}

// ClonePolicy selects which attribute values Clone rewrites.
type ClonePolicy string

const (
	// CloneIDs rewrites only the id attribute and copies the rest verbatim.
	CloneIDs ClonePolicy = "ids"

	// CloneAll rewrites every attribute value.
	CloneAll ClonePolicy = "all"
)

// DefaultSuffixMax is the upper bound of the random clone suffix.
const DefaultSuffixMax = 100

// Option configures an Arena.
type Option func(*Arena)

// WithLogger sets the logger used for debug output.
// If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Arena) {
		a.logger = logger
	}
}

// WithObserver registers an Observer for structural operations.
func WithObserver(o Observer) Option {
	return func(a *Arena) {
		a.observer = o
	}
}

// WithRand sets the random source for clone suffixes.
func WithRand(r *rand.Rand) Option {
	return func(a *Arena) {
		if r != nil {
			a.intn = r.IntN
		}
	}
}

// WithClonePolicy sets which attributes Clone rewrites.
func WithClonePolicy(p ClonePolicy) Option {
	return func(a *Arena) {
		a.clonePolicy = p
	}
}

// WithSuffixMax sets the upper bound of the random clone suffix.
func WithSuffixMax(n int) Option {
	return func(a *Arena) {
		if n > 0 {
			a.suffixMax = n
		}
	}
}

// Arena owns a set of nodes and the identifier registry of every tree
// formed from them.
type Arena struct {
	mu    sync.RWMutex
	nodes []*node

	// trees maps each root to the identifiers used in its tree.
	trees map[NodeID]map[string]NodeID
	// idents counts the entries across all of trees. Attach and detach
	// move entries between registries without changing it.
	idents int

	logger      *slog.Logger
	observer    Observer
	intn        func(int) int
	clonePolicy ClonePolicy
	suffixMax   int
}

// NewArena creates an empty Arena.
func NewArena(opts ...Option) *Arena {
	a := &Arena{
		trees:       make(map[NodeID]map[string]NodeID),
		intn:        rand.IntN,
		clonePolicy: CloneIDs,
		suffixMax:   DefaultSuffixMax,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// New creates a standalone element. content is applied through the same
// path as Append, so a collision inside content fails construction and
// nothing is allocated.
func (a *Arena) New(tag string, content Value, attrs ...Attr) (NodeID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.newLocked(tag, content, attrs)
	a.emit(OpNew, id, err)
	return id, err
}

func (a *Arena) newLocked(tag string, content Value, attrs []Attr) (NodeID, error) {
	if !IsValidTag(tag) {
		return NoNode, invalidTag(tag)
	}

	var set Attrs
	for _, at := range attrs {
		if at.Key == "" {
			return NoNode, invalidArgument("attribute with empty name on <%s>", tag)
		}
		set = set.Set(at.Key, at.Value)
	}

	mark := len(a.nodes)
	id := a.alloc(tag, set)
	if err := a.appendLocked(id, content); err != nil {
		a.release(mark)
		return NoNode, err
	}
	return id, nil
}

// alloc adds a standalone node with its own registry.
func (a *Arena) alloc(tag string, attrs Attrs) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, &node{tag: tag, attrs: attrs, parent: NoNode})

	reg := make(map[string]NodeID)
	if v, ok := attrs.Get(IDKey); ok {
		reg[v] = id
		a.idents++
	}
	a.trees[id] = reg
	return id
}

// release frees every node allocated at or after mark. None of them may be
// referenced from a node below mark.
func (a *Arena) release(mark int) {
	for i := mark; i < len(a.nodes); i++ {
		a.idents -= len(a.trees[NodeID(i)])
		delete(a.trees, NodeID(i))
		a.nodes[i] = nil
	}
	a.nodes = a.nodes[:mark]
}

// get returns the node record, or nil for an unknown id.
func (a *Arena) get(id NodeID) *node {
	if id < 0 || int(id) >= len(a.nodes) {
		return nil
	}
	return a.nodes[id]
}

func (a *Arena) emit(op Op, id NodeID, err error) {
	if err != nil {
		a.logger.Debug("markup: operation rejected", "op", op, "node", id, "error", err)
	} else {
		a.logger.Debug("markup: operation applied", "op", op, "node", id)
	}
	if a.observer == nil {
		return
	}
	a.observer.Observe(Event{Op: op, Node: id, Err: err, Identifiers: a.idents})
}

// Len returns the number of nodes in the arena.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.nodes)
}

// Valid reports whether id names a node of this arena.
func (a *Arena) Valid(id NodeID) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.get(id) != nil
}

// Tag returns the element name, or "" for an unknown node.
func (a *Arena) Tag(id NodeID) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if n := a.get(id); n != nil {
		return n.tag
	}
	return ""
}

// Attrs returns a copy of the node's attributes in insertion order.
func (a *Arena) Attrs(id NodeID) Attrs {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if n := a.get(id); n != nil {
		return n.attrs.Clone()
	}
	return nil
}

// Attr returns a single attribute value.
func (a *Arena) Attr(id NodeID, key string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if n := a.get(id); n != nil {
		return n.attrs.Get(key)
	}
	return "", false
}

// Text returns the node's literal text, if it has any.
func (a *Arena) Text(id NodeID) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if n := a.get(id); n != nil {
		return n.text, n.hasText
	}
	return "", false
}

// Children returns a copy of the node's child ids in order.
func (a *Arena) Children(id NodeID) []NodeID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	n := a.get(id)
	if n == nil || len(n.children) == 0 {
		return nil
	}
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

// IsLeaf reports whether the node holds text and no children.
func (a *Arena) IsLeaf(id NodeID) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	n := a.get(id)
	return n != nil && n.hasText && len(n.children) == 0
}

// Parent returns the node's parent, or NoNode for a root.
func (a *Arena) Parent(id NodeID) NodeID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if n := a.get(id); n != nil {
		return n.parent
	}
	return NoNode
}

// Root returns the root of the tree containing id.
func (a *Arena) Root(id NodeID) NodeID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.get(id) == nil {
		return NoNode
	}
	return a.rootOf(id)
}

// Roots returns every root in the arena in allocation order.
func (a *Arena) Roots() []NodeID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	roots := make([]NodeID, 0, len(a.trees))
	for id := range a.trees {
		roots = append(roots, id)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots
}
