package markup

// ValueKind is the Value discriminator.
type ValueKind uint8

const (
	ValueEmpty ValueKind = iota // Nothing to append
	ValueText                   // Literal text, replaces content
	ValueNode                   // A standalone node to attach
	ValueList                   // Ordered sequence of values
)

// String returns the string representation of the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case ValueEmpty:
		return "Empty"
	case ValueText:
		return "Text"
	case ValueNode:
		return "Node"
	case ValueList:
		return "List"
	default:
		return "Unknown"
	}
}

// Value is content handed to New or Append: text, a node, or a list of
// either. The zero Value is empty.
type Value struct {
	kind ValueKind
	text string
	node NodeID
	list []Value
}

// Empty returns a Value that appends nothing.
func Empty() Value { return Value{} }

// Text returns a text Value.
func Text(s string) Value { return Value{kind: ValueText, text: s} }

// Child returns a Value that attaches node.
func Child(node NodeID) Value { return Value{kind: ValueNode, node: node} }

// Children returns a list Value attaching each node in order.
func Children(nodes ...NodeID) Value {
	list := make([]Value, len(nodes))
	for i, n := range nodes {
		list[i] = Child(n)
	}
	return Value{kind: ValueList, list: list}
}

// List returns a Value applying each item in order.
func List(items ...Value) Value { return Value{kind: ValueList, list: items} }

// Kind returns the value's kind.
func (v Value) Kind() ValueKind { return v.kind }
