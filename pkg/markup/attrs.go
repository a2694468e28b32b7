package markup

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// IDKey is the reserved attribute whose value must be unique tree-wide.
const IDKey = "id"

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list. Keys are unique; setting an existing
// key keeps its position.
type Attrs []Attr

// attr creates an Attr with the given key and value.
func attr(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// A creates an arbitrary attribute.
func A(key, value string) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr(IDKey, id) }

// Class sets the class attribute.
func Class(class string) Attr { return attr("class", class) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// StyleAttr sets the style attribute (named to avoid confusion with the style tag).
func StyleAttr(style string) Attr { return attr("style", style) }

// Get returns the value stored under key.
func (a Attrs) Get(key string) (string, bool) {
	for _, at := range a {
		if at.Key == key {
			return at.Value, true
		}
	}
	return "", false
}

// Set stores value under key and returns the updated list. The receiver's
// backing array may be modified.
func (a Attrs) Set(key, value string) Attrs {
	for i := range a {
		if a[i].Key == key {
			a[i].Value = value
			return a
		}
	}
	return append(a, attr(key, value))
}

// Clone returns an independent copy.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	copy(out, a)
	return out
}

// Keys returns the attribute names in order.
func (a Attrs) Keys() []string {
	keys := make([]string, len(a))
	for i, at := range a {
		keys[i] = at.Key
	}
	return keys
}

// ToMap returns the attributes as an unordered map.
func (a Attrs) ToMap() map[string]string {
	m := make(map[string]string, len(a))
	for _, at := range a {
		m[at.Key] = at.Value
	}
	return m
}

// MarshalJSON encodes the attributes as a JSON object in insertion order.
func (a Attrs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, at := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(at.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(at.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values, keeping key order.
func (a *Attrs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*a = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("attrs: expected object, got %v", tok)
	}

	var out Attrs
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("attrs: expected key, got %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("attrs: value of %q: %w", key, err)
		}
		out = out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = out
	return nil
}

// MarshalYAML encodes the attributes as a YAML mapping in insertion order.
func (a Attrs) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, at := range a {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: at.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: at.Value},
		)
	}
	return n, nil
}

// UnmarshalYAML decodes a YAML mapping of scalars, keeping key order.
func (a *Attrs) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		*a = nil
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("attrs: line %d: expected mapping", n.Line)
	}

	var out Attrs
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("attrs: line %d: expected scalar key and value", k.Line)
		}
		out = out.Set(k.Value, v.Value)
	}

	*a = out
	return nil
}
