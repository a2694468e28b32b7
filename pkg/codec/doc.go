// Package codec reads and writes structured element maps as JSON or YAML.
//
// Both formats carry the same shape:
//
//	{"name": "h1", "value": "Ayosh", "attrs": {"id": "id1"}, "children": []}
//
// Attribute order survives both encodings. Unknown fields and values of
// the wrong type are rejected with error code M010, which wraps
// markup.ErrInvalidArgument.
package codec
