// Package markup provides an element tree whose id attributes are unique
// across every connected tree.
//
// Nodes live in an Arena and are addressed by NodeID. A node carries a tag
// from a fixed whitelist, ordered attributes, optional leading text and an
// ordered list of children. Its parent is stored as a NodeID, so back
// references never own anything.
//
// # Building Trees
//
// Nodes are created standalone and attached with Append:
//
//	a := markup.NewArena()
//	title, _ := a.New("h1", markup.Text("Ayosh"), markup.ID("id1"), markup.Class("myClass"))
//	root, _ := a.New("div", markup.Child(title), markup.ID("root"))
//
// Content is passed as a Value: Text, Child, Children or List. Appending
// text replaces the element's content; appending a node adds a child.
//
// # Identifiers
//
// Each connected tree keeps one registry from id value to owning node.
// Append validates every identifier of the incoming subtrees against that
// registry before it touches anything, so a rejected call leaves the tree
// and its registry exactly as they were. Remove moves the detached
// subtree's identifiers into a registry of its own, making it re-attachable
// elsewhere.
//
// # Errors
//
// Operations return errors that match ErrInvalidTag, ErrDuplicateIdentifier
// or ErrInvalidArgument through errors.Is.
//
// # Concurrency
//
// An Arena serializes its mutations with an internal lock. Read-only
// queries may run concurrently with each other.
package markup
