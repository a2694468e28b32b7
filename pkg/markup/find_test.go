package markup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindByTag(t *testing.T) {
	a, h1, h2, div := fixture(t)
	if err := a.Append(div, Children(h1, h2)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		root NodeID
		tag  string
		want []NodeID
	}{
		{"nested h1", div, "h1", []NodeID{h1}},
		{"nested h2", div, "h2", []NodeID{h2}},
		{"root itself", div, "div", []NodeID{div}},
		{"below a leaf scope", h1, "h2", nil},
		{"no match", div, "table", nil},
		{"unknown root", 99, "div", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, a.FindByTag(tt.root, tt.tag)); diff != "" {
				t.Errorf("FindByTag mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindByTagDocumentOrder(t *testing.T) {
	a := NewArena()
	p1 := mustNew(t, a, "p", Text("first"))
	p2 := mustNew(t, a, "p", Text("nested"))
	inner := mustNew(t, a, "div", Child(p2))
	p3 := mustNew(t, a, "p", Text("last"))
	root := mustNew(t, a, "div", Children(p1, inner, p3))

	if diff := cmp.Diff([]NodeID{p1, p2, p3}, a.FindByTag(root, "p")); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]NodeID{root, inner}, a.FindByTag(root, "div")); diff != "" {
		t.Errorf("root must come first (-want +got):\n%s", diff)
	}
}

func TestFindByAttr(t *testing.T) {
	a := NewArena()
	x := mustNew(t, a, "span", Empty(), Class("hot"))
	y := mustNew(t, a, "span", Empty(), Class("cold"))
	z := mustNew(t, a, "a", Text("z"), Href("/"), Class("hot"))
	root := mustNew(t, a, "div", Children(x, y, z), ID("root"))

	if diff := cmp.Diff([]NodeID{x, z}, a.FindByAttr(root, "class", "hot")); diff != "" {
		t.Errorf("class=hot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]NodeID{root}, a.FindByAttr(root, "id", "root")); diff != "" {
		t.Errorf("id=root mismatch (-want +got):\n%s", diff)
	}
	if got := a.FindByAttr(root, "href", "/other"); got != nil {
		t.Errorf("FindByAttr = %v, want nil", got)
	}
	if got := a.FindByAttr(root, "title", ""); got != nil {
		t.Errorf("missing attribute must not match an empty value, got %v", got)
	}
}

func TestWalkStopsEarly(t *testing.T) {
	a, h1, h2, div := fixture(t)
	if err := a.Append(div, Children(h1, h2)); err != nil {
		t.Fatal(err)
	}

	var seen []NodeID
	a.Walk(div, func(id NodeID) bool {
		seen = append(seen, id)
		return id != h1
	})
	if diff := cmp.Diff([]NodeID{div, h1}, seen); diff != "" {
		t.Errorf("Walk visited (-want +got):\n%s", diff)
	}
}

func TestWalkCallbackMayQuery(t *testing.T) {
	a, h1, h2, _ := fixture(t)
	if err := a.AppendChild(h1, h2); err != nil {
		t.Fatal(err)
	}

	var tags []string
	a.Walk(h1, func(id NodeID) bool {
		tags = append(tags, a.Tag(id))
		return true
	})
	if diff := cmp.Diff([]string{"h1", "h2"}, tags); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
}
