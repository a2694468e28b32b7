package render

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	mkerrors "github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
)

func mustNew(t *testing.T, a *markup.Arena, tag string, content markup.Value, attrs ...markup.Attr) markup.NodeID {
	t.Helper()
	id, err := a.New(tag, content, attrs...)
	if err != nil {
		t.Fatalf("New(%q) error: %v", tag, err)
	}
	return id
}

func TestRenderLeaf(t *testing.T) {
	a := markup.NewArena()
	h1 := mustNew(t, a, "h1", markup.Text("Ayosh"), markup.ID("id1"), markup.Class("myClass"))

	want := "<h1 id=\"id1\" class=\"myClass\">Ayosh\n</h1>\n"
	if got := Render(a, h1, 0); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T, a *markup.Arena) markup.NodeID
		want  string
	}{
		{
			name: "no attributes",
			build: func(t *testing.T, a *markup.Arena) markup.NodeID {
				return mustNew(t, a, "p", markup.Text("hi"))
			},
			want: "<p>hi\n</p>\n",
		},
		{
			name: "empty element",
			build: func(t *testing.T, a *markup.Arena) markup.NodeID {
				return mustNew(t, a, "div", markup.Empty())
			},
			want: "<div>\n</div>\n",
		},
		{
			name: "nested",
			build: func(t *testing.T, a *markup.Arena) markup.NodeID {
				h2 := mustNew(t, a, "h2", markup.Text("backend training"), markup.ID("id2"))
				div := mustNew(t, a, "div", markup.Text("test"), markup.ID("id3"))
				return mustNew(t, a, "div", markup.Children(h2, div), markup.ID("root"))
			},
			want: "<div id=\"root\">\n" +
				"    <h2 id=\"id2\">backend training\n" +
				"    </h2>\n" +
				"    <div id=\"id3\">test\n" +
				"    </div>\n" +
				"</div>\n",
		},
		{
			name: "text before children",
			build: func(t *testing.T, a *markup.Arena) markup.NodeID {
				td := mustNew(t, a, "td", markup.Text("1"))
				tr := mustNew(t, a, "tr", markup.Child(td))
				return mustNew(t, a, "table", markup.List(markup.Text("caption"), markup.Child(tr)))
			},
			want: "<table>caption\n" +
				"    <tr>\n" +
				"        <td>1\n" +
				"        </td>\n" +
				"    </tr>\n" +
				"</table>\n",
		},
		{
			name: "values written verbatim",
			build: func(t *testing.T, a *markup.Arena) markup.NodeID {
				return mustNew(t, a, "a", markup.Text("<b>&"), markup.Href("/x?a=1&b=2"))
			},
			want: "<a href=\"/x?a=1&b=2\"><b>&\n</a>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := markup.NewArena()
			id := tt.build(t, a)
			if got := Render(a, id, 0); got != tt.want {
				t.Errorf("Render =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderIndent(t *testing.T) {
	a := markup.NewArena()
	h1 := mustNew(t, a, "h1", markup.Text("Ayosh"), markup.ID("id1"))

	want := "  <h1 id=\"id1\">Ayosh\n  </h1>\n"
	if got := Render(a, h1, 2); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderUnknownNode(t *testing.T) {
	a := markup.NewArena()
	if got := Render(a, 3, 0); got != "" {
		t.Errorf("Render(unknown) = %q, want empty", got)
	}
}

func TestRenderCloneDiffersOnlyInValues(t *testing.T) {
	a := markup.NewArena()
	li1 := mustNew(t, a, "span", markup.Text("one"), markup.ID("s1"), markup.Class("c"))
	li2 := mustNew(t, a, "span", markup.Text("two"), markup.ID("s2"))
	src := mustNew(t, a, "div", markup.Children(li1, li2), markup.ID("box"))

	c, err := a.Clone(markup.NoNode, src)
	if err != nil {
		t.Fatal(err)
	}

	values := regexp.MustCompile(`="[^"]*"`)
	strip := func(s string) string { return values.ReplaceAllString(s, `=""`) }

	srcText, cloneText := Render(a, src, 0), Render(a, c, 0)
	if srcText == cloneText {
		t.Fatal("clone should render different identifiers")
	}
	if strip(srcText) != strip(cloneText) {
		t.Errorf("renders differ beyond attribute values:\n%s\n%s", srcText, cloneText)
	}
}

func TestDocument(t *testing.T) {
	a := markup.NewArena()
	h1 := mustNew(t, a, "h1", markup.Text("Ayosh"), markup.ID("id1"), markup.Class("myClass"))

	want := "<!DOCTYPE html>\n<html>\n    <h1 id=\"id1\" class=\"myClass\">Ayosh\n    </h1>\n</html>\n"
	if got := Document(a, h1, DefaultIndent); got != want {
		t.Errorf("Document = %q, want %q", got, want)
	}
}

func TestRenderDocumentWritesSink(t *testing.T) {
	a := markup.NewArena()
	h1 := mustNew(t, a, "h1", markup.Text("Ayosh"), markup.ID("id1"), markup.Class("myClass"))

	sink := NewMemorySink()
	r := NewRenderer(RendererConfig{Sink: sink})

	doc, err := r.RenderDocument(context.Background(), a, h1)
	if err != nil {
		t.Fatalf("RenderDocument error: %v", err)
	}
	want := "<!DOCTYPE html>\n<html>\n    <h1 id=\"id1\" class=\"myClass\">Ayosh\n    </h1>\n</html>\n"
	if doc != want {
		t.Errorf("doc = %q, want %q", doc, want)
	}

	stored, ok := sink.Get(DocumentName)
	if !ok {
		t.Fatalf("sink has %v, want %s", sink.Names(), DocumentName)
	}
	if string(stored) != doc {
		t.Errorf("stored document differs from returned one")
	}
}

func TestRenderDocumentName(t *testing.T) {
	a := markup.NewArena()
	p := mustNew(t, a, "p", markup.Text("x"))

	sink := NewMemorySink()
	r := NewRenderer(RendererConfig{Sink: sink, Name: "preview.html"})
	if _, err := r.RenderDocument(context.Background(), a, p); err != nil {
		t.Fatal(err)
	}
	if names := sink.Names(); len(names) != 1 || names[0] != "preview.html" {
		t.Errorf("Names = %v, want [preview.html]", names)
	}
}

func TestRenderDocumentIndent(t *testing.T) {
	a := markup.NewArena()
	p := mustNew(t, a, "p", markup.Text("x"))

	r := NewRenderer(RendererConfig{Sink: Discard, Indent: -1})
	doc, err := r.RenderDocument(context.Background(), a, p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "\n<p>x\n</p>\n") {
		t.Errorf("negative indent should render the body flush left, got %q", doc)
	}
}

type failingSink struct{ err error }

func (s failingSink) Name() string { return "failing" }
func (s failingSink) Write(context.Context, string, []byte) error {
	return writeFailed(s.Name(), DocumentName, s.err)
}

type recordingObserver struct {
	renders   []int
	documents []string
	errs      []error
}

func (o *recordingObserver) ObserveRender(bytes int) { o.renders = append(o.renders, bytes) }
func (o *recordingObserver) ObserveDocument(sink string, err error) {
	o.documents = append(o.documents, sink)
	o.errs = append(o.errs, err)
}

func TestRenderDocumentSinkFailure(t *testing.T) {
	a := markup.NewArena()
	p := mustNew(t, a, "p", markup.Text("x"))

	boom := errors.New("disk full")
	obs := &recordingObserver{}
	r := NewRenderer(RendererConfig{Sink: failingSink{err: boom}, Observer: obs})

	doc, err := r.RenderDocument(context.Background(), a, p)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if mkerrors.Code(err) != "M030" {
		t.Errorf("Code = %q, want M030", mkerrors.Code(err))
	}
	if doc == "" {
		t.Error("document text should be returned even when the write fails")
	}
	if len(obs.documents) != 1 || obs.documents[0] != "failing" || !errors.Is(obs.errs[0], boom) {
		t.Errorf("observer got %v / %v", obs.documents, obs.errs)
	}
}

func TestRendererObserver(t *testing.T) {
	a := markup.NewArena()
	p := mustNew(t, a, "p", markup.Text("x"))

	obs := &recordingObserver{}
	r := NewRenderer(RendererConfig{Sink: Discard, Observer: obs})

	out := r.Render(a, p, 0)
	if _, err := r.RenderDocument(context.Background(), a, p); err != nil {
		t.Fatal(err)
	}

	if len(obs.renders) != 2 || obs.renders[0] != len(out) {
		t.Errorf("renders = %v, want [%d ...]", obs.renders, len(out))
	}
	if len(obs.documents) != 1 || obs.documents[0] != "discard" || obs.errs[0] != nil {
		t.Errorf("documents = %v, errs = %v", obs.documents, obs.errs)
	}
}

func TestRenderDocumentSpan(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		defer tp.Shutdown(context.Background())

		a := markup.NewArena()
		p := mustNew(t, a, "p", markup.Text("x"))
		r := NewRenderer(RendererConfig{Sink: NewMemorySink(), TracerProvider: tp})

		if _, err := r.RenderDocument(context.Background(), a, p); err != nil {
			t.Fatal(err)
		}

		spans := recorder.Ended()
		if len(spans) != 1 {
			t.Fatalf("got %d spans, want 1", len(spans))
		}
		span := spans[0]
		if span.Name() != "markup.render_document" {
			t.Errorf("span name = %q", span.Name())
		}
		if span.Status().Code != codes.Ok {
			t.Errorf("status = %v, want Ok", span.Status().Code)
		}
		attrs := map[string]string{}
		for _, kv := range span.Attributes() {
			attrs[string(kv.Key)] = kv.Value.Emit()
		}
		if attrs["markup.sink"] != "memory" || attrs["markup.root_tag"] != "p" {
			t.Errorf("attributes = %v", attrs)
		}
	})

	t.Run("failure", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		defer tp.Shutdown(context.Background())

		a := markup.NewArena()
		p := mustNew(t, a, "p", markup.Text("x"))
		r := NewRenderer(RendererConfig{Sink: failingSink{err: errors.New("nope")}, TracerProvider: tp})

		if _, err := r.RenderDocument(context.Background(), a, p); err == nil {
			t.Fatal("expected error")
		}

		spans := recorder.Ended()
		if len(spans) != 1 || spans[0].Status().Code != codes.Error {
			t.Fatalf("want one span with Error status, got %d spans", len(spans))
		}
		if len(spans[0].Events()) == 0 {
			t.Error("error should be recorded as a span event")
		}
	})
}
