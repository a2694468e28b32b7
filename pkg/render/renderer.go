package render

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/markup/pkg/markup"
)

// Step is the extra indentation of each nesting level.
const Step = 4

// DefaultIndent is the indentation of the document body.
const DefaultIndent = 4

const defaultTracerName = "markup/render"

const (
	docHeader = "<!DOCTYPE html>\n<html>\n"
	docFooter = "</html>\n"
)

// Render returns the text form of id and its descendants, starting indent
// spaces in. An unknown id renders as the empty string.
func Render(a *markup.Arena, id markup.NodeID, indent int) string {
	return RenderMap(a.ToMap(id), indent)
}

// RenderMap renders a structured map the same way Render renders a tree.
func RenderMap(m markup.ElementMap, indent int) string {
	var sb strings.Builder
	_ = Write(&sb, m, indent)
	return sb.String()
}

// Write streams the text form of m to w.
func Write(w io.Writer, m markup.ElementMap, indent int) error {
	if m.Name == "" {
		return nil
	}
	pad := strings.Repeat(" ", indent)

	var open strings.Builder
	open.WriteString(pad)
	open.WriteByte('<')
	open.WriteString(m.Name)
	for _, at := range m.Attrs {
		open.WriteByte(' ')
		open.WriteString(at.Key)
		open.WriteString(`="`)
		open.WriteString(at.Value)
		open.WriteByte('"')
	}
	open.WriteByte('>')
	if m.Value != nil {
		open.WriteString(*m.Value)
	}
	open.WriteByte('\n')
	if _, err := io.WriteString(w, open.String()); err != nil {
		return err
	}

	for _, c := range m.Children {
		if err := Write(w, c, indent+Step); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, pad+"</"+m.Name+">\n")
	return err
}

// Document returns the full document text for id: a DOCTYPE/html envelope
// around the tree rendered indent spaces in.
func Document(a *markup.Arena, id markup.NodeID, indent int) string {
	return docHeader + Render(a, id, indent) + docFooter
}

// Observer receives render measurements.
type Observer interface {
	ObserveRender(bytes int)
	ObserveDocument(sink string, err error)
}

// RendererConfig configures document output.
type RendererConfig struct {
	// Indent is the indentation of the document body.
	// Defaults to DefaultIndent when zero; use a negative value for none.
	Indent int

	// Sink receives written documents. Defaults to a DiskSink on the
	// working directory.
	Sink Sink

	// Name is the document name passed to the sink (default: DocumentName).
	Name string

	// TracerProvider supplies the tracer. Defaults to the global provider.
	TracerProvider trace.TracerProvider

	// Observer, if set, is told about every render and document write.
	Observer Observer

	Logger *slog.Logger
}

// Renderer renders trees and writes documents.
type Renderer struct {
	config RendererConfig
	tracer trace.Tracer
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	switch {
	case config.Indent == 0:
		config.Indent = DefaultIndent
	case config.Indent < 0:
		config.Indent = 0
	}
	if config.Sink == nil {
		config.Sink = NewDiskSink(".")
	}
	if config.Name == "" {
		config.Name = DocumentName
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Renderer{
		config: config,
		tracer: config.TracerProvider.Tracer(defaultTracerName),
	}
}

// Sink returns the renderer's document sink.
func (r *Renderer) Sink() Sink {
	return r.config.Sink
}

// Render renders id at indent and reports its size to the observer.
func (r *Renderer) Render(a *markup.Arena, id markup.NodeID, indent int) string {
	out := Render(a, id, indent)
	if r.config.Observer != nil {
		r.config.Observer.ObserveRender(len(out))
	}
	return out
}

// RenderDocument renders root as a full document and writes it to the sink
// under the configured name. The document text is returned even when the
// write fails.
func (r *Renderer) RenderDocument(ctx context.Context, a *markup.Arena, root markup.NodeID) (string, error) {
	ctx, span := r.tracer.Start(ctx, "markup.render_document",
		trace.WithAttributes(
			attribute.String("markup.sink", r.config.Sink.Name()),
			attribute.String("markup.document", r.config.Name),
			attribute.String("markup.root_tag", a.Tag(root)),
		),
	)
	defer span.End()

	doc := docHeader + r.Render(a, root, r.config.Indent) + docFooter
	span.SetAttributes(attribute.Int("markup.bytes", len(doc)))

	err := r.config.Sink.Write(ctx, r.config.Name, []byte(doc))
	if r.config.Observer != nil {
		r.config.Observer.ObserveDocument(r.config.Sink.Name(), err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.config.Logger.Error("markup: document write failed", "sink", r.config.Sink.Name(), "error", err)
		return doc, err
	}

	span.SetStatus(codes.Ok, "")
	r.config.Logger.Debug("markup: document written", "sink", r.config.Sink.Name(), "bytes", len(doc))
	return doc, nil
}
