// Package render turns markup trees into indented text and writes full
// documents to a Sink.
//
// # Basic Usage
//
// To render a subtree:
//
//	text := render.Render(arena, id, 0)
//
// Each element produces an opening tag with its attributes in insertion
// order, a line with its text (if any), its children indented four more
// spaces, and a closing tag:
//
//	<h1 id="id1" class="myClass">Ayosh
//	</h1>
//
// # Documents
//
// RenderDocument wraps the body in a DOCTYPE/html envelope and writes it
// to the renderer's Sink under DocumentName:
//
//	r := render.NewRenderer(render.RendererConfig{
//	    Sink: render.NewDiskSink("public"),
//	})
//	html, err := r.RenderDocument(ctx, arena, root)
//
// Use NewMemorySink or Discard in tests. Document output is traced with
// OpenTelemetry using the configured (or global) tracer provider.
//
// # Escaping
//
// Text and attribute values are written verbatim.
package render
