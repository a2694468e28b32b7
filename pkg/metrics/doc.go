// Package metrics exports Prometheus metrics for markup arenas and
// renderers.
//
// A Collector implements both markup.Observer and render.Observer:
//
//	reg := prometheus.NewRegistry()
//	c := metrics.NewCollector(metrics.WithRegistry(reg))
//	arena := markup.NewArena(markup.WithObserver(c))
//	r := render.NewRenderer(render.RendererConfig{Observer: c})
//
// Metrics collected:
//   - markup_mutations_total: Counter of operations by op and result
//   - markup_identifiers_registered: Gauge of identifiers held by the arena
//   - markup_render_bytes: Histogram of rendered text sizes
//   - markup_documents_written_total: Counter of document writes by sink and result
package metrics
