package retext

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/tsawler/retext/config"
	"github.com/tsawler/retext/layout"
	"github.com/tsawler/retext/render"
)

// Option configures a Document
type Option func(*documentOptions)

// documentOptions holds the configuration of a Document.
type documentOptions struct {
	// Region merging
	merge  layout.MergeConfig
	merger layout.Merger // overrides merge when set

	// Collaborators
	detector Detector
	renderer *render.Renderer

	// Redraw defaults
	thickness int

	// Ambient
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
}

// defaultOptions returns the default document options.
func defaultOptions() documentOptions {
	return documentOptions{
		merge:     layout.DefaultMergeConfig(),
		thickness: render.DefaultThickness,
	}
}

// WithDetector sets the text detector used by Document.Detect. If the
// detector implements io.Closer, Document.Close closes it.
func WithDetector(d Detector) Option {
	return func(o *documentOptions) {
		o.detector = d
	}
}

// WithMergeConfig selects the merge policy and threshold
func WithMergeConfig(cfg layout.MergeConfig) Option {
	return func(o *documentOptions) {
		o.merge = cfg
		o.merger = nil
	}
}

// WithMerger replaces the merger entirely
func WithMerger(m layout.Merger) Option {
	return func(o *documentOptions) {
		o.merger = m
	}
}

// WithRenderer sets the renderer; by default a Go Regular renderer is built
func WithRenderer(r *render.Renderer) Option {
	return func(o *documentOptions) {
		o.renderer = r
	}
}

// WithThickness sets the stroke weight used by edits that leave it zero
func WithThickness(n int) Option {
	return func(o *documentOptions) {
		if n > 0 {
			o.thickness = n
		}
	}
}

// WithLogger sets the structured logger. Documents log nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *documentOptions) {
		o.logger = l
	}
}

// WithTracerProvider sets the provider for Detect and Apply spans. The
// global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *documentOptions) {
		o.tracerProvider = tp
	}
}

// WithConfig applies the merge and render sections of cfg
func WithConfig(cfg config.Config) Option {
	return func(o *documentOptions) {
		o.merge = cfg.MergeConfig()
		o.merger = nil
		if cfg.Render.Thickness > 0 {
			o.thickness = cfg.Render.Thickness
		}
	}
}
