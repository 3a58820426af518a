// Package docgen is the document generation engine: it turns typed business
// records and markdown into deterministic PDFs with interactive signature
// fields, caching rendered bytes by request fingerprint.
package docgen

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/docsmith/docgen/assets"
	"github.com/docsmith/docgen/builder"
	"github.com/docsmith/docgen/cache"
	"github.com/docsmith/docgen/doc"
	"github.com/docsmith/docgen/geom"
	"github.com/docsmith/docgen/layout"
	"github.com/docsmith/docgen/markdown"
	"github.com/docsmith/docgen/observability"
	"github.com/docsmith/docgen/templates"
	"github.com/docsmith/docgen/writer"
)

// DefaultMargin is the page margin applied when none is configured (0.75").
const DefaultMargin = 54.0

// Config fixes the rendering geometry and branding for an Engine. Two engines
// with equal configs produce byte-identical output for equal requests.
type Config struct {
	PageSize     geom.PaperSize // zero value applies geom.Letter
	Margins      geom.Margins   // zero value applies DefaultMargin on all sides
	BaseFontSize float64        // zero applies the stock style size
	HeadingSizes [4]float64     // zero entries keep the stock ladder

	Business templates.BusinessInfo
	CacheTTL time.Duration // zero disables caching entirely

	// CompressFonts flate-compresses embedded TrueType font programs.
	CompressFonts bool
}

// Request selects a document kind and carries the matching input. Exactly the
// field for Kind must be set.
type Request struct {
	Kind doc.Kind
	Info doc.Info

	// SourceID names the business record behind this request (invoice number,
	// form submission id, ...). It scopes cache keys so Invalidate can drop
	// every render of one record; empty is allowed.
	SourceID string
	// LastModified is the source record's modification time; a touched record
	// fingerprints differently and never reuses stale cached bytes.
	LastModified time.Time

	Invoice  *templates.InvoiceInput
	Proposal *templates.ProposalInput
	Contract *templates.ContractInput
	Intake   *templates.IntakeInput
	Markdown string
}

// Result is one finished render.
type Result struct {
	PDF       []byte
	PageCount int
	FromCache bool
}

// Engine renders documents. Safe for concurrent use.
type Engine struct {
	cfg     Config
	store   cache.Store
	bundle  *assets.Bundle
	log     observability.Logger
	metrics observability.Metrics
	writer  writer.Writer
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache attaches a cache backend; without one every request renders.
func WithCache(s cache.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithAssets supplies the preloaded branding bundle.
func WithAssets(b *assets.Bundle) Option {
	return func(e *Engine) { e.bundle = b }
}

// WithLogger sets the structured logger.
func WithLogger(l observability.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New constructs an Engine with defaults filled in.
func New(cfg Config, opts ...Option) *Engine {
	if cfg.PageSize.Width <= 0 || cfg.PageSize.Height <= 0 {
		cfg.PageSize = geom.Letter
	}
	if (cfg.Margins == geom.Margins{}) {
		cfg.Margins = geom.Uniform(DefaultMargin)
	}
	e := &Engine{
		cfg:     cfg,
		log:     observability.NopLogger{},
		metrics: observability.NopMetrics{},
		writer:  writer.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render produces the PDF for one request: cache lookup, template assembly,
// layout, serialization, cache fill. Identical requests against an identical
// config yield byte-identical PDFs whether or not the cache is hit.
func (e *Engine) Render(ctx context.Context, req Request) (Result, error) {
	if !req.Kind.Valid() {
		return Result{}, fmt.Errorf("unknown document kind %q", req.Kind)
	}
	start := time.Now()

	key := e.fingerprint(req)
	if hit, res := e.cacheGet(ctx, key); hit {
		return res, nil
	}

	blocks, err := e.assemble(req)
	if err != nil {
		return Result{}, err
	}

	document, err := e.renderBlocks(req, blocks)
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	serializeStart := time.Now()
	wcfg := writer.Config{CompressFonts: e.cfg.CompressFonts}
	if err := e.writer.Write(ctx, document, &buf, wcfg); err != nil {
		return Result{}, &SerializationError{Err: err}
	}
	e.metrics.Timing(observability.MetricSerializeTime, time.Since(serializeStart))
	res := Result{PDF: buf.Bytes(), PageCount: document.PageCount()}

	e.cachePut(ctx, key, res)
	e.metrics.Timing(observability.MetricRenderTime, time.Since(start))
	e.metrics.Count(observability.MetricPageCount, res.PageCount)
	e.metrics.Count(observability.MetricOutputBytes, len(res.PDF))
	e.log.Info("document rendered",
		observability.String("kind", string(req.Kind)),
		observability.Int("pages", res.PageCount),
		observability.Int("bytes", len(res.PDF)),
		observability.Duration("took", time.Since(start)))
	return res, nil
}

// Invalidate drops cached renders for a document kind, optionally scoped to a
// single source record id. It reports how many entries were removed.
func (e *Engine) Invalidate(ctx context.Context, kind doc.Kind, sourceID ...string) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("unknown document kind %q", kind)
	}
	if e.store == nil {
		return 0, nil
	}
	prefix := string(kind) + ":"
	if len(sourceID) > 0 && sourceID[0] != "" {
		prefix += sourceID[0] + ":"
	}
	n, err := e.store.Invalidate(ctx, prefix)
	if err != nil {
		return n, err
	}
	e.log.Info("cache invalidated",
		observability.String("prefix", prefix),
		observability.Int("removed", n))
	return n, nil
}

// assemble dispatches to the template assembler for the request kind.
func (e *Engine) assemble(req Request) ([]layout.Block, error) {
	biz := e.cfg.Business
	if e.bundle != nil && e.bundle.Logo != nil {
		// resource name assigned later in renderBlocks; flag presence only
		biz.LogoResource = letterheadLogoResource
	}
	switch req.Kind {
	case doc.KindInvoice:
		if req.Invoice == nil {
			return nil, &templates.ValidationError{Doc: "invoice", Field: "input"}
		}
		return templates.Invoice(*req.Invoice, biz)
	case doc.KindProposal:
		if req.Proposal == nil {
			return nil, &templates.ValidationError{Doc: "proposal", Field: "input"}
		}
		return templates.Proposal(*req.Proposal, biz)
	case doc.KindContract:
		if req.Contract == nil {
			return nil, &templates.ValidationError{Doc: "contract", Field: "input"}
		}
		return templates.Contract(*req.Contract, biz)
	case doc.KindIntakeSummary:
		if req.Intake == nil {
			return nil, &templates.ValidationError{Doc: "intake summary", Field: "input"}
		}
		return templates.Intake(*req.Intake, biz)
	case doc.KindMarkdownReport:
		if req.Markdown == "" {
			return nil, &templates.ValidationError{Doc: "markdown report", Field: "source"}
		}
		blocks := templates.Letterhead(biz)
		return append(blocks, markdown.Parse(req.Markdown)...), nil
	}
	return nil, fmt.Errorf("unknown document kind %q", req.Kind)
}

// letterheadLogoResource is the placeholder assemblers use; renderBlocks
// rewrites it to the resource name the builder actually assigns.
const letterheadLogoResource = "__logo__"

func (e *Engine) renderBlocks(req Request, blocks []layout.Block) (*doc.Document, error) {
	b := builder.New()
	b.SetKind(req.Kind).SetInfo(req.Info)

	if e.bundle != nil && e.bundle.Logo != nil {
		res := b.RegisterImage(e.bundle.Logo)
		for i, blk := range blocks {
			if img, ok := blk.(layout.ImageBlock); ok && img.Resource == letterheadLogoResource {
				img.Resource = res
				blocks[i] = img
			}
		}
	}

	style := e.style()
	mode := layout.ReflowAuto
	if req.Kind == doc.KindMarkdownReport {
		mode = layout.ReflowManual
	}
	flow := layout.NewFlow(b, e.cfg.PageSize, e.cfg.Margins,
		layout.WithMode(mode), layout.WithFlowLogger(e.log))
	if err := layout.NewRenderer(flow, style).Render(blocks); err != nil {
		return nil, err
	}
	return b.Build()
}

func (e *Engine) style() layout.Style {
	style := layout.DefaultStyle()
	if e.cfg.BaseFontSize > 0 {
		style.BaseFontSize = e.cfg.BaseFontSize
	}
	for i, s := range e.cfg.HeadingSizes {
		if s > 0 {
			style.HeadingSizes[i] = s
		}
	}
	if e.bundle != nil {
		if e.bundle.BodyFont != nil {
			style.Body = e.bundle.BodyFont
		}
		if e.bundle.BoldFont != nil {
			style.Bold = e.bundle.BoldFont
		}
	}
	return style
}

func (e *Engine) cacheGet(ctx context.Context, key string) (bool, Result) {
	if e.store == nil || e.cfg.CacheTTL <= 0 {
		return false, Result{}
	}
	entry, ok, err := e.store.Get(ctx, key)
	if err != nil {
		// backend down: render anyway
		e.log.Warn("cache unavailable", observability.Error("error", err))
		e.metrics.Count(observability.MetricCacheMiss, 1)
		return false, Result{}
	}
	e.log.Debug("cache lookup",
		observability.String("key", key),
		observability.Bool("hit", ok))
	if !ok {
		e.metrics.Count(observability.MetricCacheMiss, 1)
		return false, Result{}
	}
	e.metrics.Count(observability.MetricCacheHit, 1)
	return true, Result{PDF: entry.PDF, PageCount: entry.PageCount, FromCache: true}
}

func (e *Engine) cachePut(ctx context.Context, key string, res Result) {
	if e.store == nil || e.cfg.CacheTTL <= 0 {
		return
	}
	err := e.store.Put(ctx, key, cache.Entry{PDF: res.PDF, PageCount: res.PageCount}, e.cfg.CacheTTL)
	if err != nil {
		e.log.Warn("cache fill failed", observability.Error("error", err))
	}
}
