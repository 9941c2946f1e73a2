package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/cssmachine/internal/emitter"
	"github.com/aretw0/cssmachine/internal/layout"
	"github.com/aretw0/cssmachine/internal/presentation/table"
	"github.com/aretw0/cssmachine/internal/rules"
	"github.com/aretw0/cssmachine/pkg/domain"
)

// Compiler turns machine configurations into self-contained documents.
// It holds no per-compilation state and is safe for concurrent use.
type Compiler struct {
	logger    *slog.Logger
	shell     emitter.Shell
	hooks     domain.LifecycleHooks
	reference bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithShell replaces the page shell the generated parts are spliced into.
func WithShell(shell emitter.Shell) Option {
	return func(c *Compiler) {
		c.shell = shell
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Compiler) {
		c.hooks = hooks
	}
}

// WithReference toggles the state table rendered below the machine (default on).
func WithReference(enabled bool) Option {
	return func(c *Compiler) {
		c.reference = enabled
	}
}

// New creates a compiler using the default shell.
func New(opts ...Option) *Compiler {
	c := &Compiler{reference: true}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.shell == nil {
		c.shell = emitter.DefaultShell()
	}
	return c
}

// Result is a compiled document and what went into it.
type Result struct {
	Document string
	// Machine is the configuration after normalization.
	Machine domain.MachineConfig
	Rules   rules.Set
	Slots   int
}

// Compile plans the layout once and renders rules and markup against it.
// Invalid configurations fail with a *schema.AggregateError; a failure wrapping
// domain.ErrInternal means the compiler itself is broken.
func (c *Compiler) Compile(ctx context.Context, cfg domain.MachineConfig) (*Result, error) {
	start := time.Now()
	res, err := c.compile(ctx, cfg)

	event := &domain.CompileEvent{
		Timestamp:  start,
		Type:       domain.EventCompiled,
		Machine:    cfg.Name,
		States:     len(cfg.States),
		TapeLength: cfg.TapeLength,
		Duration:   time.Since(start),
		Err:        err,
	}
	if err != nil {
		event.Type = domain.EventCompileFailed
		c.logger.Debug("compile failed", "machine", cfg.Name, "err", err)
	} else {
		event.TapeLength = res.Machine.TapeLength
		event.Slots = res.Slots
		event.Rules = len(res.Rules)
		event.Bytes = len(res.Document)
		c.logger.Debug("compiled machine",
			"machine", cfg.Name,
			"states", event.States,
			"tape_length", event.TapeLength,
			"slots", event.Slots,
			"rules", event.Rules,
			"bytes", event.Bytes,
			"duration", event.Duration,
		)
	}
	if c.hooks.OnCompile != nil {
		c.hooks.OnCompile(ctx, event)
	}
	return res, err
}

func (c *Compiler) compile(ctx context.Context, cfg domain.MachineConfig) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg = cfg.Clone()
	if requested := cfg.TapeLength; cfg.Normalize() {
		c.logger.Warn("tape length clamped", "requested", requested, "tape_length", cfg.TapeLength)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stream, err := layout.Plan(len(cfg.States), cfg.TapeLength)
	if err != nil {
		return nil, fmt.Errorf("plan layout: %w", err)
	}
	set, err := rules.Generate(cfg, stream)
	if err != nil {
		return nil, fmt.Errorf("generate rules: %w", err)
	}
	static, err := emitter.StaticCSS(stream)
	if err != nil {
		return nil, fmt.Errorf("static styles: %w", err)
	}
	body, err := emitter.Body(stream)
	if err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}

	page := emitter.Page{
		Title:   cfg.Name,
		Style:   static + set.CSS(),
		Machine: body,
	}
	if c.reference {
		if page.Reference, err = emitter.MarkdownToHTML(table.Markdown(cfg)); err != nil {
			return nil, err
		}
	}

	var doc strings.Builder
	if err := c.shell.Render(&doc, page); err != nil {
		return nil, fmt.Errorf("render shell: %w", err)
	}

	return &Result{
		Document: doc.String(),
		Machine:  cfg,
		Rules:    set,
		Slots:    stream.Len(),
	}, nil
}
