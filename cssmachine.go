package cssmachine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/cssmachine/internal/compiler"
	"github.com/aretw0/cssmachine/internal/emitter"
	"github.com/aretw0/cssmachine/pkg/adapters/loam"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/cssmachine/pkg/ports"
)

// Shell wraps the generated style rules and markup into a complete document.
type Shell = emitter.Shell

// Page holds the generated parts handed to a Shell.
type Page = emitter.Page

// ShellFunc adapts an ordinary function to a Shell.
type ShellFunc = emitter.ShellFunc

// DefaultShell renders a standalone page with instructions and a reference table.
func DefaultShell() Shell { return emitter.DefaultShell() }

// BareShell renders only the style element and the machine, for embedding.
func BareShell() Shell { return emitter.BareShell() }

// Compiler is the high-level entry point of the library.
// It wraps the internal compiler and an optional machine library.
type Compiler struct {
	compiler  *compiler.Compiler
	library   ports.MachineLibrary
	shell     Shell
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	reference bool
}

var _ ports.Compiler = (*Compiler)(nil)

// Option defines a functional option for configuring the Compiler.
type Option func(*Compiler)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithShell replaces the page the generated parts are spliced into.
func WithShell(shell Shell) Option {
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

// WithoutReference leaves the state table out of the default page.
func WithoutReference() Option {
	return func(c *Compiler) {
		c.reference = false
	}
}

// WithLibrary injects a machine library, used by CompileByID.
func WithLibrary(lib ports.MachineLibrary) Option {
	return func(c *Compiler) {
		c.library = lib
	}
}

// New creates a Compiler. Without options it logs nothing and renders the default page.
func New(opts ...Option) *Compiler {
	c := &Compiler{reference: true}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	copts := []compiler.Option{
		compiler.WithLogger(c.logger),
		compiler.WithLifecycleHooks(c.hooks),
		compiler.WithReference(c.reference),
	}
	if c.shell != nil {
		copts = append(copts, compiler.WithShell(c.shell))
	}
	c.compiler = compiler.New(copts...)
	return c
}

// Open creates a Compiler backed by the machine library at dir.
// The directory is read through Loam in strict, read-only mode.
func Open(dir string, opts ...Option) (*Compiler, error) {
	lib, err := loam.Open(dir)
	if err != nil {
		return nil, err
	}
	return New(append(opts, WithLibrary(lib))...), nil
}

// Compile returns the standalone HTML document implementing cfg.
// Equal configurations yield byte-identical documents.
func (c *Compiler) Compile(ctx context.Context, cfg domain.MachineConfig) (string, error) {
	res, err := c.compiler.Compile(ctx, cfg)
	if err != nil {
		return "", err
	}
	return res.Document, nil
}

// CompileByID compiles the library machine stored under id.
func (c *Compiler) CompileByID(ctx context.Context, id string) (string, error) {
	if c.library == nil {
		return "", fmt.Errorf("%w: no library configured", domain.ErrMachineNotFound)
	}
	cfg, err := c.library.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return c.Compile(ctx, cfg)
}

// Library returns the configured machine library, or nil.
func (c *Compiler) Library() ports.MachineLibrary {
	return c.library
}
