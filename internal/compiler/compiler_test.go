package compiler_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/cssmachine/internal/compiler"
	"github.com/aretw0/cssmachine/internal/emitter"
	"github.com/aretw0/cssmachine/internal/rules"
	"github.com/aretw0/cssmachine/internal/testutils"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/cssmachine/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_EndToEnd(t *testing.T) {
	c := compiler.New()
	ctx := context.Background()

	first, err := c.Compile(ctx, testutils.Flipper())
	require.NoError(t, err)
	second, err := c.Compile(ctx, testutils.Flipper())
	require.NoError(t, err)

	assert.Equal(t, first.Document, second.Document)
	assert.Equal(t, 4, first.Rules.Count(rules.KindStateReveal))
	assert.Equal(t, 4, first.Rules.Count(rules.KindTapeWrite))
	assert.Equal(t, 4, first.Rules.Count(rules.KindHeadMove))

	doc := first.Document
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<title>flipper</title>")
	assert.Contains(t, doc, first.Rules.CSS())
	assert.Contains(t, doc, `<input type="radio" name="ha" id="ha3" checked>`)
	assert.Contains(t, doc, "<h3>Reference:</h3>")
	assert.NotContains(t, doc, "<script")

	// The static styles precede the generated rules inside one style element.
	assert.Less(t, strings.Index(doc, "grid-template-columns"), strings.Index(doc, first.Rules[0].String()))
}

func TestCompile_InvalidConfig(t *testing.T) {
	_, err := compiler.New().Compile(context.Background(), domain.MachineConfig{TapeLength: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoStates)

	var agg *schema.AggregateError
	assert.ErrorAs(t, err, &agg)
}

func TestCompile_ClampsTapeLength(t *testing.T) {
	cfg := testutils.Flipper()
	cfg.TapeLength = -3

	res, err := compiler.New().Compile(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Machine.TapeLength)
	assert.Equal(t, -3, cfg.TapeLength, "caller's value must not change")
	assert.Zero(t, res.Rules.Count(rules.KindHeadMove))
}

func TestCompile_DoesNotMutateInput(t *testing.T) {
	cfg := testutils.Flipper()
	cfg.States[0].One.Next = "removed"
	before := cfg.Clone()

	_, err := compiler.New().Compile(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, before, cfg)
}

func TestCompile_Hooks(t *testing.T) {
	var events []*domain.CompileEvent
	c := compiler.New(compiler.WithLifecycleHooks(domain.LifecycleHooks{
		OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
			events = append(events, e)
		},
	}))

	res, err := c.Compile(context.Background(), testutils.Flipper())
	require.NoError(t, err)
	_, err = c.Compile(context.Background(), domain.MachineConfig{})
	require.Error(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, domain.EventCompiled, events[0].Type)
	assert.Equal(t, "flipper", events[0].Machine)
	assert.Equal(t, len(res.Rules), events[0].Rules)
	assert.Equal(t, res.Slots, events[0].Slots)
	assert.Equal(t, len(res.Document), events[0].Bytes)

	assert.Equal(t, domain.EventCompileFailed, events[1].Type)
	assert.ErrorIs(t, events[1].Err, domain.ErrNoStates)
}

func TestCompile_CustomShell(t *testing.T) {
	shellErr := errors.New("shell unavailable")
	c := compiler.New(
		compiler.WithReference(false),
		compiler.WithShell(emitter.ShellFunc(func(w io.Writer, p emitter.Page) error {
			assert.Empty(t, p.Reference)
			return shellErr
		})),
	)

	_, err := c.Compile(context.Background(), testutils.Flipper())
	assert.ErrorIs(t, err, shellErr)
}

func TestCompile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := compiler.New().Compile(ctx, testutils.Flipper())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompile_Concurrent(t *testing.T) {
	c := compiler.New()
	want, err := c.Compile(context.Background(), testutils.Flipper())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Compile(context.Background(), testutils.Flipper())
			if assert.NoError(t, err) {
				assert.Equal(t, want.Document, got.Document)
			}
		}()
	}
	wg.Wait()
}
