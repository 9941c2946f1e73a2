package cssmachine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/cssmachine"
	"github.com/aretw0/cssmachine/internal/testutils"
	"github.com/aretw0/cssmachine/pkg/adapters/memory"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Deterministic(t *testing.T) {
	ctx := context.Background()

	a, err := cssmachine.New().Compile(ctx, testutils.BusyBeaver())
	require.NoError(t, err)
	b, err := cssmachine.New().Compile(ctx, testutils.BusyBeaver())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotContains(t, a, "<script")
}

func TestCompile_Options(t *testing.T) {
	ctx := context.Background()
	var compiled int

	c := cssmachine.New(
		cssmachine.WithShell(cssmachine.BareShell()),
		cssmachine.WithoutReference(),
		cssmachine.WithLifecycleHooks(domain.LifecycleHooks{
			OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
				if e.Type == domain.EventCompiled {
					compiled++
				}
			},
		}),
	)

	html, err := c.Compile(ctx, testutils.Flipper())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(html, "<style>"))
	assert.Equal(t, 1, compiled)
}

func TestCompileByID(t *testing.T) {
	ctx := context.Background()

	lib, err := memory.NewFromMachines(testutils.Flipper())
	require.NoError(t, err)
	c := cssmachine.New(cssmachine.WithLibrary(lib))

	html, err := c.CompileByID(ctx, "flipper")
	require.NoError(t, err)
	direct, err := c.Compile(ctx, testutils.Flipper())
	require.NoError(t, err)
	assert.Equal(t, direct, html)

	_, err = c.CompileByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)

	_, err = cssmachine.New().CompileByID(ctx, "flipper")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"flipper.json": `{"name":"flipper","tape_length":8,"states":[
			{"name":"A","zero":{"write":1,"move":"L","next":"HALT"},"one":{"write":0,"move":"L","next":"A"}}]}`,
	})

	c, err := cssmachine.Open(dir)
	require.NoError(t, err)
	require.NotNil(t, c.Library())

	html, err := c.CompileByID(context.Background(), "flipper")
	require.NoError(t, err)
	assert.Contains(t, html, "<title>flipper</title>")
}

func TestVersion(t *testing.T) {
	assert.Regexp(t, `^\d+\.\d+\.\d+`, strings.TrimSpace(cssmachine.Version))
}
