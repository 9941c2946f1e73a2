package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/cssmachine"
	"github.com/aretw0/cssmachine/internal/testutils"
	"github.com/aretw0/cssmachine/pkg/adapters/memory"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flipperJSON = `{"name":"flipper","tape_length":8,"states":[
	{"name":"A","zero":{"write":1,"move":"L","next":"HALT"},"one":{"write":0,"move":"L","next":"A"}}]}`

type fixture struct {
	handler http.Handler
	metrics *Metrics
	store   *memory.Store
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()

	metrics := NewMetrics()
	store := memory.NewStore()
	lib, err := memory.NewFromMachines(testutils.Flipper(), testutils.BusyBeaver())
	require.NoError(t, err)

	compiler := cssmachine.New(cssmachine.WithLifecycleHooks(metrics.Hooks()))
	opts = append([]Option{WithStore(store), WithLibrary(lib), WithMetrics(metrics)}, opts...)
	handler, err := NewHandler(compiler, opts...)
	require.NoError(t, err)

	return fixture{handler: handler, metrics: metrics, store: store}
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestLoadSpec(t *testing.T) {
	spec, err := LoadSpec(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, spec.Paths.Find("/compile"))
	assert.NotNil(t, spec.Paths.Find("/library/{id}/html"))
}

func TestCompile(t *testing.T) {
	f := newFixture(t)

	w := f.do("POST", "/compile", flipperJSON)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	want, err := cssmachine.New().Compile(t.Context(), testutils.Flipper())
	require.NoError(t, err)
	assert.Equal(t, want, w.Body.String())

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.compiles.WithLabelValues(string(domain.EventCompiled))))
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		detail string
	}{
		{"Syntax", `{`, http.StatusBadRequest, ""},
		{"SchemaMove", `{"states":[{"name":"A","zero":{"move":"X"},"one":{"move":"L"}}]}`, http.StatusBadRequest, "move"},
		{"NoStates", `{"states":[]}`, http.StatusBadRequest, ""},
		{"UnknownKey", `{"states":[{"name":"A","zero":{"move":"L"},"one":{"move":"L"}}],"tape":3}`, http.StatusBadRequest, "tape"},
		{"Duplicate", `{"states":[{"name":"A","zero":{"move":"L"},"one":{"move":"L"}},{"name":"A","zero":{"move":"L"},"one":{"move":"L"}}]}`, http.StatusUnprocessableEntity, "states[1].name"},
		{"Reserved", `{"states":[{"name":"HALT","zero":{"move":"L"},"one":{"move":"L"}}]}`, http.StatusUnprocessableEntity, "reserved"},
		{"TapeLimit", `{"tape_length":100000,"states":[{"name":"A","zero":{"move":"L"},"one":{"move":"L"}}]}`, http.StatusUnprocessableEntity, "tape_length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			w := f.do("POST", "/compile", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())

			resp := decodeError(t, w)
			assert.NotEmpty(t, resp.Error)
			if tt.detail != "" {
				assert.Contains(t, strings.Join(resp.Details, "\n"), tt.detail)
			}
		})
	}
}

func TestCompile_BodyLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 16
	f := newFixture(t, WithConfig(cfg))

	w := f.do("POST", "/compile", flipperJSON)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestShare(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataURL = true
	f := newFixture(t, WithConfig(cfg))

	first := f.do("POST", "/share", flipperJSON)
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	var created ShareResponse
	require.NoError(t, json.NewDecoder(first.Body).Decode(&created))
	assert.Equal(t, "/m/"+created.ID, created.URL)
	assert.True(t, strings.HasPrefix(created.DataURL, "data:text/html;charset=utf-8,"))

	second := f.do("POST", "/share", flipperJSON)
	require.Equal(t, http.StatusOK, second.Code)
	var cached ShareResponse
	require.NoError(t, json.NewDecoder(second.Body).Decode(&cached))
	assert.Equal(t, created.ID, cached.ID)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.shareHits.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.shareHits.WithLabelValues("hit")))

	doc := f.do("GET", created.URL, "")
	require.Equal(t, http.StatusOK, doc.Code)
	stored, err := f.store.Load(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.HTML, doc.Body.String())
	assert.Equal(t, "flipper", stored.Machine.Name)

	missing := f.do("GET", "/m/nope", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestLibrary(t *testing.T) {
	f := newFixture(t)

	w := f.do("GET", "/library", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.MachineSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "busy-beaver", list[0].ID)

	w = f.do("GET", "/library/flipper", "")
	require.Equal(t, http.StatusOK, w.Code)
	var m domain.MachineConfig
	require.NoError(t, json.NewDecoder(w.Body).Decode(&m))
	assert.Equal(t, testutils.Flipper(), m)

	w = f.do("GET", "/library/busy-beaver/html", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>busy-beaver</title>")

	assert.Equal(t, http.StatusNotFound, f.do("GET", "/library/ghost", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do("GET", "/library/ghost/html", "").Code)
}

func TestOperational(t *testing.T) {
	f := newFixture(t)

	w := f.do("GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = f.do("GET", "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
	assert.Equal(t, "1.0.0", info["api_version"])
	assert.Equal(t, strings.TrimSpace(cssmachine.Version), info["version"])

	w = f.do("GET", "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")

	w = f.do("OPTIONS", "/compile", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	f.do("POST", "/compile", flipperJSON)
	w = f.do("GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `cssmachine_compiles_total{result="compiled"} 1`)
}

func TestNoMetrics(t *testing.T) {
	handler, err := NewHandler(cssmachine.New())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
