package file_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/cssmachine/pkg/adapters/file"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/cssmachine/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flipperYAML = `
name: flipper
tape_length: 8
states:
  - name: A
    zero: {write: 1, move: L, next: HALT}
    one: {write: "0", move: l, next: A}
`

func flipper() domain.MachineConfig {
	return domain.MachineConfig{
		Name: "flipper",
		States: []domain.State{{
			Name: "A",
			Zero: domain.Transition{Write: domain.One, Move: domain.MoveLeft, Next: domain.HaltName},
			One:  domain.Transition{Write: domain.Zero, Move: domain.MoveLeft, Next: "A"},
		}},
		TapeLength: 8,
	}
}

func TestParse_YAML(t *testing.T) {
	doc, err := file.Parse([]byte(flipperYAML), file.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, flipper(), doc.Machine)
}

func TestParse_JSON(t *testing.T) {
	data := `{"name":"flipper","tape_length":"8","states":[
		{"name":"A","zero":{"write":1,"move":"L","next":"HALT"},"one":{"write":0,"move":"L","next":"A"}}]}`

	doc, err := file.Parse([]byte(data), file.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, flipper(), doc.Machine)
}

func TestDecode_TapeLength(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"Missing", nil, domain.DefaultTapeLength},
		{"Int", 12, 12},
		{"Float", 12.0, 12},
		{"LargeFloat", 100000000.0, 100000000},
		{"FractionalFloat", 8.5, 8},
		{"LeadingDigits", "12abc", 12},
		{"String", " 7 ", 7},
		{"JSONNumber", json.Number("9"), 9},
		{"Zero", 0, 1},
		{"Negative", -4, 1},
		{"Garbage", "abc", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"states": []any{}}
			if tt.value != nil {
				raw["tape_length"] = tt.value
			}
			cfg, err := file.Decode(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.TapeLength)
		})
	}
}

func TestDecodeDocument_Metadata(t *testing.T) {
	doc, err := file.DecodeDocument(map[string]any{
		"id":          "flip",
		"description": "inverts the tape",
		"states":      []any{},
	})
	require.NoError(t, err)
	assert.Equal(t, "flip", doc.ID)
	assert.Equal(t, "inverts the tape", doc.Description)
}

func TestDecode_Errors(t *testing.T) {
	t.Run("UnknownKey", func(t *testing.T) {
		_, err := file.Decode(map[string]any{"tape-length": 3})
		assert.Error(t, err)
	})

	t.Run("BadSymbol", func(t *testing.T) {
		_, err := file.Decode(map[string]any{"states": []any{
			map[string]any{"name": "A", "zero": map[string]any{"write": "x"}},
		}})
		assert.Error(t, err)
	})

	t.Run("OutOfRangeSymbol", func(t *testing.T) {
		for _, w := range []string{"256", "257", "1.5", "-255", "2", "true"} {
			t.Run(w, func(t *testing.T) {
				_, err := file.Parse([]byte("states:\n  - name: A\n    zero: {write: "+w+", move: L}\n"), file.FormatYAML)
				require.Error(t, err)

				details := schema.ValidationErrors(err)
				require.Len(t, details, 1)
				var ve *schema.ValidationError
				require.ErrorAs(t, details[0], &ve)
				assert.Equal(t, "states[0].zero.write", ve.Key)
			})
		}
	})

	t.Run("IntegralFloat", func(t *testing.T) {
		cfg, err := file.Parse([]byte(`{"states":[{"name":"A","zero":{"write":1.0,"move":"L"},"one":{"write":0,"move":"R"}}]}`), file.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, domain.One, cfg.Machine.States[0].Zero.Write)
	})

	t.Run("Syntax", func(t *testing.T) {
		_, err := file.Parse([]byte("{"), file.FormatJSON)
		assert.Error(t, err)
	})
}

func TestEncode_RoundTrip(t *testing.T) {
	for _, format := range []file.Format{file.FormatYAML, file.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := file.Encode(flipper(), format)
			require.NoError(t, err)

			doc, err := file.Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, flipper(), doc.Machine)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "machines", "counter.yaml")

	cfg := flipper()
	cfg.Name = ""
	data, err := file.Encode(cfg, file.FormatOf(path))
	require.NoError(t, err)
	require.NoError(t, file.WriteAtomic(path, data))

	loaded, err := file.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "counter", loaded.Name, "name defaults to the file name")
	assert.Equal(t, cfg.States, loaded.States)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")

	_, err = file.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, file.FormatJSON, file.FormatOf("m.JSON"))
	assert.Equal(t, file.FormatYAML, file.FormatOf("m.yml"))
	assert.Equal(t, file.FormatYAML, file.FormatOf("-"))
}
