package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURL(t *testing.T) {
	html := `<p class="x">a + b & 100%#</p>`
	got := DataURL(html)

	assert.Equal(t, DataURLPrefix+"%3Cp%20class%3D%22x%22%3Ea%20%2B%20b%20%26%20100%25%23%3C%2Fp%3E", got)
	assert.NotContains(t, got[len(DataURLPrefix):], " ")
	assert.NotContains(t, got[len(DataURLPrefix):], "#")

	back, ok := Decode(got)
	require.True(t, ok)
	assert.Equal(t, html, back)
}

func TestDataURL_ComponentEscaping(t *testing.T) {
	html := `it's (a) *test*! ~ok`
	got := DataURL(html)

	// Same bytes as encodeURIComponent.
	assert.Equal(t, DataURLPrefix+`it's%20(a)%20*test*!%20~ok`, got)

	back, ok := Decode(got)
	require.True(t, ok)
	assert.Equal(t, html, back)
}

func TestDecode_Rejects(t *testing.T) {
	_, ok := Decode("https://example.com")
	assert.False(t, ok)

	_, ok = Decode(DataURLPrefix + "%zz")
	assert.False(t, ok)
}
