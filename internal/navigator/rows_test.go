package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jed/internal/jsontree"
)

func mustParse(t *testing.T, text string) jsontree.Value {
	t.Helper()
	v, err := jsontree.Parse(text)
	require.NoError(t, err)
	return v
}

func TestRowsObject(t *testing.T) {
	t.Parallel()

	rows := Rows(mustParse(t, `{"name":"ada","age":36,"tags":["x"],"meta":{"a":1},"gone":null,"ok":true}`))
	require.Len(t, rows, 6)

	want := []struct {
		key string
		typ RowType
	}{
		{"name", RowString},
		{"age", RowNumber},
		{"tags", RowArray},
		{"meta", RowObject},
		{"gone", RowNull},
		{"ok", RowBool},
	}
	for i, w := range want {
		assert.Equal(t, w.key, rows[i].Key)
		assert.True(t, rows[i].HasKey)
		assert.Equal(t, w.typ, rows[i].Type)
	}
}

func TestRowsScalar(t *testing.T) {
	t.Parallel()

	rows := Rows(jsontree.String("plain"))
	require.Len(t, rows, 1)
	assert.False(t, rows[0].HasKey)
	assert.Equal(t, RowString, rows[0].Type)

	rows = Rows(mustParse(t, `[1,2]`))
	require.Len(t, rows, 1)
	assert.False(t, rows[0].HasKey)
	assert.Equal(t, RowArray, rows[0].Type)
}

func TestNormalizeEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{}", Normalize(nil))
	assert.Equal(t, "{}", Normalize([]NodeRow{}))
}

func TestNormalizeKeyedScalars(t *testing.T) {
	t.Parallel()

	rows := Rows(mustParse(t, `{"name":"ada","age":36,"nested":{"x":1},"list":[1],"ok":true}`))
	got := Normalize(rows)

	// Container rows are dropped; scalar rows keep their order.
	want := `{
  "name": "ada",
  "age": 36,
  "ok": true
}`
	assert.Equal(t, want, got)

	// The draft re-parses as JSON.
	_, err := jsontree.Parse(got)
	assert.NoError(t, err)
}

func TestNormalizeSingleUnkeyedNumber(t *testing.T) {
	t.Parallel()

	got := Normalize(Rows(jsontree.Number("42")))
	assert.Equal(t, "42", got)
	_, err := jsontree.Parse(got)
	assert.NoError(t, err)
}

// A single unkeyed string row keeps its raw text, which is not valid JSON.
// Known limitation carried over from the observed behavior: such a node
// enters edit mode already marked invalid.
func TestNormalizeSingleUnkeyedStringIsRaw(t *testing.T) {
	t.Parallel()

	got := Normalize(Rows(jsontree.String("plain text")))
	assert.Equal(t, "plain text", got)
	_, err := jsontree.Parse(got)
	assert.Error(t, err)
}

func TestNormalizeSingleUnkeyedArray(t *testing.T) {
	t.Parallel()

	got := Normalize(Rows(mustParse(t, `[1,2,3]`)))
	want := `[
  1,
  2,
  3
]`
	assert.Equal(t, want, got)
}

func TestNormalizeDropsKeylessRowsInMix(t *testing.T) {
	t.Parallel()

	rows := []NodeRow{
		{Key: "a", HasKey: true, Value: jsontree.Number("1"), Type: RowNumber},
		{Value: jsontree.String("stray"), Type: RowString},
	}
	want := `{
  "a": 1
}`
	assert.Equal(t, want, Normalize(rows))
}
