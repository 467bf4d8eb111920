package cel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData() map[string]interface{} {
	return map[string]interface{}{
		"name": "ada",
		"items": []interface{}{
			map[string]interface{}{"id": int64(1), "available": true},
			map[string]interface{}{"id": int64(2), "available": false},
		},
	}
}

func TestEvaluateSimpleAccess(t *testing.T) {
	t.Parallel()

	e, err := NewEvaluator()
	require.NoError(t, err)

	got, err := e.Evaluate(`_.name`, testData())
	require.NoError(t, err)
	assert.Equal(t, "ada", got)
}

func TestEvaluateFilter(t *testing.T) {
	t.Parallel()

	e, err := NewEvaluator()
	require.NoError(t, err)

	got, err := e.Evaluate(`_.items.filter(x, x.available)`, testData())
	require.NoError(t, err)

	list, ok := got.([]interface{})
	require.True(t, ok, "got %T", got)
	require.Len(t, list, 1)
	first, ok := list[0].(map[string]interface{})
	require.True(t, ok, "got %T", list[0])
	assert.Equal(t, int64(1), first["id"])
}

func TestEvaluateSize(t *testing.T) {
	t.Parallel()

	e, err := NewEvaluator()
	require.NoError(t, err)

	got, err := e.Evaluate(`size(_.items)`, testData())
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestEvaluateCompileError(t *testing.T) {
	t.Parallel()

	e, err := NewEvaluator()
	require.NoError(t, err)

	_, err = e.Evaluate(`_.items.filter(`, testData())
	assert.Error(t, err)
}

func TestEvaluateMissingKey(t *testing.T) {
	t.Parallel()

	e, err := NewEvaluator()
	require.NoError(t, err)

	_, err = e.Evaluate(`_.nope.deeper`, testData())
	assert.Error(t, err)
}
