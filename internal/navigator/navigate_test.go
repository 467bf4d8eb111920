package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jed/internal/jsontree"
)

const navDoc = `{"regions":{"asia":{"countries":["jp","kr"]}},"items":[{"id":1,"available":true},{"id":2,"available":false}]}`

func TestNavigateStructural(t *testing.T) {
	t.Parallel()

	root := mustParse(t, navDoc)

	tests := []struct {
		name string
		expr string
		want string
	}{
		{name: "root empty", expr: "", want: navDoc},
		{name: "root dollar", expr: "$", want: navDoc},
		{name: "dotted", expr: "regions.asia", want: `{"countries":["jp","kr"]}`},
		{name: "bracket index", expr: "regions.asia.countries[1]", want: `"kr"`},
		{name: "dotted index", expr: "items.0.id", want: `1`},
		{name: "quoted key", expr: `regions["asia"]`, want: `{"countries":["jp","kr"]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Navigate(root, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, jsontree.Encode(got))
		})
	}
}

func TestNavigateMiss(t *testing.T) {
	t.Parallel()

	root := mustParse(t, navDoc)
	_, err := Navigate(root, "regions.europe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `$["regions"]["europe"]`)
}

func TestNavigateCELFilter(t *testing.T) {
	t.Parallel()

	root := mustParse(t, navDoc)
	got, err := Navigate(root, `_.items.filter(x, x.available)`)
	require.NoError(t, err)

	arr, ok := got.(*jsontree.Array)
	require.True(t, ok, "got %T", got)
	require.Equal(t, 1, arr.Len())
}

func TestNavigateCELDoesNotMutate(t *testing.T) {
	t.Parallel()

	root := mustParse(t, navDoc)
	before := jsontree.Encode(root)
	_, err := Navigate(root, `size(_.items)`)
	require.NoError(t, err)
	assert.Equal(t, before, jsontree.Encode(root))
}

func TestIsComplexCEL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want bool
	}{
		{"items", false},
		{"items[0].tags", false},
		{`tasks["build-windows"]`, false},
		{"[3]", false},
		{"[1, 2]", true},
		{`"hi"`, true},
		{`{"a":1}`, true},
		{"_.items", true},
		{"size(_.items)", true},
		{"items.filter(x, x.ok)", true},
		{"a == b", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isComplexCEL(tt.expr), "expr %q", tt.expr)
		})
	}
}
