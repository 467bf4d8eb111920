package jsontree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"customer":{"name":"ada","orders":[{"id":1},{"id":2}]},"note":null}`)

	tests := []struct {
		name   string
		path   Path
		want   string
		wantOK bool
	}{
		{name: "empty path returns root", path: nil, want: Encode(root), wantOK: true},
		{name: "object key", path: Path{Key("customer"), Key("name")}, want: `"ada"`, wantOK: true},
		{name: "array element", path: Path{Key("customer"), Key("orders"), Index(1), Key("id")}, want: `2`, wantOK: true},
		{name: "missing key", path: Path{Key("nope")}, wantOK: false},
		{name: "missing nested key", path: Path{Key("customer"), Key("nope"), Key("deeper")}, wantOK: false},
		{name: "through null", path: Path{Key("note"), Key("x")}, wantOK: false},
		{name: "index out of range", path: Path{Key("customer"), Key("orders"), Index(9)}, wantOK: false},
		{name: "index into object", path: Path{Key("customer"), Index(0)}, wantOK: false},
		{name: "key into array", path: Path{Key("customer"), Key("orders"), Key("id")}, wantOK: false},
		{name: "index into scalar", path: Path{Key("customer"), Key("name"), Index(0)}, wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Get(root, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, Encode(got))
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestGetNilRoot(t *testing.T) {
	t.Parallel()

	_, ok := Get(nil, Path{Key("a")})
	assert.False(t, ok)
	_, ok = Get(nil, nil)
	assert.False(t, ok)
}

func TestSetRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		root string
		path Path
	}{
		{name: "existing key", root: `{"a":1}`, path: Path{Key("a")}},
		{name: "new key", root: `{"a":1}`, path: Path{Key("b")}},
		{name: "deep missing chain", root: `{}`, path: Path{Key("a"), Key("b"), Key("c")}},
		{name: "array growth", root: `{"xs":[]}`, path: Path{Key("xs"), Index(3)}},
		{name: "array then object", root: `{}`, path: Path{Key("xs"), Index(0), Key("k")}},
		{name: "wrong-typed intermediate", root: `{"a":"scalar"}`, path: Path{Key("a"), Key("b")}},
		{name: "scalar root", root: `42`, path: Path{Key("a")}},
		{name: "scalar root with index", root: `"s"`, path: Path{Index(2)}},
		{name: "empty path", root: `{"a":1}`, path: nil},
	}

	v := mustParse(t, `{"marker":true}`)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := Set(mustParse(t, tt.root), tt.path, v)
			got, ok := Get(root, tt.path)
			require.True(t, ok)
			assert.True(t, Equal(v, got), "got %s", Encode(got))
		})
	}
}

func TestSetMutatesInPlace(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"customer":{"name":"ada"}}`)
	returned := Set(root, Path{Key("customer"), Key("name")}, String("grace"))

	// Same root comes back and the original reference sees the write.
	assert.Same(t, root, returned)
	got, ok := Get(root, Path{Key("customer"), Key("name")})
	require.True(t, ok)
	assert.Equal(t, String("grace"), got)
}

func TestSetPreservesSiblings(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"a":{"x":1,"y":2},"b":[1,2,3],"c":"keep"}`)
	Set(root, Path{Key("a"), Key("x")}, Number("9"))

	assert.Equal(t, `{"a":{"x":9,"y":2},"b":[1,2,3],"c":"keep"}`, Encode(root))
}

func TestSetGrowsArrayWithNulls(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"xs":[1]}`)
	Set(root, Path{Key("xs"), Index(3)}, Bool(true))

	assert.Equal(t, `{"xs":[1,null,null,true]}`, Encode(root))
}

func TestSetMaterializesByNextSegmentKind(t *testing.T) {
	t.Parallel()

	root := Set(mustParse(t, `{}`), Path{Key("a"), Index(0), Key("b")}, Number("1"))
	assert.Equal(t, `{"a":[{"b":1}]}`, Encode(root))

	root = Set(mustParse(t, `{"a":{"keep":1}}`), Path{Key("a"), Key("b"), Index(1)}, Number("2"))
	assert.Equal(t, `{"a":{"keep":1,"b":[null,2]}}`, Encode(root))
}

func TestSetReplacesWrongTypedIntermediate(t *testing.T) {
	t.Parallel()

	// "a" holds a scalar; writing through it swaps in a fresh object.
	root := mustParse(t, `{"a":5,"z":true}`)
	Set(root, Path{Key("a"), Key("b")}, String("v"))
	assert.Equal(t, `{"a":{"b":"v"},"z":true}`, Encode(root))
}

func TestSetEmptyPathReplacesRoot(t *testing.T) {
	t.Parallel()

	old := mustParse(t, `{"a":1}`)
	v := String("new root")
	got := Set(old, nil, v)
	assert.Equal(t, v, got)
	// The old tree is untouched.
	assert.Equal(t, `{"a":1}`, Encode(old))
}
