package jsontree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path Path
		want string
	}{
		{name: "nil path", path: nil, want: "$"},
		{name: "empty path", path: Path{}, want: "$"},
		{name: "single key", path: Path{Key("customer")}, want: `$["customer"]`},
		{name: "key index key", path: Path{Key("customer"), Index(0), Key("name")}, want: `$["customer"][0]["name"]`},
		{name: "leading index", path: Path{Index(2), Key("id")}, want: `$[2]["id"]`},
		// Embedded quotes pass through unescaped; breadcrumb display only.
		{name: "key with quote", path: Path{Key(`sa"y`)}, want: `$["sa"y"]`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatPath(tt.path))
		})
	}
}

func TestParsePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Path
	}{
		{name: "empty", in: "", want: nil},
		{name: "dollar root", in: "$", want: nil},
		{name: "single key", in: "customer", want: Path{Key("customer")}},
		{name: "dotted", in: "customer.name", want: Path{Key("customer"), Key("name")}},
		{name: "dotted numeric is index", in: "items.0.tags", want: Path{Key("items"), Index(0), Key("tags")}},
		{name: "bracket index", in: "items[0].tags", want: Path{Key("items"), Index(0), Key("tags")}},
		{name: "quoted key", in: `tasks["build-windows"]`, want: Path{Key("tasks"), Key("build-windows")}},
		{name: "quoted numeric stays key", in: `m["0"]`, want: Path{Key("m"), Key("0")}},
		{name: "leading bracket", in: "[3]", want: Path{Index(3)}},
		{name: "underscore key", in: "_meta.version", want: Path{Key("_meta"), Key("version")}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{name: "unterminated bracket", in: "items[0"},
		{name: "negative index", in: "items[-1]"},
		{name: "non-numeric bracket", in: "items[x]"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParsePath(tt.in)
			assert.Error(t, err)
		})
	}
}
