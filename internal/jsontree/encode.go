package jsontree

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Indent is the indentation unit used by EncodeIndent.
const Indent = "  "

// Encode serializes v as compact JSON.
func Encode(v Value) string {
	var b strings.Builder
	writeValue(&b, v, "", "", false)
	return b.String()
}

// EncodeIndent serializes v as pretty-printed JSON with two-space
// indentation, the form committed back to the document store.
func EncodeIndent(v Value) string {
	return EncodeIndentWith(v, Indent)
}

// EncodeIndentWith pretty-prints with a caller-chosen indentation unit.
func EncodeIndentWith(v Value, unit string) string {
	var b strings.Builder
	writeValue(&b, v, "", unit, true)
	return b.String()
}

func writeValue(b *strings.Builder, v Value, prefix, unit string, pretty bool) {
	switch t := v.(type) {
	case nil, Null:
		b.WriteString("null")
	case Bool:
		if t {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Number:
		b.WriteString(string(t))
	case String:
		b.WriteString(quoteString(string(t)))
	case *Array:
		writeArray(b, t, prefix, unit, pretty)
	case *Object:
		writeObject(b, t, prefix, unit, pretty)
	}
}

func writeArray(b *strings.Builder, a *Array, prefix, unit string, pretty bool) {
	if len(a.Elems) == 0 {
		b.WriteString("[]")
		return
	}
	inner := prefix + unit
	b.WriteByte('[')
	for i, e := range a.Elems {
		if i > 0 {
			b.WriteByte(',')
		}
		if pretty {
			b.WriteByte('\n')
			b.WriteString(inner)
		}
		writeValue(b, e, inner, unit, pretty)
	}
	if pretty {
		b.WriteByte('\n')
		b.WriteString(prefix)
	}
	b.WriteByte(']')
}

func writeObject(b *strings.Builder, o *Object, prefix, unit string, pretty bool) {
	if len(o.members) == 0 {
		b.WriteString("{}")
		return
	}
	inner := prefix + unit
	b.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			b.WriteByte(',')
		}
		if pretty {
			b.WriteByte('\n')
			b.WriteString(inner)
		}
		b.WriteString(quoteString(m.Key))
		b.WriteByte(':')
		if pretty {
			b.WriteByte(' ')
		}
		writeValue(b, m.Value, inner, unit, pretty)
	}
	if pretty {
		b.WriteByte('\n')
		b.WriteString(prefix)
	}
	b.WriteByte('}')
}

// quoteString produces a JSON string literal with the escaping rules of
// encoding/json so committed documents stay interoperable.
func quoteString(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(out)
}

func (n Number) asInterface() interface{} {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i
	}
	f, _ := strconv.ParseFloat(string(n), 64)
	return f
}

func numberFromFloat(f float64) Number {
	if f == float64(int64(f)) {
		return Number(strconv.FormatInt(int64(f), 10))
	}
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

func numberFromInt(i int64) Number { return Number(strconv.FormatInt(i, 10)) }

func numberFromUint(u uint64) Number { return Number(strconv.FormatUint(u, 10)) }

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
