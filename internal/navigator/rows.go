// Package navigator flattens document nodes into display rows, collapses
// rows back into editable draft text, and resolves path or CEL expressions
// into a node of the tree.
package navigator

import (
	"github.com/oakwood-commons/jed/internal/jsontree"
)

// RowType tags what a row's value is. Container rows ("array"/"object") are
// navigated into rather than edited inline, so draft normalization drops
// them.
type RowType string

const (
	RowNull   RowType = "null"
	RowBool   RowType = "bool"
	RowNumber RowType = "number"
	RowString RowType = "string"
	RowArray  RowType = "array"
	RowObject RowType = "object"
)

// IsContainer reports whether the row holds a nested array or object.
func (t RowType) IsContainer() bool { return t == RowArray || t == RowObject }

// NodeRow is one flattened field of a node's content.
type NodeRow struct {
	Key    string
	HasKey bool
	Value  jsontree.Value
	Type   RowType
}

// RowTypeFor maps a value to its row tag.
func RowTypeFor(v jsontree.Value) RowType {
	switch v.(type) {
	case nil, jsontree.Null:
		return RowNull
	case jsontree.Bool:
		return RowBool
	case jsontree.Number:
		return RowNumber
	case jsontree.String:
		return RowString
	case *jsontree.Array:
		return RowArray
	default:
		return RowObject
	}
}

// Rows flattens a node for display and editing: an object becomes one row
// per member in insertion order; anything else becomes a single keyless row.
func Rows(node jsontree.Value) []NodeRow {
	if obj, ok := node.(*jsontree.Object); ok {
		rows := make([]NodeRow, 0, obj.Len())
		for _, m := range obj.Members() {
			rows = append(rows, NodeRow{
				Key:    m.Key,
				HasKey: true,
				Value:  m.Value,
				Type:   RowTypeFor(m.Value),
			})
		}
		return rows
	}
	return []NodeRow{{Value: node, Type: RowTypeFor(node)}}
}

// Normalize collapses a node's rows into the editable draft text.
//
// Empty rows yield "{}". A single keyless row is rendered as the value's raw
// textual form: a string value is emitted verbatim, without JSON quoting, so
// a node holding a plain string produces draft text that does not re-parse
// as JSON. That matches the observed editor behavior and is deliberately not
// corrected here; the session surfaces the resulting parse error.
//
// Otherwise the keyed scalar rows are gathered into an object in row order
// and pretty-printed; container rows and keyless rows are dropped (nested
// structure is edited by navigating into it, and it survives a save through
// the shallow merge).
func Normalize(rows []NodeRow) string {
	if len(rows) == 0 {
		return "{}"
	}
	if len(rows) == 1 && !rows[0].HasKey {
		return rawText(rows[0].Value)
	}
	obj := jsontree.NewObject()
	for _, r := range rows {
		if !r.HasKey || r.Type.IsContainer() {
			continue
		}
		obj.Set(r.Key, r.Value)
	}
	return jsontree.EncodeIndent(obj)
}

// rawText renders a scalar the way it reads, not as a JSON literal: strings
// lose their quotes, everything else keeps its JSON form.
func rawText(v jsontree.Value) string {
	if s, ok := v.(jsontree.String); ok {
		return string(s)
	}
	return jsontree.EncodeIndent(v)
}
