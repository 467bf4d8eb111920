package jsontree

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: either an object key or an array index.
// The set of implementations is closed: Key and Index.
type Segment interface {
	isSegment()
}

// Key addresses an object member.
type Key string

func (Key) isSegment() {}

// Index addresses an array element. Indices are non-negative.
type Index int

func (Index) isSegment() {}

// Path locates a value inside a tree. The empty path addresses the root.
type Path []Segment

// FormatPath renders a path for display: "$" for the root, then one bracket
// per segment with indices bare and keys double-quoted, e.g.
// $["customer"][0]["name"]. Embedded quotes in keys are not escaped; the
// output is a breadcrumb, not a parseable serialization.
func FormatPath(path Path) string {
	if len(path) == 0 {
		return "$"
	}
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range path {
		switch s := seg.(type) {
		case Key:
			b.WriteString(`["`)
			b.WriteString(string(s))
			b.WriteString(`"]`)
		case Index:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(int(s)))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// ParsePath reads dotted/bracket notation into a Path. Supported forms:
// "customer.orders[0].id", "items.0.tags", `tasks["build-windows"]`.
// Bare numeric segments index arrays; quoted bracket segments are always
// keys.
func ParsePath(input string) (Path, error) {
	input = strings.TrimSpace(input)
	if input == "" || input == "$" {
		return nil, nil
	}
	input = strings.TrimPrefix(input, "$")

	var path Path
	var current strings.Builder
	flush := func(numericIsIndex bool) {
		if current.Len() == 0 {
			return
		}
		seg := current.String()
		current.Reset()
		if numericIsIndex {
			if n, err := strconv.Atoi(seg); err == nil && n >= 0 {
				path = append(path, Index(n))
				return
			}
		}
		path = append(path, Key(seg))
	}

	for i := 0; i < len(input); i++ {
		switch ch := input[i]; ch {
		case '.':
			flush(true)
		case '[':
			flush(true)
			end := strings.IndexByte(input[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated '[' at offset %d", i)
			}
			seg := input[i+1 : i+end]
			switch {
			case strings.HasPrefix(seg, `"`) && strings.HasSuffix(seg, `"`) && len(seg) >= 2:
				path = append(path, Key(seg[1:len(seg)-1]))
			default:
				n, err := strconv.Atoi(seg)
				if err != nil || n < 0 {
					return nil, fmt.Errorf("invalid array index %q", seg)
				}
				path = append(path, Index(n))
			}
			i += end
		default:
			current.WriteByte(ch)
		}
	}
	flush(true)
	return path, nil
}
