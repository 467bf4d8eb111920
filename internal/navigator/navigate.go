package navigator

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/jed/internal/cel"
	"github.com/oakwood-commons/jed/internal/jsontree"
)

// Navigate resolves an expression to a node of the tree. Plain structural
// paths ("customer.orders[0]") walk the tree directly and report misses;
// anything needing CEL (function calls, comparisons, literals) is evaluated
// read-only against a plain-data copy of the document, so evaluation can
// never mutate the tree. An empty expression, "$" or "_" returns the root.
func Navigate(root jsontree.Value, expr string) (jsontree.Value, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" || trimmed == "$" || trimmed == "_" {
		return root, nil
	}

	if !isComplexCEL(trimmed) {
		path, err := jsontree.ParsePath(trimmed)
		if err != nil {
			return nil, err
		}
		node, ok := jsontree.Get(root, path)
		if !ok {
			return nil, fmt.Errorf("no value at %s", jsontree.FormatPath(path))
		}
		return node, nil
	}

	eval, err := cel.NewEvaluator()
	if err != nil {
		return nil, err
	}
	result, err := eval.Evaluate(trimmed, jsontree.ToInterface(root))
	if err != nil {
		return nil, fmt.Errorf("CEL evaluation error: %w", err)
	}
	return jsontree.FromInterface(result), nil
}

// isComplexCEL reports whether the expression needs full CEL evaluation
// instead of structural navigation.
func isComplexCEL(expr string) bool {
	if strings.HasPrefix(expr, `"`) || strings.HasPrefix(expr, "{") {
		return true
	}
	if strings.HasPrefix(expr, "_.") || strings.HasPrefix(expr, "_[") {
		return true
	}
	// items[0] is navigation; [1, 2] is an array literal.
	if strings.HasPrefix(expr, "[") {
		if end := strings.IndexByte(expr, ']'); end > 0 {
			inside := expr[1:end]
			if !isBareIndex(inside) && !isQuotedKey(inside) {
				return true
			}
		}
	}
	if strings.Contains(expr, "(") && strings.Contains(expr, ")") {
		return true
	}
	for _, op := range []string{"==", "!=", "<=", ">=", "<", ">", "&&", "||"} {
		if strings.Contains(expr, op) {
			return true
		}
	}
	return false
}

func isBareIndex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isQuotedKey(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}
