// Package cel evaluates read-only CEL query expressions against a document.
// The document is bound to the variable "_", so expressions look like
// "_.items.filter(x, x.available)" or "items[0].tags" with the implicit
// root.
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
)

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the standard extension libraries.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Evaluate compiles expr and evaluates it with data bound to "_". The
// result is converted back to plain Go values.
func (e *Evaluator) Evaluate(expr string, data interface{}) (interface{}, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	result, _, err := prg.Eval(map[string]interface{}{"_": data})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}
	return toGo(result), nil
}

// toGo converts CEL values to Go native types recursively.
func toGo(val ref.Val) interface{} {
	if val == nil {
		return nil
	}
	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	case types.Null:
		return nil
	}

	switch v := val.Value().(type) {
	case []ref.Val:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = toGo(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = anyToGo(e)
		}
		return out
	case map[ref.Val]ref.Val:
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[fmt.Sprintf("%v", k.Value())] = toGo(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = anyToGo(e)
		}
		return out
	default:
		return v
	}
}

func anyToGo(v interface{}) interface{} {
	if rv, ok := v.(ref.Val); ok {
		return toGo(rv)
	}
	switch t := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = anyToGo(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = anyToGo(e)
		}
		return out
	default:
		return v
	}
}
