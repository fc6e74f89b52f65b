// Package filterexpr compiles CEL filter expressions and order_by clauses into
// queries that run against in-memory records.
package filterexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
)

// Msg wraps request DTOs that expose filter and order_by raw inputs.
type Msg interface {
	GetFilter() string
	GetOrderBy() string
}

// ValueKind describes the type of a record field.
type ValueKind string

const (
	KindString     ValueKind = "string"
	KindNumber     ValueKind = "number"
	KindBool       ValueKind = "bool"
	KindStringList ValueKind = "string_list"
)

// Record is the activation a filter is evaluated against: field name to value.
type Record map[string]any

// ResourceSchema declares the fields a filter may reference and the keys an
// order_by clause may use.
type ResourceSchema struct {
	Fields map[string]ValueKind
	Order  OrderSchema
}

// Query is a compiled filter plus ordering.
type Query struct {
	program cel.Program
	Order   Order
}

// Compile parses the filter and order_by of msg against schema.
func Compile[M Msg](msg M, schema ResourceSchema) (*Query, error) {
	program, err := compileFilter(msg.GetFilter(), schema.Fields)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	order, err := ParseOrder(msg.GetOrderBy(), schema.Order)
	if err != nil {
		return nil, fmt.Errorf("order_by: %w", err)
	}
	return &Query{program: program, Order: order}, nil
}

// Match reports whether rec satisfies the filter. A query without a filter
// matches everything.
func (q *Query) Match(rec Record) (bool, error) {
	if q.program == nil {
		return true, nil
	}
	out, _, err := q.program.Eval(map[string]any(rec))
	if err != nil {
		return false, fmt.Errorf("evaluate filter: %w", err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter produced %T, want bool", out.Value())
	}
	return matched, nil
}

func compileFilter(filter string, fields map[string]ValueKind) (cel.Program, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}
	if len(fields) == 0 {
		return nil, errors.New("filter schema has no fields defined")
	}

	env, err := buildEnv(fields)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter must be a boolean expression, got %s", ast.OutputType())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}
	return program, nil
}

func buildEnv(fields map[string]ValueKind) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields)+1)
	for name, kind := range fields {
		celType, err := celTypeForKind(kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

func celTypeForKind(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindNumber:
		return cel.DoubleType, nil
	case KindBool:
		return cel.BoolType, nil
	case KindStringList:
		return cel.ListType(cel.StringType), nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}
