// Package filter selects records with expr-lang expressions such as
//
//	team_number > 1000 and icontains(city, "falls")
//
// Record fields are variables and fields absent from a record evaluate to
// nil. Besides the expr builtins (lower, hasPrefix, len and so on) three
// names are defined: icontains(s, sub) for case-insensitive matching,
// hasField(name) and mapKey, the key of the entry being tested when
// filtering a keyed listing.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/frc1418/go-tba/record"
)

// CompilationError indicates an expression could not be compiled.
type CompilationError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// Filter is a compiled boolean expression. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles expression. The result must be boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	env := make(map[string]any, 4)
	addHelpers(env, record.Record{}, "")

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: "failed to compile expression", Err: err}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match reports whether r satisfies the filter. Evaluation errors, such as
// comparing a missing field with a number, count as no match.
func (f *Filter) Match(r record.Record) bool {
	return f.match(r, "")
}

func (f *Filter) match(r record.Record, mapKey string) bool {
	env := r.Map()
	if env == nil {
		env = make(map[string]any, 4)
	}
	// Helpers shadow fields of the same name.
	addHelpers(env, r, mapKey)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	ok, _ := result.(bool)
	return ok
}

// Records returns the records that match, in order.
func (f *Filter) Records(records []record.Record) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// RecordMap returns the entries that match. The entry key is available to
// the expression as mapKey.
func (f *Filter) RecordMap(records map[string]record.Record) map[string]record.Record {
	out := make(map[string]record.Record, len(records))
	for k, r := range records {
		if f.match(r, k) {
			out[k] = r
		}
	}
	return out
}

// Strings returns the keys that match; each is bound to mapKey.
func (f *Filter) Strings(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if f.match(record.Record{}, k) {
			out = append(out, k)
		}
	}
	return out
}

func addHelpers(env map[string]any, r record.Record, mapKey string) {
	env["icontains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasField"] = r.Has
	env["mapKey"] = mapKey
}
