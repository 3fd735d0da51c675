package record

import (
	"bytes"
	"encoding/json"
	"maps"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// Record is a read-only view over one JSON object returned by the API.
//
// The zero Record is valid and has no fields.
type Record struct {
	fields map[string]any
	raw    json.RawMessage
}

var nullJSON = []byte("null")

// Materialize wraps a single JSON object. A JSON null yields the zero Record.
// The shape of the object is never validated.
func Materialize(data []byte) (Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullJSON) {
		return Record{}, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Record{}, errors.Wrap(err, "decode record")
	}

	return Record{fields: fields, raw: slices.Clone(trimmed)}, nil
}

// MaterializeList wraps every element of a JSON array of objects.
// A JSON null yields a nil slice.
func MaterializeList(data []byte) ([]Record, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(err, "decode record list")
	}
	if items == nil {
		return nil, nil
	}

	out := make([]Record, 0, len(items))
	for i, item := range items {
		r, err := Materialize(item)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out = append(out, r)
	}

	return out, nil
}

// MaterializeMap wraps every value of a JSON object whose values are objects,
// such as the per-team status map returned for an event.
func MaterializeMap(data []byte) (map[string]Record, error) {
	var items map[string]json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(err, "decode record map")
	}
	if items == nil {
		return nil, nil
	}

	out := make(map[string]Record, len(items))
	for k, item := range items {
		r, err := Materialize(item)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", k)
		}
		out[k] = r
	}

	return out, nil
}

// FromMap builds a Record from already decoded fields.
func FromMap(fields map[string]any) (Record, error) {
	if fields == nil {
		return Record{}, nil
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return Record{}, errors.Wrap(err, "encode record")
	}

	return Materialize(raw)
}

// Get returns the value stored under key exactly as decoded from JSON:
// string, float64, bool, nil, []any or map[string]any. Nested containers are
// copies, so mutating them does not affect the record.
func (r Record) Get(key string) (any, error) {
	v, ok := r.fields[key]
	if !ok {
		return nil, &MissingFieldError{Key: key, Name: key}
	}
	return clone(v), nil
}

// Attr is the field-style accessor. The name may be the JSON key itself or
// its exported Go spelling, so Attr("StateProv") reads "state_prov".
// An absent field fails with the same MissingFieldError Get would return.
func (r Record) Attr(name string) (any, error) {
	key, ok := r.resolve(name)
	if !ok {
		return nil, &MissingFieldError{Key: key, Name: name}
	}
	return clone(r.fields[key]), nil
}

func (r Record) resolve(name string) (string, bool) {
	if _, ok := r.fields[name]; ok {
		return name, true
	}

	snake := SnakeCase(name)
	if _, ok := r.fields[snake]; ok {
		return snake, true
	}

	lower := strings.ToLower(name)
	if _, ok := r.fields[lower]; ok {
		return lower, true
	}

	return snake, false
}

// Has reports whether key is present. A present key holding JSON null counts.
func (r Record) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Keys returns the present keys in sorted order.
func (r Record) Keys() []string {
	return slices.Sorted(maps.Keys(r.fields))
}

// Len returns the number of present keys.
func (r Record) Len() int {
	return len(r.fields)
}

// IsZero reports whether r was produced from JSON null or never initialised.
func (r Record) IsZero() bool {
	return r.fields == nil
}

// Raw returns the exact JSON bytes the record was decoded from.
func (r Record) Raw() json.RawMessage {
	if r.raw == nil {
		return json.RawMessage(slices.Clone(nullJSON))
	}
	return slices.Clone(r.raw)
}

// Map returns a deep copy of the decoded fields.
func (r Record) Map() map[string]any {
	if r.fields == nil {
		return nil
	}
	//nolint:forcetypeassert // clone preserves the dynamic type
	return clone(r.fields).(map[string]any)
}

// Decode unmarshals the original JSON into v, for callers that prefer their own structs.
func (r Record) Decode(v any) error {
	return errors.Wrap(json.Unmarshal(r.Raw(), v), "decode record into value")
}

// MarshalJSON returns the original bytes unchanged.
func (r Record) MarshalJSON() ([]byte, error) {
	return r.Raw(), nil
}

// UnmarshalJSON lets a Record be embedded in caller-defined structs.
func (r *Record) UnmarshalJSON(data []byte) error {
	decoded, err := Materialize(data)
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}

func (r Record) String() string {
	return string(r.Raw())
}

// Str returns the string stored under key.
func (r Record) Str(key string) (string, error) {
	return Value[string](r, key)
}

// Bool returns the boolean stored under key.
func (r Record) Bool(key string) (bool, error) {
	return Value[bool](r, key)
}

// Float returns the number stored under key.
func (r Record) Float(key string) (float64, error) {
	return Value[float64](r, key)
}

// Int returns the number stored under key, which must be integral and fit
// in an int.
func (r Record) Int(key string) (int, error) {
	f, err := r.Float(key)
	if err != nil {
		return 0, err
	}
	// -math.MinInt is 2^63 (or 2^31), exact as a float64 unlike math.MaxInt.
	if f != math.Trunc(f) || f < math.MinInt || f >= -math.MinInt {
		return 0, &TypeError{Key: key, Want: "int", Got: f}
	}
	return int(f), nil
}

// Nested wraps the object stored under key as a Record.
// A JSON null value yields the zero Record. The nested record's Raw is
// re-encoded from the decoded value, so key order may differ from the wire.
func (r Record) Nested(key string) (Record, error) {
	v, err := r.Get(key)
	if err != nil {
		return Record{}, err
	}
	if v == nil {
		return Record{}, nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return Record{}, &TypeError{Key: key, Want: "object", Got: v}
	}
	return FromMap(m)
}

// NestedList wraps each object of the array stored under key.
func (r Record) NestedList(key string) ([]Record, error) {
	v, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, &TypeError{Key: key, Want: "array", Got: v}
	}

	out := make([]Record, 0, len(items))
	for _, item := range items {
		if item == nil {
			out = append(out, Record{})
			continue
		}
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &TypeError{Key: key, Want: "array of objects", Got: item}
		}
		nested, err := FromMap(m)
		if err != nil {
			return nil, err
		}
		out = append(out, nested)
	}

	return out, nil
}

// Value returns the field under key asserted to T.
func Value[T any](r Record, key string) (T, error) {
	var zero T

	v, err := r.Get(key)
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, &TypeError{Key: key, Want: typeName[T](), Got: v}
	}
	return t, nil
}

func typeName[T any]() string {
	var zero T
	switch any(zero).(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "value"
	}
}

// SnakeCase converts an exported Go identifier to the API's snake_case key
// spelling: "TeamNumber" becomes "team_number" and "CityURL" becomes "city_url".
func SnakeCase(name string) string {
	runes := []rune(name)

	var b strings.Builder
	b.Grow(len(name) + 4)

	for i, c := range runes {
		if unicode.IsUpper(c) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(c))
			continue
		}
		b.WriteRune(c)
	}

	return b.String()
}

func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = clone(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = clone(item)
		}
		return out
	default:
		return v
	}
}
