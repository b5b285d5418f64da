package uritemplate

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Kind tags the shape of a Value.
type Kind int

const (
	// KindAbsent marks an unbound variable.
	KindAbsent Kind = iota
	// KindScalar is a single string.
	KindScalar
	// KindList is an ordered list of strings.
	KindList
	// KindMap is an ordered list of key/value pairs.
	KindMap
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Pair is one entry of a map value.
type Pair struct {
	Key   string
	Value string
}

// Value is a variable binding: absent, a scalar, a list, or a map.
// The zero Value is absent.
type Value struct {
	kind   Kind
	scalar string
	items  []string
	pairs  []Pair
}

// Absent returns the unbound value.
func Absent() Value { return Value{} }

// Scalar returns a scalar value.
func Scalar(s string) Value { return Value{kind: KindScalar, scalar: s} }

// List returns a list value holding a copy of items.
func List(items ...string) Value {
	return Value{kind: KindList, items: append([]string{}, items...)}
}

// Map returns a map value holding a copy of pairs in the given order.
func Map(pairs ...Pair) Value {
	return Value{kind: KindMap, pairs: append([]Pair{}, pairs...)}
}

// Kind returns the shape of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is unbound.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// String returns the scalar text, or "" for other kinds.
func (v Value) String() string { return v.scalar }

// Items returns the list elements, or nil for other kinds.
func (v Value) Items() []string { return v.items }

// Pairs returns the map entries, or nil for other kinds.
func (v Value) Pairs() []Pair { return v.pairs }

// Lookup returns the last value stored under key in a map value.
func (v Value) Lookup(key string) (string, bool) {
	for i := len(v.pairs) - 1; i >= 0; i-- {
		if v.pairs[i].Key == key {
			return v.pairs[i].Value, true
		}
	}
	return "", false
}

// Any converts v to plain Go data: nil, string, []string or map[string]string.
// Duplicate map keys collapse last-wins.
func (v Value) Any() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindList:
		return v.items
	case KindMap:
		m := make(map[string]string, len(v.pairs))
		for _, p := range v.pairs {
			m[p.Key] = p.Value
		}
		return m
	default:
		return nil
	}
}

// ValueOf coerces a Go value into a Value.
//
// Accepts:
//   - nil: absent
//   - Value: used directly
//   - string, bool, integers, floats, fmt.Stringer: scalar
//   - []string, []any: list (elements coerced to text)
//   - []Pair: map in the given order
//   - map[string]string, map[string]any: map with keys in sorted order
//   - []byte: scalar
//   - any other slice or array: list (elements coerced to text)
//   - any other map: map with keys coerced to text, in sorted order
//
// Anything else is formatted with fmt.Sprint as a scalar.
func ValueOf(x any) Value {
	switch val := x.(type) {
	case nil:
		return Absent()
	case Value:
		return val
	case []string:
		return List(val...)
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = toText(item)
		}
		return List(items...)
	case []Pair:
		return Map(val...)
	case map[string]string:
		pairs := make([]Pair, 0, len(val))
		for _, k := range sortedKeys(val) {
			pairs = append(pairs, Pair{Key: k, Value: val[k]})
		}
		return Map(pairs...)
	case map[string]any:
		pairs := make([]Pair, 0, len(val))
		for _, k := range sortedKeys(val) {
			pairs = append(pairs, Pair{Key: k, Value: toText(val[k])})
		}
		return Map(pairs...)
	case []byte:
		return Scalar(string(val))
	default:
		return reflectValue(x)
	}
}

// reflectValue covers typed slices, arrays and maps such as []int or
// map[string]int.
func reflectValue(x any) Value {
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]string, rv.Len())
		for i := range items {
			items[i] = toText(rv.Index(i).Interface())
		}
		return List(items...)
	case reflect.Map:
		pairs := make([]Pair, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			pairs = append(pairs, Pair{Key: toText(iter.Key().Interface()), Value: toText(iter.Value().Interface())})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
		return Map(pairs...)
	default:
		return Scalar(toText(x))
	}
}

func toText(x any) string {
	switch val := x.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(x)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Binding is one extracted variable.
type Binding struct {
	Name  string
	Value Value
}

// Merge folds extracted bindings into dst left to right; later bindings for
// the same name overwrite earlier ones. Absent values are recorded too so
// callers can tell "matched nothing" from "not part of the template".
func Merge(dst map[string]Value, bindings ...Binding) map[string]Value {
	if dst == nil {
		dst = make(map[string]Value, len(bindings))
	}
	for _, b := range bindings {
		dst[b.Name] = b.Value
	}
	return dst
}
