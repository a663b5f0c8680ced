// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ValueKind discriminates the shapes a custom field value can take.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
	KindList
)

// Value is a tagged union over the shapes allowed in an entry's custom
// fields: string, number, boolean, or list of strings. The zero Value is the
// empty string.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []string
}

// StringValue returns a string-kinded Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue returns a number-kinded Value.
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }

// BoolValue returns a boolean-kinded Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ListValue returns a list-kinded Value holding the given elements.
func ListValue(elems ...string) Value {
	return Value{kind: KindList, list: append([]string(nil), elems...)}
}

// Kind reports which shape the value holds.
func (v Value) Kind() ValueKind { return v.kind }

// String renders the value for display. Lists are comma-joined.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		return strings.Join(v.list, ", ")
	default:
		return v.str
	}
}

// Strings returns the value flattened to its string forms: one element for a
// scalar, one per element for a list. Searchable-text building folds custom
// fields in through this.
func (v Value) Strings() []string {
	if v.kind == KindList {
		return append([]string(nil), v.list...)
	}
	return []string{v.String()}
}

// List returns the elements of a list-kinded value, or nil for scalars.
func (v Value) List() []string {
	if v.kind != KindList {
		return nil
	}
	return append([]string(nil), v.list...)
}

// fromAny converts a decoded JSON/YAML value into a Value. List elements are
// stringified individually so mixed-type lists survive as lists of strings.
func fromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case string:
		return StringValue(t), nil
	case bool:
		return BoolValue(t), nil
	case float64:
		return NumberValue(t), nil
	case int:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case []any:
		elems := make([]string, 0, len(t))
		for _, e := range t {
			ev, err := fromAny(e)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, ev.String())
		}
		return Value{kind: KindList, list: elems}, nil
	case nil:
		return StringValue(""), nil
	default:
		return Value{}, fmt.Errorf("unsupported custom field type %T", raw)
	}
}

// MarshalJSON writes the underlying value in its natural JSON shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		if v.list == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.str)
	}
}

// UnmarshalJSON accepts a string, number, boolean, or array.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML writes the underlying value in its natural YAML shape.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindNumber:
		return v.num, nil
	case KindBool:
		return v.b, nil
	case KindList:
		return v.list, nil
	default:
		return v.str, nil
	}
}

// UnmarshalYAML accepts a scalar or sequence node.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
