package props

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// HasValue reports whether a value has been assigned to n.
func (n *Node) HasValue() bool {
	return n.value != nil
}

// Value returns the raw value: nil, string, bool, int or float64.
func (n *Node) Value() any {
	return n.value
}

// SetValue assigns v and notifies listeners. Integer kinds are stored as int,
// floating point kinds as float64; any other type is stored as its
// fmt.Sprint representation.
func (n *Node) SetValue(v any) {
	n.value = normalize(v)
	n.fireValueChanged()
}

// SetString assigns a string value.
func (n *Node) SetString(v string) { n.SetValue(v) }

// SetInt assigns an integer value.
func (n *Node) SetInt(v int) { n.SetValue(v) }

// SetBool assigns a boolean value.
func (n *Node) SetBool(v bool) { n.SetValue(v) }

// SetFloat assigns a floating point value.
func (n *Node) SetFloat(v float64) { n.SetValue(v) }

// StringValue returns the value converted to a string.
func (n *Node) StringValue() string {
	switch v := n.value.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return cast.ToString(v)
	}
}

// IntValue returns the value converted to an int. Floats are truncated,
// unparsable strings yield 0.
func (n *Node) IntValue() int {
	v := trimmed(n.value)
	if i, err := cast.ToIntE(v); err == nil {
		return i
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return int(f)
	}
	return 0
}

// FloatValue returns the value converted to a float64.
func (n *Node) FloatValue() float64 {
	f, _ := cast.ToFloat64E(trimmed(n.value))
	return f
}

// BoolValue returns the value converted to a bool. Numbers are true when
// non-zero; strings accept strconv.ParseBool forms and numbers.
func (n *Node) BoolValue() bool {
	v := trimmed(n.value)
	if b, err := cast.ToBoolE(v); err == nil {
		return b
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f != 0
	}
	return false
}

// trimmed strips surrounding white space from string values.
func trimmed(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// --- Path accessors ---

// GetString returns the string value at path, or def if the node does not exist.
func (n *Node) GetString(path string, def string) string {
	if c := n.Node(path, false); c != nil {
		return c.StringValue()
	}
	return def
}

// GetInt returns the int value at path, or def if the node does not exist.
func (n *Node) GetInt(path string, def int) int {
	if c := n.Node(path, false); c != nil {
		return c.IntValue()
	}
	return def
}

// GetFloat returns the float64 value at path, or def if the node does not exist.
func (n *Node) GetFloat(path string, def float64) float64 {
	if c := n.Node(path, false); c != nil {
		return c.FloatValue()
	}
	return def
}

// GetBool returns the bool value at path, or def if the node does not exist.
func (n *Node) GetBool(path string, def bool) bool {
	if c := n.Node(path, false); c != nil {
		return c.BoolValue()
	}
	return def
}

// SetValueAt creates the node at path if needed and assigns v to it.
// Panics on a malformed path.
func (n *Node) SetValueAt(path string, v any) *Node {
	c := n.Node(path, true)
	if c == nil {
		panic("props: invalid path " + strconv.Quote(path))
	}
	c.SetValue(v)
	return c
}

// normalize maps v onto the small set of stored value types.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, string, bool, int, float64:
		return x
	case int8:
		return int(x)
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint:
		return int(x)
	case uint8:
		return int(x)
	case uint16:
		return int(x)
	case uint32:
		return int(x)
	case uint64:
		if x > math.MaxInt {
			return float64(x)
		}
		return int(x)
	case float32:
		return float64(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
