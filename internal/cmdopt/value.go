package cmdopt

// ValueKind discriminates the states an option value can be in.
type ValueKind int

const (
	Absent ValueKind = iota
	Bool
	Count
	Single
	Many
)

func (k ValueKind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Bool:
		return "bool"
	case Count:
		return "count"
	case Single:
		return "single"
	case Many:
		return "many"
	default:
		return "unknown"
	}
}

// Value is the tagged union holding one option's current state. The zero
// value is Absent.
type Value struct {
	kind ValueKind
	b    bool
	n    int
	s    string
	list []string
}

// Kind returns the variant currently held.
func (v Value) Kind() ValueKind { return v.kind }

// Active reports whether the value would appear on the rendered command
// line: true flags, positive counts, and non-empty strings or lists.
func (v Value) Active() bool {
	switch v.kind {
	case Bool:
		return v.b
	case Count:
		return v.n > 0
	case Single:
		return v.s != ""
	case Many:
		return len(v.list) > 0
	default:
		return false
	}
}

// Bool returns the flag state. False for any non-Bool variant except a
// positive Count.
func (v Value) Bool() bool {
	switch v.kind {
	case Bool:
		return v.b
	case Count:
		return v.n > 0
	default:
		return false
	}
}

// Count returns the occurrence count for a repeatable flag. A plain Bool
// counts as one when set.
func (v Value) Count() int {
	switch v.kind {
	case Count:
		return v.n
	case Bool:
		if v.b {
			return 1
		}
	}
	return 0
}

// Str returns the scalar value, or the first element of a list.
func (v Value) Str() string {
	switch v.kind {
	case Single:
		return v.s
	case Many:
		if len(v.list) > 0 {
			return v.list[0]
		}
	}
	return ""
}

// Strings returns all values in input order.
func (v Value) Strings() []string {
	switch v.kind {
	case Single:
		if v.s == "" {
			return nil
		}
		return []string{v.s}
	case Many:
		out := make([]string, len(v.list))
		copy(out, v.list)
		return out
	}
	return nil
}

func boolValue(b bool) Value      { return Value{kind: Bool, b: b} }
func countValue(n int) Value      { return Value{kind: Count, n: n} }
func singleValue(s string) Value  { return Value{kind: Single, s: s} }
func manyValue(ss []string) Value { return Value{kind: Many, list: ss} }
