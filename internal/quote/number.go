package quote

import "strconv"

// Number is a float that may be unset.
type Number struct {
	value float64
	set   bool
}

// Some returns a set Number.
func Some(v float64) Number {
	return Number{value: v, set: true}
}

// Value returns the number and whether it is set.
func (n Number) Value() (float64, bool) {
	return n.value, n.set
}

// IsSet reports whether the number holds a value.
func (n Number) IsSet() bool {
	return n.set
}

// Format renders the number with prec decimals, or the shortest exact form
// when prec is negative. Unset numbers render as the placeholder.
func (n Number) Format(prec int) string {
	if !n.set {
		return Placeholder
	}
	return strconv.FormatFloat(n.value, 'f', prec, 64)
}

func (n Number) String() string {
	return n.Format(-1)
}
