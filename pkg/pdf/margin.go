package pdf

import errs "github.com/matzehuels/chromepdf/pkg/errors"

// Margin holds the four page margins as CSS lengths. A nil side is left to
// the service default and omitted from the payload.
type Margin struct {
	Top    *string
	Right  *string
	Bottom *string
	Left   *string
}

// UniformMargin sets all four sides to v.
func UniformMargin(v string) Margin {
	return Margin{Top: String(v), Right: String(v), Bottom: String(v), Left: String(v)}
}

// SymmetricMargin sets top and bottom to vertical, left and right to horizontal.
func SymmetricMargin(vertical, horizontal string) Margin {
	return Margin{Top: String(vertical), Right: String(horizontal), Bottom: String(vertical), Left: String(horizontal)}
}

// TopHorizontalBottomMargin sets top and bottom individually and both left and
// right to horizontal.
func TopHorizontalBottomMargin(top, horizontal, bottom string) Margin {
	return Margin{Top: String(top), Right: String(horizontal), Bottom: String(bottom), Left: String(horizontal)}
}

// EdgeMargin sets every side independently, in CSS order.
func EdgeMargin(top, right, bottom, left string) Margin {
	return Margin{Top: String(top), Right: String(right), Bottom: String(bottom), Left: String(left)}
}

// ParseMargin interprets 1 to 4 values with CSS margin shorthand semantics:
//
//	1 value:  all sides
//	2 values: top/bottom, left/right
//	3 values: top, left/right, bottom
//	4 values: top, right, bottom, left
//
// The number of values decides the interpretation. Each value is a whole CSS
// length and is passed through unchanged, so "calc(1cm + 2px)" is one value.
func ParseMargin(values ...string) (Margin, error) {
	switch len(values) {
	case 1:
		return UniformMargin(values[0]), nil
	case 2:
		return SymmetricMargin(values[0], values[1]), nil
	case 3:
		return TopHorizontalBottomMargin(values[0], values[1], values[2]), nil
	case 4:
		return EdgeMargin(values[0], values[1], values[2], values[3]), nil
	default:
		return Margin{}, errs.New(errs.ErrCodeInvalidMargin, "margin takes 1 to 4 values, got %d", len(values))
	}
}

// IsZero reports whether no side would be emitted.
func (m Margin) IsZero() bool {
	return len(m.sides()) == 0
}

// sides returns the emitted sides keyed by their wire names. Nil and empty
// values are dropped individually.
func (m Margin) sides() map[string]any {
	out := make(map[string]any, 4)
	for _, s := range []struct {
		key string
		val *string
	}{
		{"top", m.Top},
		{"right", m.Right},
		{"bottom", m.Bottom},
		{"left", m.Left},
	} {
		if s.val != nil && *s.val != "" {
			out[s.key] = *s.val
		}
	}
	return out
}
