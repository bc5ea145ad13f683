package pdf

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/chromepdf/pkg/errors"
)

func sidesOf(m Margin) [4]string {
	deref := func(p *string) string {
		if p == nil {
			return "<nil>"
		}
		return *p
	}
	return [4]string{deref(m.Top), deref(m.Right), deref(m.Bottom), deref(m.Left)}
}

func TestParseMargin(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   [4]string // top, right, bottom, left
	}{
		{"one value", []string{"1cm"}, [4]string{"1cm", "1cm", "1cm", "1cm"}},
		{"two values", []string{"1cm", "2cm"}, [4]string{"1cm", "2cm", "1cm", "2cm"}},
		{"three values", []string{"1cm", "2cm", "3cm"}, [4]string{"1cm", "2cm", "3cm", "2cm"}},
		{"four values", []string{"1cm", "2cm", "3cm", "4cm"}, [4]string{"1cm", "2cm", "3cm", "4cm"}},
		{"one value with spaces", []string{"calc(1cm + 2px)"}, [4]string{"calc(1cm + 2px)", "calc(1cm + 2px)", "calc(1cm + 2px)", "calc(1cm + 2px)"}},
		{"two values with spaces", []string{"calc(1cm + 2px)", "2cm"}, [4]string{"calc(1cm + 2px)", "2cm", "calc(1cm + 2px)", "2cm"}},
		{"passes through unvalidated", []string{"banana"}, [4]string{"banana", "banana", "banana", "banana"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMargin(tt.values...)
			if err != nil {
				t.Fatalf("ParseMargin(%q) error: %v", tt.values, err)
			}
			if diff := cmp.Diff(tt.want, sidesOf(m)); diff != "" {
				t.Errorf("ParseMargin(%q) mismatch (-want +got):\n%s", tt.values, diff)
			}
		})
	}
}

func TestParseMarginArity(t *testing.T) {
	for _, values := range [][]string{nil, {}, {"1", "2", "3", "4", "5"}} {
		_, err := ParseMargin(values...)
		if err == nil {
			t.Errorf("ParseMargin(%q) should fail", values)
			continue
		}
		if !errs.Is(err, errs.ErrCodeInvalidMargin) {
			t.Errorf("ParseMargin(%q) error code = %q, want %q", values, errs.GetCode(err), errs.ErrCodeInvalidMargin)
		}
	}
}

func TestMarginConstructors(t *testing.T) {
	tests := []struct {
		name string
		m    Margin
		want [4]string
	}{
		{"uniform", UniformMargin("5mm"), [4]string{"5mm", "5mm", "5mm", "5mm"}},
		{"symmetric", SymmetricMargin("1in", "2in"), [4]string{"1in", "2in", "1in", "2in"}},
		{"top horizontal bottom", TopHorizontalBottomMargin("1px", "2px", "3px"), [4]string{"1px", "2px", "3px", "2px"}},
		{"edges", EdgeMargin("a", "b", "c", "d"), [4]string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, sidesOf(tt.m)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarginSidesFiltering(t *testing.T) {
	tests := []struct {
		name string
		m    Margin
		want map[string]any
	}{
		{"empty", Margin{}, map[string]any{}},
		{"only empty strings", Margin{Top: String(""), Left: String("")}, map[string]any{}},
		{"mixed", Margin{Top: String("1cm"), Right: String(""), Left: String("2cm")}, map[string]any{"top": "1cm", "left": "2cm"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.sides()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("sides() mismatch (-want +got):\n%s", diff)
			}
			if tt.m.IsZero() != (len(tt.want) == 0) {
				t.Errorf("IsZero() = %v, want %v", tt.m.IsZero(), len(tt.want) == 0)
			}
		})
	}
}
