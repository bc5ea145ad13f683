package pdf

import "testing"

func TestNewDefaults(t *testing.T) {
	o := New()
	if o.Format() != "A4" {
		t.Errorf("Format() = %q, want A4", o.Format())
	}
	if !o.PrintBackground() {
		t.Error("PrintBackground() should default to true")
	}
	if o.SafeMode() {
		t.Error("SafeMode() should default to false")
	}
	if o.DisplayHeaderFooter() {
		t.Error("DisplayHeaderFooter() should default to false")
	}
	if o.Scale() != nil || o.Landscape() != nil || o.Timeout() != nil {
		t.Error("nullable fields should default to nil")
	}
	if !o.Margin().IsZero() {
		t.Error("Margin() should default to zero")
	}
}

func TestHeaderFooterDerivation(t *testing.T) {
	tests := []struct {
		name   string
		header *string
		footer *string
		want   bool
	}{
		{"header only", String("<h1>"), nil, true},
		{"footer only", nil, String("<p>"), true},
		{"both", String("<h1>"), String("<p>"), true},
		{"neither", nil, nil, false},
		{"empty strings count as set", String(""), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New().SetHeader(tt.header).SetFooter(tt.footer)
			if got := o.DisplayHeaderFooter(); got != tt.want {
				t.Errorf("DisplayHeaderFooter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeaderFooterRecomputedOnEveryChange(t *testing.T) {
	o := New().SetHeader(String("h")).SetFooter(String("f"))
	if !o.DisplayHeaderFooter() {
		t.Fatal("expected displayHeaderFooter after setting both")
	}

	o.SetHeader(nil)
	if !o.DisplayHeaderFooter() {
		t.Error("footer still set, displayHeaderFooter should stay true")
	}

	o.SetFooter(nil)
	if o.DisplayHeaderFooter() {
		t.Error("both cleared, displayHeaderFooter should be false")
	}

	o.SetFooter(String("again"))
	if !o.DisplayHeaderFooter() {
		t.Error("footer set again, displayHeaderFooter should be true")
	}
}

func TestSettersChain(t *testing.T) {
	o := New()
	got := o.SetFormat("Letter").
		SetPrintBackground(false).
		SetScale(Float(0.5)).
		SetSafeMode(true).
		SetRotation(Int(90)).
		SetTimeout(Int(3000))
	if got != o {
		t.Fatal("setters should return the receiver")
	}
	if o.Format() != "Letter" || o.PrintBackground() || !o.SafeMode() {
		t.Errorf("unexpected state: format=%q printBackground=%v safeMode=%v", o.Format(), o.PrintBackground(), o.SafeMode())
	}
	if *o.Scale() != 0.5 || *o.Rotation() != 90 || *o.Timeout() != 3000 {
		t.Error("pointer fields not stored")
	}
}

func TestSetterNilClears(t *testing.T) {
	o := New().SetWaitUntil(String("load")).SetLandscape(Bool(true))
	o.SetWaitUntil(nil).SetLandscape(nil)
	if o.WaitUntil() != nil {
		t.Error("SetWaitUntil(nil) should clear")
	}
	if o.Landscape() != nil {
		t.Error("SetLandscape(nil) should clear")
	}
}

func TestSetterCopiesArgument(t *testing.T) {
	v := "1cm"
	o := New().SetMarginTop(&v)
	v = "9cm"
	if got := *o.Margin().Top; got != "1cm" {
		t.Errorf("margin top = %q, want 1cm (caller mutation leaked)", got)
	}

	// Getters hand out copies too.
	*o.Margin().Top = "5cm"
	if got := *o.Margin().Top; got != "1cm" {
		t.Errorf("margin top = %q, want 1cm (getter mutation leaked)", got)
	}
}

func TestClone(t *testing.T) {
	o := New().SetHeader(String("h")).SetScale(Float(2)).SetMargin(UniformMargin("1cm"))
	c := o.Clone()

	c.SetHeader(nil).SetScale(Float(3)).SetMarginLeft(String("4cm"))

	if o.Header() == nil || !o.DisplayHeaderFooter() {
		t.Error("clone mutation changed header of original")
	}
	if *o.Scale() != 2 {
		t.Errorf("original scale = %v, want 2", *o.Scale())
	}
	if *o.Margin().Left != "1cm" {
		t.Errorf("original margin left = %q, want 1cm", *o.Margin().Left)
	}
	if c.DisplayHeaderFooter() {
		t.Error("clone should have recomputed displayHeaderFooter")
	}
}
