package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	errs "github.com/matzehuels/chromepdf/pkg/errors"
	"github.com/matzehuels/chromepdf/pkg/pdf"
)

func parseOptionFlags(t *testing.T, args ...string) (*pdf.Settings, error) {
	t.Helper()
	var o optionFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error: %v", args, err)
	}
	return o.settings(fs)
}

func TestOptionFlagsUnsetLeaveDefaults(t *testing.T) {
	s, err := parseOptionFlags(t)
	if err != nil {
		t.Fatalf("settings() error: %v", err)
	}
	if diff := cmp.Diff(&pdf.Settings{}, s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	// Flag defaults such as --scale=1 must not override configured values.
	base := pdf.New().SetScale(pdf.Float(2)).SetLandscape(pdf.Bool(true))
	got := s.Apply(base.Clone())
	if *got.Scale() != 2 || !*got.Landscape() {
		t.Errorf("unset flags changed options: scale=%v landscape=%v", *got.Scale(), *got.Landscape())
	}
}

func TestOptionFlagsSettings(t *testing.T) {
	s, err := parseOptionFlags(t,
		"--format", "Letter",
		"--margin", "1cm 2cm",
		"--margin-left", "3cm",
		"--no-background",
		"--wait-until", "networkidle0",
		"--scale", "1.5",
		"--landscape",
		"--safe-mode",
		"--rotate", "90",
		"--timeout", "5000",
		"--header", "<span>head</span>",
	)
	if err != nil {
		t.Fatalf("settings() error: %v", err)
	}

	want := &pdf.Settings{
		Format:          pdf.String("Letter"),
		Margin:          []string{"1cm", "2cm"},
		MarginLeft:      pdf.String("3cm"),
		PrintBackground: pdf.Bool(false),
		WaitUntil:       pdf.String("networkidle0"),
		Scale:           pdf.Float(1.5),
		Landscape:       pdf.Bool(true),
		SafeMode:        pdf.Bool(true),
		Rotate:          pdf.Int(90),
		Timeout:         pdf.Int(5000),
		Header:          pdf.String("<span>head</span>"),
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionFlagsExplicitFalse(t *testing.T) {
	s, err := parseOptionFlags(t, "--landscape=false", "--no-background=false")
	if err != nil {
		t.Fatalf("settings() error: %v", err)
	}
	if s.Landscape == nil || *s.Landscape {
		t.Errorf("Landscape = %v, want explicit false", s.Landscape)
	}
	if s.PrintBackground == nil || !*s.PrintBackground {
		t.Errorf("PrintBackground = %v, want explicit true", s.PrintBackground)
	}
}

func TestOptionFlagsTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "footer.html")
	if err := os.WriteFile(path, []byte(`<div class="pageNumber"></div>`), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := parseOptionFlags(t, "--footer", "@"+path)
	if err != nil {
		t.Fatalf("settings() error: %v", err)
	}
	if s.Footer == nil || *s.Footer != `<div class="pageNumber"></div>` {
		t.Errorf("Footer = %v, want file contents", s.Footer)
	}
}

func TestOptionFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"missing template", []string{"--header", "@/nonexistent/header.html"}, errs.ErrCodeFileNotFound},
		{"too many margin values", []string{"--margin", "1 2 3 4 5"}, errs.ErrCodeInvalidMargin},
		{"empty margin", []string{"--margin", ""}, errs.ErrCodeInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOptionFlags(t, tt.args...)
			if err == nil {
				t.Fatal("settings() error = nil")
			}
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %s, want %s", got, tt.code)
			}
		})
	}
}
