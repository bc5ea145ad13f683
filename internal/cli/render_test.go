package cli

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/chromepdf/pkg/pdf"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com", "example.com.pdf"},
		{"https://example.com/", "example.com.pdf"},
		{"https://example.com/docs/intro", "example.com_docs_intro.pdf"},
		{"https://example.com/page.html", "example.com_page.pdf"},
		{"https://example.com:8443/a?b=c", "example.com_a.pdf"},
		{"not a url", defaultOutput},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := outputName(tt.url); got != tt.want {
				t.Errorf("outputName(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestUniqueNames(t *testing.T) {
	got := uniqueNames([]string{
		"https://a.example/x",
		"https://b.example",
		"https://a.example/x",
		"https://a.example/x/",
	})
	want := []string{"a.example_x.pdf", "b.example.pdf", "a.example_x-2.pdf", "a.example_x-3.pdf"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("uniqueNames mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteOutputStdout(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOutput(&buf, "-", []byte(fakePDF)); err != nil {
		t.Fatalf("writeOutput() error: %v", err)
	}
	if buf.String() != fakePDF {
		t.Errorf("stdout = %q", buf.String())
	}
}

func TestDescribe(t *testing.T) {
	if got := describe(pdf.URL("https://example.com")); got != "https://example.com" {
		t.Errorf("describe(url) = %q", got)
	}
	if got := describe(pdf.HTML("<p>hello</p>")); got != "12 B of HTML" {
		t.Errorf("describe(html) = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
