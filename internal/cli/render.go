package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/chromepdf/pkg/errors"
	"github.com/matzehuels/chromepdf/pkg/integrations/browserless"
	"github.com/matzehuels/chromepdf/pkg/pdf"
)

// defaultParallel bounds concurrent requests for batch URL renders.
const defaultParallel = 4

// contentCommand renders inline HTML given as an argument or on stdin.
func (c *CLI) contentCommand() *cobra.Command {
	var (
		flags  optionFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "content <html|->",
		Short: "Render inline HTML to PDF",
		Example: `  chromepdf content '<h1>Hello</h1>' -o hello.pdf
  cat report.html | chromepdf content - --landscape -o report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			html := args[0]
			if html == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				html = string(data)
			}
			return c.renderSingle(cmd, &flags, describe(pdf.HTML(html)), output,
				func(ctx context.Context, client *browserless.Client) ([]byte, error) {
					return client.RenderContent(ctx, html)
				})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", defaultOutput, `output file ("-" for stdout)`)
	flags.register(cmd.Flags())
	return cmd
}

// fileCommand renders a local HTML file.
func (c *CLI) fileCommand() *cobra.Command {
	var (
		flags  optionFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Render a local HTML file to PDF",
		Long: `Render a local HTML file to PDF. The file content is sent inline, so
relative links to local assets will not resolve on the service.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if output == "" {
				output = strings.TrimSuffix(path, filepath.Ext(path)) + ".pdf"
			}
			return c.renderSingle(cmd, &flags, path, output,
				func(ctx context.Context, client *browserless.Client) ([]byte, error) {
					return client.RenderFile(ctx, path)
				})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout; default <name>.pdf)`)
	flags.register(cmd.Flags())
	return cmd
}

// urlCommand renders one or more web pages.
func (c *CLI) urlCommand() *cobra.Command {
	var (
		flags     optionFlags
		output    string
		outDir    string
		parallel  int
		keepGoing bool
	)
	cmd := &cobra.Command{
		Use:   "url <url>...",
		Short: "Render web pages to PDF",
		Long: `Render one or more web pages to PDF.

A single URL is written to --output (default <host>.pdf). Several URLs are
rendered concurrently into --out-dir, one file per page.`,
		Example: `  chromepdf url https://example.com -o example.pdf
  chromepdf url https://a.example https://b.example --out-dir pdfs --parallel 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, u := range args {
				if err := errs.ValidateURL(u); err != nil {
					return fmt.Errorf("%s: %w", u, err)
				}
			}
			if len(args) == 1 {
				if output == "" {
					output = filepath.Join(outDir, outputName(args[0]))
				}
				return c.renderSingle(cmd, &flags, args[0], output,
					func(ctx context.Context, client *browserless.Client) ([]byte, error) {
						return client.RenderURL(ctx, args[0])
					})
			}
			if cmd.Flags().Changed("output") {
				return errs.New(errs.ErrCodeInvalidInput, "--output takes a single URL; use --out-dir for batches")
			}
			return c.renderBatch(cmd, &flags, args, outDir, parallel, keepGoing)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file for a single URL ("-" for stdout)`)
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "output directory")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", defaultParallel, "maximum concurrent renders")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "render remaining URLs after a failure")
	flags.register(cmd.Flags())
	return cmd
}

// renderFunc performs one render with a configured client.
type renderFunc func(ctx context.Context, client *browserless.Client) ([]byte, error)

// renderSingle builds a client from config and flags, runs render with its
// live options and writes the document to output.
func (c *CLI) renderSingle(cmd *cobra.Command, flags *optionFlags, label, output string, render renderFunc) error {
	ctx := cmd.Context()
	client, store, err := c.newClient(ctx, cmd, flags)
	if err != nil {
		return err
	}
	defer store.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+label+"...")
	spinner.Start()
	start := time.Now()
	doc, err := render(ctx, client)
	spinner.Stop()
	if err != nil {
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), output, doc); err != nil {
		return err
	}
	if output != "-" {
		printSuccess("Rendered %s", label)
		printFile(output)
		printStats(len(doc), time.Since(start))
	}
	return nil
}

// batchResult is the outcome of one URL in a batch.
type batchResult struct {
	url    string
	output string
	err    error
}

// renderBatch renders urls concurrently, at most parallel at a time. Each
// render uses its own copy of the options. Without keepGoing the first
// failure cancels the renders still in flight.
func (c *CLI) renderBatch(cmd *cobra.Command, flags *optionFlags, urls []string, outDir string, parallel int, keepGoing bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	client, store, err := c.newClient(ctx, cmd, flags)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	names := uniqueNames(urls)
	results := make([]batchResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d pages...", len(urls)))
	spinner.Start()
	p := newProgress(logger)

	for i, u := range urls {
		opts := client.Options().Clone()
		out := filepath.Join(outDir, names[i])
		g.Go(func() error {
			res := renderTo(gctx, client, opts, u, out)
			results[i] = res
			if res.err != nil {
				logger.Debug("render failed", "url", u, "err", res.err)
				if !keepGoing {
					return res.err
				}
			}
			return nil
		})
	}
	waitErr := g.Wait()
	spinner.Stop()

	failed := 0
	for _, res := range results {
		switch {
		case res.err != nil:
			failed++
			printError("%s: %s", res.url, errs.UserMessage(res.err))
		case res.output != "":
			printSuccess("%s", res.url)
			printFile(res.output)
		}
	}
	p.done(fmt.Sprintf("Rendered %d of %d pages", len(urls)-failed, len(urls)))

	if waitErr != nil {
		return waitErr
	}
	if failed > 0 {
		printWarning("%d of %d pages failed; rendered pages were kept", failed, len(urls))
		return fmt.Errorf("%d of %d renders failed", failed, len(urls))
	}
	return nil
}

func renderTo(ctx context.Context, client *browserless.Client, opts *pdf.Options, u, out string) batchResult {
	doc, err := client.Render(ctx, opts, pdf.URL(u))
	if err != nil {
		return batchResult{url: u, err: err}
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return batchResult{url: u, err: err}
	}
	return batchResult{url: u, output: out}
}

// writeOutput writes doc to path, or to stdout when path is "-".
func writeOutput(stdout io.Writer, path string, doc []byte) error {
	if path == "-" {
		_, err := stdout.Write(doc)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, doc, 0o644)
}

func describe(t pdf.Target) string {
	if t.Mode == pdf.ModeURL {
		return t.Value
	}
	return formatBytes(len(t.Value)) + " of HTML"
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// outputName derives a file name from a page URL: the host, followed by the
// path when there is one, e.g. example.com_docs_intro.pdf.
func outputName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return defaultOutput
	}
	name := u.Hostname()
	if p := strings.Trim(u.Path, "/"); p != "" {
		name += "_" + strings.ReplaceAll(p, "/", "_")
	}
	name = strings.Trim(unsafeNameChars.ReplaceAllString(name, "-"), "-")
	name = strings.TrimSuffix(name, ".html")
	name = strings.TrimSuffix(name, ".htm")
	return name + ".pdf"
}

// uniqueNames maps each URL to an output name, numbering repeats.
func uniqueNames(urls []string) []string {
	names := make([]string, len(urls))
	seen := make(map[string]int, len(urls))
	for i, u := range urls {
		name := outputName(u)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s-%d.pdf", strings.TrimSuffix(name, ".pdf"), n)
		}
		names[i] = name
	}
	return names
}
