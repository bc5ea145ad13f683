package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/chromepdf/pkg/errors"
	"github.com/matzehuels/chromepdf/pkg/pdf"
)

// payloadCommand prints the JSON body a render would send, without sending it.
func (c *CLI) payloadCommand() *cobra.Command {
	var (
		flags   optionFlags
		html    string
		pageURL string
		pretty  bool
	)
	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Print the request body for a render without sending it",
		Example: `  chromepdf payload --url https://example.com --landscape --pretty
  echo '<p>hi</p>' | chromepdf payload --html -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := payloadTarget(cmd.InOrStdin(), html, pageURL)
			if err != nil {
				return err
			}
			opts, err := c.buildOptions(cmd, &flags)
			if err != nil {
				return err
			}
			body, err := pdf.Encode(opts, t)
			if err != nil {
				return err
			}
			if pretty {
				var buf bytes.Buffer
				if err := json.Indent(&buf, body, "", "  "); err != nil {
					return err
				}
				body = buf.Bytes()
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", bytes.TrimSpace(body))
			return err
		},
	}
	cmd.Flags().StringVar(&html, "html", "", `inline HTML ("-" for stdin)`)
	cmd.Flags().StringVar(&pageURL, "url", "", "page URL")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON")
	cmd.MarkFlagsMutuallyExclusive("html", "url")
	cmd.MarkFlagsOneRequired("html", "url")
	flags.register(cmd.Flags())
	return cmd
}

func payloadTarget(stdin io.Reader, html, pageURL string) (pdf.Target, error) {
	if pageURL != "" {
		if err := errs.ValidateURL(pageURL); err != nil {
			return pdf.Target{}, err
		}
		return pdf.URL(pageURL), nil
	}
	if html == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return pdf.Target{}, fmt.Errorf("read stdin: %w", err)
		}
		html = string(data)
	}
	return pdf.HTML(html), nil
}
