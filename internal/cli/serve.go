package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromepdf/internal/server"
	"github.com/matzehuels/chromepdf/pkg/cache"
	"github.com/matzehuels/chromepdf/pkg/observability"
)

// serveCommand runs the relay server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   optionFlags
		addr    string
		maxBody int64
		metrics bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an HTTP relay in front of the PDF service",
		Long: `Run an HTTP relay that accepts render requests on POST /v1/pdf and forwards
them to the PDF service with the configured credentials, cache and retries.

Request options are applied on top of the config [options] table and any
option flags given here.`,
		Example: `  chromepdf serve --addr :8080 --cache redis
  curl -s localhost:8080/v1/pdf -d '{"html":"<h1>Hi</h1>"}' -o hi.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}

			client, store, err := c.newClient(cmd.Context(), cmd, &flags)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := []server.Option{
				server.WithBaseOptions(client.Options()),
				server.WithMaxBodyBytes(maxBody),
				server.WithLogger(c.Logger),
			}
			if metrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				hooks := observability.NewPrometheusHooks(reg)
				observability.SetRenderHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
				defer observability.Reset()
				opts = append(opts, server.WithMetrics(reg))
			}

			printSuccess("Relay ready")
			printKeyValue("Listen", addr)
			printKeyValue("Upstream", client.EndpointURL())
			printKeyValue("Cache", cache.BackendName(store))
			if metrics {
				printKeyValue("Metrics", "/metrics")
			}
			printNextStep("Try", `curl -s localhost`+addr+`/v1/pdf -d '{"html":"<h1>Hi</h1>"}' -o hi.pdf`)

			return server.New(client, opts...).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "expose Prometheus metrics at /metrics")
	flags.register(cmd.Flags())
	return cmd
}
