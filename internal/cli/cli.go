package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromepdf/pkg/buildinfo"
	"github.com/matzehuels/chromepdf/pkg/cache"
	"github.com/matzehuels/chromepdf/pkg/config"
	"github.com/matzehuels/chromepdf/pkg/integrations/browserless"
	"github.com/matzehuels/chromepdf/pkg/pdf"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "chromepdf"

	// defaultOutput is the output file when none is given and none can be derived.
	defaultOutput = "document.pdf"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	global globalFlags
}

// globalFlags are the persistent flags that override the config file.
type globalFlags struct {
	configPath string
	apiKey     string
	apiURL     string
	endpoint   string
	cache      string
	retries    int
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "chromepdf renders HTML and web pages to PDF with headless Chrome",
		Long: `chromepdf renders inline HTML, local HTML files and web pages to PDF through
the browserless headless-Chrome API, and can relay render requests for other
services.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.global.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/chromepdf/config.toml)")
	pf.StringVar(&c.global.apiKey, "api-key", "", "API token (env "+config.EnvAPIKey+")")
	pf.StringVar(&c.global.apiURL, "api-url", "", "service base URL (default "+browserless.DefaultAPIURL+")")
	pf.StringVar(&c.global.endpoint, "endpoint", "", "PDF route (default "+browserless.PDFEndpoint+", legacy deployments use "+browserless.LegacyPDFEndpoint+")")
	pf.StringVar(&c.global.cache, "cache", "", "render cache: none, file or redis")
	pf.IntVar(&c.global.retries, "retries", 0, "retry transport failures and 5xx responses this many times")

	root.AddCommand(c.contentCommand())
	root.AddCommand(c.urlCommand())
	root.AddCommand(c.fileCommand())
	root.AddCommand(c.payloadCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Client Factory
// =============================================================================

// loadConfig reads the config file and applies the global flags the user set.
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.global.configPath)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("api-key") {
		cfg.APIKey = c.global.apiKey
	}
	if fs.Changed("api-url") {
		cfg.APIURL = c.global.apiURL
	}
	if fs.Changed("endpoint") {
		cfg.Endpoint = c.global.endpoint
	}
	if fs.Changed("cache") {
		cfg.Cache.Backend = c.global.cache
	}
	if fs.Changed("retries") {
		cfg.Retries = c.global.retries
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds a client from config, then layers the command's option
// flags over the configured options. The caller closes the returned cache.
func (c *CLI) newClient(ctx context.Context, cmd *cobra.Command, flags *optionFlags) (*browserless.Client, cache.Cache, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	settings, err := flags.settings(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	client, store, err := cfg.NewClient(ctx, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	settings.Apply(client.Options())
	if cfg.APIKey == "" && cfg.APIURL == browserless.DefaultAPIURL {
		printWarning("No API key set; the hosted service rejects unauthenticated renders (use --api-key or %s)", config.EnvAPIKey)
	}

	loggerFromContext(ctx).Debug("client ready",
		"endpoint", client.EndpointURL(),
		"cache", cache.BackendName(store),
		"retries", cfg.Retries,
	)
	return client, store, nil
}

// buildOptions layers the config [options] table and the flags without
// creating a client.
func (c *CLI) buildOptions(cmd *cobra.Command, flags *optionFlags) (*pdf.Options, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	settings, err := flags.settings(cmd.Flags())
	if err != nil {
		return nil, err
	}
	return settings.Apply(cfg.Options.Apply(pdf.New())), nil
}
