package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eureka-residences/erkseed/client"
	"github.com/eureka-residences/erkseed/internal/config"
)

// rootOptions carries the persistent flags and the configuration they
// override.
type rootOptions struct {
	cfg *config.Config

	baseURL     string
	email       string
	password    string
	debug       bool
	timeout     time.Duration
	retries     int
	metricsFile string
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "erkseed",
		Short:         "Seed the Eureka residence property-management API",
		Long:          "Seed the Eureka residence property-management API.\n\nSettings come from ERKSEED_* environment variables; flags override them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    os.Getenv("NO_COLOR") != "",
			})
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			cfg, err := config.New()
			if err != nil {
				return err
			}
			opts.applyFlags(cmd, cfg)
			if cfg.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			}
			opts.cfg = cfg
			return cfg.Validate()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.baseURL, "base-url", "", "API root URL (env ERKSEED_BASE_URL)")
	pf.StringVar(&opts.email, "email", "", "admin account email (env ERKSEED_EMAIL)")
	pf.StringVar(&opts.password, "password", "", "admin account password (env ERKSEED_PASSWORD)")
	pf.BoolVarP(&opts.debug, "debug", "d", false, "debug logs and HTTP dumps (env ERKSEED_DEBUG)")
	pf.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (env ERKSEED_HTTP_TIMEOUT, default 30s)")
	pf.IntVar(&opts.retries, "retries", 0, "attempts per request for 408/429/5xx and network errors (env ERKSEED_RETRIES, default 1)")
	pf.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file when done (env ERKSEED_METRICS_FILE)")

	// Sub-commands
	rootCmd.AddCommand(newWhoamiCmd(opts))
	rootCmd.AddCommand(newSeedCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newStepsCmd())
	rootCmd.AddCommand(newFakeServerCmd())
	rootCmd.AddCommand(newEnvCmd())

	return rootCmd
}

// applyFlags copies every flag set on the command line over cfg.
func (o *rootOptions) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("email") {
		cfg.Email = o.email
	}
	if flags.Changed("password") {
		cfg.Password = o.password
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = o.timeout
	}
	if flags.Changed("retries") {
		cfg.Retries = o.retries
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = o.metricsFile
	}
}

// newClient builds an API client from the resolved configuration.
func (o *rootOptions) newClient() (*client.Client, error) {
	return client.New(o.cfg.BaseURL,
		client.WithHTTPTimeout(o.cfg.HTTPTimeout),
		client.WithRetry(o.cfg.Retries, o.cfg.RetryInterval),
		client.WithDebugLogging(o.cfg.Debug),
	)
}

// login builds a client and authenticates it with the admin credentials.
func (o *rootOptions) login(ctx context.Context) (*client.Client, error) {
	if o.cfg.Email == "" || o.cfg.Password == "" {
		return nil, errors.New("admin credentials required: set --email and --password or ERKSEED_EMAIL and ERKSEED_PASSWORD")
	}
	c, err := o.newClient()
	if err != nil {
		return nil, err
	}
	if _, err := c.Authenticate(ctx, client.Credentials{Email: o.cfg.Email, Password: o.cfg.Password}); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the recognised environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Usage(cmd.OutOrStdout())
		},
	}
}
