package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cbout22/ghrefs/internal/config"
	"github.com/cbout22/ghrefs/internal/github"
)

// version is set at build time via -ldflags.
var version = "dev"

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath  string
	token       string
	user        string
	pass        string
	userAgent   string
	logLevel    string
	noColor     bool
	metricsFile string

	// registry collects client metrics when --metrics-file is set.
	registry *prometheus.Registry
}

// NewRootCmd creates the top-level `ghrefs` command.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "ghrefs",
		Short: "Resolve GitHub tags and branches from semver ranges",
		Long: `ghrefs lists a GitHub repository's tags and branches, reads files at a
given ref, and resolves a version range such as "1.x" or "^2.1.0" to the tag
that serves it. A literal branch name resolves to that branch.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.writeMetrics()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultConfigFile, "Path to a TOML config file")
	flags.StringVar(&opts.token, "token", "", "GitHub token (default $GITHUB_TOKEN or $GH_TOKEN)")
	flags.StringVar(&opts.user, "user", "", "GitHub user for basic auth (default $GITHUB_USER)")
	flags.StringVar(&opts.pass, "pass", "", "GitHub password for basic auth (default $GITHUB_PASS)")
	flags.StringVar(&opts.userAgent, "user-agent", "", "User-Agent header sent with every request")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: trace, debug, info, warn, error")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write GitHub request metrics to this file in Prometheus text format")

	root.AddCommand(newRefsCmd(opts))
	root.AddCommand(newResolveCmd(opts))
	root.AddCommand(newContentsCmd(opts))

	return root
}

// loadConfig layers the config file, the environment and the flags, in
// that order of increasing precedence.
func (o *globalOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if errors.Is(err, fs.ErrNotExist) && o.configPath == config.DefaultConfigFile {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv()
	cfg.Merge(config.Config{
		Token:     o.token,
		User:      o.user,
		Pass:      o.pass,
		UserAgent: o.userAgent,
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (o *globalOptions) logger(cmd *cobra.Command) (hclog.Logger, error) {
	level := hclog.LevelFromString(o.logLevel)
	if level == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log level %q", o.logLevel)
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "ghrefs",
		Level:  level,
		Output: cmd.ErrOrStderr(),
		Color:  hclog.AutoColor,
	}), nil
}

// newClient builds an authenticated GitHub client from the flags.
func (o *globalOptions) newClient(cmd *cobra.Command) (*github.Client, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := o.logger(cmd)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", "api_url", cfg.APIURL, "user_agent", cfg.UserAgent, "authenticated", cfg.Token != "" || cfg.User != "")
	clientOpts := []github.Option{github.WithLogger(logger)}
	if o.metricsFile != "" {
		o.registry = prometheus.NewRegistry()
		clientOpts = append(clientOpts, github.WithMetrics(github.NewMetrics(o.registry)))
	}
	return github.New(cfg, clientOpts...), nil
}

// writeMetrics dumps the collected metrics to --metrics-file, if set.
func (o *globalOptions) writeMetrics() error {
	if o.metricsFile == "" || o.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(o.metricsFile, o.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

func (o *globalOptions) printer(cmd *cobra.Command) *printer {
	return &printer{
		w:            cmd.OutOrStdout(),
		colorEnabled: !o.noColor && !color.NoColor,
	}
}

// Execute runs the root command.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		noColor, _ := root.PersistentFlags().GetBool("no-color")
		fmt.Fprint(os.Stderr, formatError(err, noColor))
		os.Exit(1)
	}
}

func formatError(err error, noColor bool) string {
	red := color.New(color.FgRed)
	if noColor {
		red.DisableColor()
	}
	return fmt.Sprintf("%s %s\n", red.Sprint("Error:"), strings.TrimSpace(err.Error()))
}
