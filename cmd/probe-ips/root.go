// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/probe-ips/internal/httputil"
	"github.com/pdiddy/probe-ips/internal/logging"
	"github.com/pdiddy/probe-ips/internal/pdftext"
	"github.com/pdiddy/probe-ips/internal/pipeline"
	"github.com/pdiddy/probe-ips/pkg/types"
)

// newRootCmd builds the probe-ips command. Collaborators left nil in deps
// are filled from configuration at run time.
func newRootCmd(deps pipeline.Deps) *cobra.Command {
	v := viper.New()
	defaults := types.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "probe-ips",
		Short: "Extract UltraDNS SiteBacker probe IPs from the REST API User Guide",
		Long: `probe-ips downloads the UltraDNS REST API User Guide, finds the
"IP Probes by Region Available" table, and prints each region with its IPv4
and IPv6 probe addresses as JSON, CSV, or YAML.

Progress and diagnostics go to stderr. The exit status is 1 when the PDF
cannot be downloaded or no probe data is found.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			log := logging.New(stderr, cfg.Verbose)
			defer log.Sync()
			if used := v.ConfigFileUsed(); used != "" {
				log.Infof("Using config file: %s", used)
			}

			run := deps
			if run.Client == nil {
				run.Client = httputil.NewClient(cfg.HTTPConfig)
			}
			if run.Opener == nil {
				opener, err := pdftext.Backend(cfg.Backend)
				if err != nil {
					return err
				}
				run.Opener = opener
				run.Preflight = pdftext.Preflight
			}
			if run.Stdout == nil {
				run.Stdout = cmd.OutOrStdout()
			}
			if run.Diag == nil {
				run.Diag = stderr
			}

			return pipeline.Run(cmd.Context(), cfg, run, log)
		},
	}

	f := cmd.Flags()
	f.String("config", "", "config file (default: ./probe-ips.yaml or ~/.config/probe-ips/probe-ips.yaml)")
	f.String("url", defaults.URL, "URL to download the PDF from")
	f.StringP("output", "o", "", "output file path (if not specified, prints to stdout)")
	f.StringP("format", "f", string(defaults.Format), "output format: json, csv, or yaml")
	f.BoolP("verbose", "v", false, "print verbose output, including PDF content")
	f.String("backend", defaults.Backend, fmt.Sprintf("PDF text backend: %s", strings.Join(pdftext.Backends(), ", ")))
	f.Duration("timeout", defaults.Timeout, "HTTP request timeout")
	f.String("user-agent", defaults.UserAgent, "User-Agent header for the download")
	f.String("scan-pages", defaults.Locate.Scan.String(), "pages searched for the table heading")
	f.String("fallback-pages", defaults.Locate.Fallback.String(), "pages used when the heading is not found")

	return cmd
}

// initConfig wires flags, environment, and an optional config file into v.
func initConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	cfgFile, _ := flags.GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("probe-ips")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "probe-ips"))
		}
	}

	v.SetEnvPrefix("PROBE_IPS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// loadConfig builds a run configuration from v and validates it.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()

	cfg.URL = v.GetString("url")
	cfg.Output = v.GetString("output")
	cfg.Verbose = v.GetBool("verbose")
	cfg.Backend = v.GetString("backend")
	cfg.Timeout = v.GetDuration("timeout")
	cfg.UserAgent = v.GetString("user-agent")

	format, err := types.ParseFormat(v.GetString("format"))
	if err != nil {
		return cfg, err
	}
	cfg.Format = format

	if cfg.Locate.Scan, err = types.ParsePageRange(v.GetString("scan-pages")); err != nil {
		return cfg, fmt.Errorf("--scan-pages: %w", err)
	}
	if cfg.Locate.Fallback, err = types.ParsePageRange(v.GetString("fallback-pages")); err != nil {
		return cfg, fmt.Errorf("--fallback-pages: %w", err)
	}
	if phrases := v.GetStringSlice("phrases"); len(phrases) > 0 {
		cfg.Locate.Phrases = phrases
	}

	if cfg.URL == "" {
		return cfg, fmt.Errorf("--url must not be empty")
	}
	return cfg, nil
}
