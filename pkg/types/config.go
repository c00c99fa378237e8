// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultPDFURL is the published location of the UltraDNS REST API User Guide,
// which carries the "IP Probes by Region Available" table.
const DefaultPDFURL = "https://ultra-portalstatic.ultradns.com/static/console/docs/REST-API_User_Guide.pdf"

// HTTPConfig holds HTTP settings used by the fetch stage.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with the download request.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LocateConfig holds settings for the page locator.
type LocateConfig struct {
	// Phrases are tried in order; the first one found on any page wins.
	Phrases []string `json:"phrases" yaml:"phrases"`

	// Scan bounds the pages searched for the phrases.
	Scan PageRange `json:"scan" yaml:"scan"`

	// Fallback is used when no phrase matches any page.
	Fallback PageRange `json:"fallback" yaml:"fallback"`
}

// Config holds every setting for a single extraction run.
type Config struct {
	HTTPConfig `yaml:",inline"`

	// URL is the location of the source PDF.
	URL string `json:"url" yaml:"url"`

	// Output is the destination file; empty means standard output.
	Output string `json:"output" yaml:"output"`

	// Format selects the serializer.
	Format Format `json:"format" yaml:"format"`

	// Verbose dumps the raw text of every candidate page to the log stream.
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Backend names the PDF text extraction backend: pdf or tabula.
	Backend string `json:"backend" yaml:"backend"`

	Locate LocateConfig `json:"locate" yaml:"locate"`
}

// DefaultConfig returns the settings used when no flag, config file, or
// environment variable overrides them.
func DefaultConfig() Config {
	return Config{
		HTTPConfig: HTTPConfig{
			Timeout:   60 * time.Second,
			UserAgent: "probe-ips/0.1",
		},
		URL:     DefaultPDFURL,
		Format:  FormatJSON,
		Backend: "pdf",
		Locate: LocateConfig{
			Phrases:  []string{"IP Probes by Region", "Probes by Region", "Probe"},
			Scan:     PageRange{Start: 1, End: 300},
			Fallback: PageRange{Start: 202, End: 203},
		},
	}
}
