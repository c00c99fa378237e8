// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads the source PDF into memory.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/probe-ips/internal/httputil"
	"github.com/pdiddy/probe-ips/pkg/types"
)

// ErrEmptyBody is returned when the server answers 2xx with no content.
var ErrEmptyBody = errors.New("empty response body")

// Fetch performs a single GET of url and returns the response body.
// Transport errors, non-2xx statuses, and empty bodies are reported as a
// fetch StageError carrying the cause. It does not retry.
func Fetch(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig, log *zap.SugaredLogger) ([]byte, error) {
	log.Infof("Downloading PDF from %s...", url)

	data, err := download(ctx, client, url, cfg)
	if err != nil {
		log.Errorf("Error downloading PDF: %v", err)
		return nil, types.Fail(types.FailureFetch, err)
	}

	log.Infow("Download complete", "bytes", len(data))
	return data, nil
}

func download(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.Do(ctx, client, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyBody
	}
	return data, nil
}
