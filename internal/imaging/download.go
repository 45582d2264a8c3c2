// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

// Package imaging downloads, decodes, composites, and re-encodes image assets.
package imaging

import (
	"context"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/samber/oops"
)

// DefaultMaxBytes caps downloaded asset size.
const DefaultMaxBytes = 8 << 20

// Downloader fetches asset bytes over HTTP. Each call is a single request;
// failures surface immediately, without retries.
type Downloader struct {
	client   *http.Client
	maxBytes int64
}

// DownloaderOption configures the Downloader.
type DownloaderOption func(*Downloader)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) DownloaderOption {
	return func(d *Downloader) {
		d.client = c
	}
}

// WithMaxBytes sets the response body size limit.
func WithMaxBytes(n int64) DownloaderOption {
	return func(d *Downloader) {
		d.maxBytes = n
	}
}

// NewDownloader creates a downloader with sane defaults.
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		client:   http.DefaultClient,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches the body at rawURL. Error classification:
// malformed URLs and connection failures report BAD_URL, non-200 responses
// report DOWNLOAD_FAILED, oversized bodies report TOO_LARGE.
func (d *Downloader) Download(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, ErrBadURL(rawURL, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, ErrBadURL(rawURL, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, ErrBadURL(rawURL, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Debug("failed to close response body", "url", rawURL, "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrDownloadFailed(rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, oops.Code(CodeDownloadFailed).With("url", rawURL).Wrap(err)
	}
	if int64(len(body)) > d.maxBytes {
		return nil, oops.Code(CodeTooLarge).
			With("url", rawURL).
			With("limit_bytes", d.maxBytes).
			Errorf("response body exceeds size limit")
	}

	slog.Debug("downloaded asset", "url", rawURL, "bytes", len(body))
	return body, nil
}

// DownloadImage fetches and decodes a raster image in one step.
func (d *Downloader) DownloadImage(ctx context.Context, rawURL string) (image.Image, error) {
	body, err := d.Download(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return Decode(body)
}

// FilenameFromURL returns the first dot-separated component of the file name
// in a URL path: "image" for ".../image.png", "files" for ".../files.archive.zip".
func FilenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return strings.SplitN(name, ".", 2)[0]
}
