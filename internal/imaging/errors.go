// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package imaging

import (
	"strings"

	"github.com/samber/oops"
)

// Error codes for asset pipeline failures.
const (
	CodeBadURL         = "BAD_URL"
	CodeDownloadFailed = "DOWNLOAD_FAILED"
	CodeTooLarge       = "TOO_LARGE"
	CodeBadImage       = "BAD_IMAGE"
	CodeBadSVG         = "BAD_SVG"
	CodeBadFormat      = "BAD_FORMAT"
)

// ErrBadURL creates an error for a malformed or unreachable URL.
func ErrBadURL(url string, cause error) error {
	builder := oops.Code(CodeBadURL).With("url", url)
	if cause != nil {
		return builder.Wrap(cause)
	}
	return builder.Errorf("the given URL is invalid")
}

// ErrBadFormat creates an error for an output format outside the allowlist.
func ErrBadFormat(format string) error {
	return oops.Code(CodeBadFormat).
		With("format", format).
		Errorf("%q is not one of the supported formats (%s)",
			format, strings.Join(OutputFormats, ", "))
}

// ErrDownloadFailed creates an error for a request that did not return 200.
func ErrDownloadFailed(url string, status int) error {
	return oops.Code(CodeDownloadFailed).
		With("url", url).
		With("status", status).
		Errorf("the given URL can't be accessed")
}

// ErrBadImage creates an error for undecodable image payloads.
func ErrBadImage(cause error) error {
	return oops.Code(CodeBadImage).Wrap(cause)
}

// ErrBadSVG creates an error for unparseable SVG payloads.
func ErrBadSVG(cause error) error {
	builder := oops.Code(CodeBadSVG)
	if cause != nil {
		return builder.Wrap(cause)
	}
	return builder.Errorf("no image was found in the SVG")
}
