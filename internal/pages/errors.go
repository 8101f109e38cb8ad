package pages

import (
	"errors"
	"fmt"
)

const (
	metadataFetchErrorTemplateConstant    = "failed to fetch metadata for %s: %v"
	metadataFetcherMissingMessageConstant = "metadata fetcher not configured"
)

// MetadataFetchError wraps a failure to retrieve metadata in source-repository mode.
type MetadataFetchError struct {
	PackageName string
	Cause       error
}

// Error describes the failed fetch.
func (fetchError MetadataFetchError) Error() string {
	return fmt.Sprintf(metadataFetchErrorTemplateConstant, fetchError.PackageName, fetchError.Cause)
}

// Unwrap exposes the underlying failure.
func (fetchError MetadataFetchError) Unwrap() error {
	return fetchError.Cause
}

var errMetadataFetcherMissing = errors.New(metadataFetcherMissingMessageConstant)
